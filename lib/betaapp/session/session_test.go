package session

import (
	"sync"
	"testing"
	"time"

	"beta-program-backend/lib/betaapp/appconfig"
	"beta-program-backend/lib/betaapp/scoring"
	"beta-program-backend/models"

	"github.com/stretchr/testify/require"
)

func testConfig() *appconfig.ApplicationConfig {
	return &appconfig.ApplicationConfig{
		Stages: []appconfig.Stage{
			{
				Key:              "Stage 1",
				Title:            "Screening",
				MinScoreRequired: 5,
				MaxPossibleScore: 10,
				Questions: []appconfig.Question{
					{
						ID:   "experience",
						Type: appconfig.QuestionMultipleChoice,
						Options: []appconfig.Option{
							{Text: "none", Score: 3},
							{Text: "plenty", Score: 8},
						},
						Weight:   1,
						Required: true,
					},
				},
			},
			{
				Key:              "Stage 2",
				Title:            "Writing sample",
				MaxPossibleScore: 10,
				Questions: []appconfig.Question{
					{
						ID:       "motivation",
						Type:     appconfig.QuestionTextarea,
						Weight:   1,
						Required: true,
						MinWords: 2,
					},
				},
			},
		},
		Scoring: appconfig.ScoringSystem{
			OverallThresholds: appconfig.Thresholds{
				AutoAccept:        12,
				StrongCandidate:   10,
				InterviewRequired: 5,
				AutoReject:        0,
			},
		},
	}
}

func TestSessionFlow(t *testing.T) {
	t.Run(`answers start empty per question type`, func(t *testing.T) {
		rec := New("id", "reader@example.com", "", testConfig())
		require.Equal(t, scoring.Answer{}, rec.Answers["experience"])
		require.True(t, rec.IsQualified)
		require.Equal(t, 0, rec.StageIndex)
	})

	t.Run(`validation failure keeps the stage and records field errors`, func(t *testing.T) {
		rec := New("id", "reader@example.com", "", testConfig())
		require.NoError(t, rec.Next())
		require.Equal(t, 0, rec.StageIndex)
		require.Equal(t, "This field is required.", rec.Errors["experience"])

		// editing the field clears its error
		require.NoError(t, rec.SetAnswer("experience", scoring.Answer{Text: "plenty"}))
		require.Empty(t, rec.Errors["experience"])
	})

	t.Run(`failed gate disqualifies with the score kept in the ledger`, func(t *testing.T) {
		rec := New("id", "reader@example.com", "", testConfig())
		require.NoError(t, rec.SetAnswer("experience", scoring.Answer{Text: "none"}))
		require.NoError(t, rec.Next())
		require.True(t, rec.ApplicationComplete)
		require.False(t, rec.IsQualified)
		require.Equal(t, 3, rec.StageScores[0])
		require.Empty(t, rec.FinalClassification)
		require.Equal(t, models.DisqualifiedMessage, rec.OutcomeMessage())
	})

	t.Run(`full pass classifies on the sum of stage scores`, func(t *testing.T) {
		rec := New("id", "reader@example.com", "", testConfig())
		require.NoError(t, rec.SetAnswer("experience", scoring.Answer{Text: "plenty"}))
		require.NoError(t, rec.Next())
		require.Equal(t, 1, rec.StageIndex)
		require.False(t, rec.ApplicationComplete)

		require.NoError(t, rec.SetAnswer("motivation", scoring.Answer{Text: "love the setting"}))
		require.NoError(t, rec.Next())
		require.True(t, rec.ApplicationComplete)
		require.True(t, rec.IsQualified)
		require.Equal(t, 13, rec.TotalScore)
		require.Equal(t, models.ClassificationAutoAccept, rec.FinalClassification)
	})

	t.Run(`previous moves the pointer only, scores stay recorded`, func(t *testing.T) {
		rec := New("id", "reader@example.com", "", testConfig())
		require.NoError(t, rec.SetAnswer("experience", scoring.Answer{Text: "plenty"}))
		require.NoError(t, rec.Next())
		require.Equal(t, 1, rec.StageIndex)

		require.NoError(t, rec.Previous())
		require.Equal(t, 0, rec.StageIndex)
		require.Equal(t, 8, rec.StageScores[0])

		// already at the first stage, stays there
		require.NoError(t, rec.Previous())
		require.Equal(t, 0, rec.StageIndex)
	})

	t.Run(`reset starts the pass over and keeps the identity`, func(t *testing.T) {
		rec := New("id", "reader@example.com", "Quill", testConfig())
		require.NoError(t, rec.SetAnswer("experience", scoring.Answer{Text: "none"}))
		require.NoError(t, rec.Next())
		require.True(t, rec.ApplicationComplete)

		rec.Reset()
		require.Equal(t, "reader@example.com", rec.Email)
		require.Equal(t, "Quill", rec.PenName)
		require.Equal(t, 0, rec.StageIndex)
		require.True(t, rec.IsQualified)
		require.False(t, rec.ApplicationComplete)
		require.Empty(t, rec.StageScores)
		require.Equal(t, scoring.Answer{}, rec.Answers["experience"])
	})

	t.Run(`completed session rejects edits and advancing`, func(t *testing.T) {
		rec := New("id", "reader@example.com", "", testConfig())
		require.NoError(t, rec.SetAnswer("experience", scoring.Answer{Text: "none"}))
		require.NoError(t, rec.Next())
		require.True(t, rec.ApplicationComplete)

		require.Error(t, rec.SetAnswer("experience", scoring.Answer{Text: "plenty"}))
		require.Error(t, rec.Next())
		require.Error(t, rec.Previous())
	})

	t.Run(`unknown question is rejected`, func(t *testing.T) {
		rec := New("id", "reader@example.com", "", testConfig())
		require.Error(t, rec.SetAnswer("no_such_question", scoring.Answer{Text: "x"}))
	})
}

func TestSessionStore(t *testing.T) {
	t.Run(`create and get`, func(t *testing.T) {
		s := NewStore()
		rec := s.Create("reader@example.com", "Quill", testConfig())
		require.NotEmpty(t, rec.ID)
		require.Equal(t, rec, s.Get(rec.ID))
		require.Nil(t, s.Get("missing"))
	})

	t.Run(`one session survives concurrent requests and cleanup sweeps`, func(t *testing.T) {
		s := NewStore()
		rec := s.Create("reader@example.com", "", testConfig())

		wg := sync.WaitGroup{}
		wg.Add(2)
		go func() {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				rec.Lock()
				rec.Touch()
				_ = rec.SetAnswer("experience", scoring.Answer{Text: "plenty"})
				rec.Unlock()
			}
		}()
		go func() {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				other := s.Get(rec.ID)
				if other != nil {
					other.Lock()
					other.Touch()
					_ = other.SetAnswer("experience", scoring.Answer{Text: "none"})
					other.Unlock()
				}
				s.DropIdle(time.Hour)
			}
		}()
		wg.Wait()

		require.NotNil(t, s.Get(rec.ID))
		require.NotEmpty(t, rec.Answers["experience"].Text)
	})

	t.Run(`drop idle removes only expired sessions`, func(t *testing.T) {
		s := NewStore()
		fresh := s.Create("fresh@example.com", "", testConfig())
		stale := s.Create("stale@example.com", "", testConfig())
		stale.LastActive = time.Now().Add(-2 * time.Hour)

		dropped := s.DropIdle(time.Hour)
		require.Equal(t, 1, dropped)
		require.Nil(t, s.Get(stale.ID))
		require.NotNil(t, s.Get(fresh.ID))
	})
}
