package appconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const minimalDoc = `{
  "application_stages": {
    "Stage 1": {
      "title": "Screening",
      "description": "first",
      "min_score_required": 5,
      "max_possible_score": 10,
      "questions": [
        {
          "id": "q1",
          "type": "multiple_choice",
          "question": "Pick one",
          "options": [{"text": "a", "score": 1}, {"text": "b", "score": 5}],
          "weight": 1,
          "required": true
        }
      ]
    },
    "Stage 2": {
      "title": "Sample",
      "description": "second",
      "max_possible_score": 20,
      "questions": [
        {
          "id": "q2",
          "type": "textarea",
          "question": "Write something",
          "min_words": 10,
          "max_words": 50,
          "weight": 1,
          "required": true
        }
      ]
    }
  },
  "scoring_system": {
    "overall_thresholds": {
      "auto_accept": 25,
      "strong_candidate": 20,
      "interview_required": 10,
      "auto_reject": 0
    }
  }
}`

func TestParse(t *testing.T) {
	t.Run(`stages keep document order and their object keys`, func(t *testing.T) {
		cfg, err := Parse([]byte(minimalDoc))
		require.NoError(t, err)
		require.Len(t, cfg.Stages, 2)
		require.Equal(t, "Stage 1", cfg.Stages[0].Key)
		require.Equal(t, "Screening", cfg.Stages[0].Title)
		require.Equal(t, "Stage 2", cfg.Stages[1].Key)
		require.Equal(t, 20, cfg.Stages[1].MaxPossibleScore)
		require.Equal(t, 25, cfg.Scoring.OverallThresholds.AutoAccept)
	})

	t.Run(`questions are findable by id across stages`, func(t *testing.T) {
		cfg, err := Parse([]byte(minimalDoc))
		require.NoError(t, err)
		q, found := cfg.FindQuestion("q2")
		require.True(t, found)
		require.Equal(t, QuestionTextarea, q.Type)
		_, found = cfg.FindQuestion("missing")
		require.False(t, found)
	})

	t.Run(`document without stages is rejected`, func(t *testing.T) {
		_, err := Parse([]byte(`{"scoring_system": {}}`))
		require.Error(t, err)

		_, err = Parse([]byte(`{"application_stages": {}, "scoring_system": {}}`))
		require.Error(t, err)
	})

	t.Run(`broken json is rejected`, func(t *testing.T) {
		_, err := Parse([]byte(`{"application_stages": [1,2]}`))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	base := func() ApplicationConfig {
		cfg, err := Parse([]byte(minimalDoc))
		if err != nil {
			t.Fatal(err)
		}
		return *cfg
	}

	t.Run(`valid config passes`, func(t *testing.T) {
		cfg := base()
		require.NoError(t, cfg.Validate())
	})

	t.Run(`unknown question type is rejected`, func(t *testing.T) {
		cfg := base()
		cfg.Stages[0].Questions[0].Type = "ranking"
		require.Error(t, cfg.Validate())
	})

	t.Run(`duplicate question ids are rejected`, func(t *testing.T) {
		cfg := base()
		cfg.Stages[1].Questions[0].ID = "q1"
		require.Error(t, cfg.Validate())
	})

	t.Run(`choice question needs options`, func(t *testing.T) {
		cfg := base()
		cfg.Stages[0].Questions[0].Options = nil
		require.Error(t, cfg.Validate())
	})

	t.Run(`negative option score is rejected`, func(t *testing.T) {
		cfg := base()
		cfg.Stages[0].Questions[0].Options[0].Score = -1
		require.Error(t, cfg.Validate())
	})

	t.Run(`stage needs a positive maximum score`, func(t *testing.T) {
		cfg := base()
		cfg.Stages[0].MaxPossibleScore = 0
		require.Error(t, cfg.Validate())
	})

	t.Run(`inverted word bounds are rejected`, func(t *testing.T) {
		cfg := base()
		cfg.Stages[1].Questions[0].MinWords = 60
		require.Error(t, cfg.Validate())
	})

	t.Run(`thresholds must not increase down the ladder`, func(t *testing.T) {
		cfg := base()
		cfg.Scoring.OverallThresholds.StrongCandidate = 30
		require.Error(t, cfg.Validate())
	})
}
