package scoring

import (
	"testing"

	"beta-program-backend/lib/betaapp/appconfig"
	"beta-program-backend/models"

	"github.com/stretchr/testify/require"
)

func TestScoreQuestion(t *testing.T) {
	t.Run(`multiple choice scores the matching option times the weight`, func(t *testing.T) {
		q := appconfig.Question{
			ID:   "reading_frequency",
			Type: appconfig.QuestionMultipleChoice,
			Options: []appconfig.Option{
				{Text: "0-5 books", Score: 1},
				{Text: "50+ books", Score: 10},
			},
			Weight: 0.33,
		}
		require.InDelta(t, 3.3, ScoreQuestion(q, Answer{Text: "50+ books"}), 0.0001)
		require.InDelta(t, 0.33, ScoreQuestion(q, Answer{Text: "0-5 books"}), 0.0001)
		require.Equal(t, 0.0, ScoreQuestion(q, Answer{Text: "not an option"}))
		require.Equal(t, 0.0, ScoreQuestion(q, Answer{}))
	})

	t.Run(`checkbox sums matched options, unknown selections are ignored`, func(t *testing.T) {
		q := appconfig.Question{
			ID:   "feedback_strengths",
			Type: appconfig.QuestionCheckboxMultiple,
			Options: []appconfig.Option{
				{Text: "Plot structure and pacing", Score: 3},
				{Text: "Character development", Score: 3},
				{Text: "Grammar and style", Score: 2},
			},
			Weight: 0.3,
		}
		answer := Answer{List: []string{"Plot structure and pacing", "Grammar and style", "Made up"}}
		require.InDelta(t, 1.5, ScoreQuestion(q, answer), 0.0001)
		require.Equal(t, 0.0, ScoreQuestion(q, Answer{List: []string{}}))
	})

	t.Run(`slider buckets the value by tens and caps at 10`, func(t *testing.T) {
		q := appconfig.Question{
			ID:     "reading_speed",
			Type:   appconfig.QuestionSlider,
			Min:    10,
			Max:    100,
			Weight: 1,
		}
		require.Equal(t, 4.0, ScoreQuestion(q, Answer{Text: "47"}))
		require.Equal(t, 10.0, ScoreQuestion(q, Answer{Text: "100"}))
		require.Equal(t, 10.0, ScoreQuestion(q, Answer{Text: "250"}))
		require.Equal(t, 0.0, ScoreQuestion(q, Answer{Text: "5"}))
		require.Equal(t, 0.0, ScoreQuestion(q, Answer{Text: "not a number"}))
		require.Equal(t, 0.0, ScoreQuestion(q, Answer{}))
	})

	t.Run(`textarea scores presence only`, func(t *testing.T) {
		q := appconfig.Question{
			ID:     "motivation",
			Type:   appconfig.QuestionTextarea,
			Weight: 0.4,
		}
		require.InDelta(t, 2.0, ScoreQuestion(q, Answer{Text: "a short but honest answer"}), 0.0001)
		require.Equal(t, 0.0, ScoreQuestion(q, Answer{Text: "   "}))
		require.Equal(t, 0.0, ScoreQuestion(q, Answer{}))
	})

	t.Run(`date range contributes nothing`, func(t *testing.T) {
		q := appconfig.Question{
			ID:     "availability_window",
			Type:   appconfig.QuestionDateRange,
			Weight: 0.3,
		}
		require.Equal(t, 0.0, ScoreQuestion(q, Answer{List: []string{"2026-09-01", "2026-10-01"}}))
	})
}

func TestScoreStage(t *testing.T) {
	newMC := func(id string, weight float64) appconfig.Question {
		return appconfig.Question{
			ID:   id,
			Type: appconfig.QuestionMultipleChoice,
			Options: []appconfig.Option{
				{Text: "low", Score: 5},
				{Text: "high", Score: 10},
			},
			Weight:   weight,
			Required: true,
		}
	}
	stage := appconfig.Stage{
		Title:            "Basic Information & Pre-Screening",
		MaxPossibleScore: 30,
		Questions: []appconfig.Question{
			newMC("q1", 0.33),
			newMC("q2", 0.33),
			newMC("q3", 0.34),
		},
	}

	t.Run(`perfect answers reach the stage maximum`, func(t *testing.T) {
		answers := AnswerMap{
			"q1": {Text: "high"},
			"q2": {Text: "high"},
			"q3": {Text: "high"},
		}
		require.Equal(t, 30, ScoreStage(stage, answers))
	})

	t.Run(`mid answers rescale to half the maximum`, func(t *testing.T) {
		answers := AnswerMap{
			"q1": {Text: "low"},
			"q2": {Text: "low"},
			"q3": {Text: "low"},
		}
		require.Equal(t, 15, ScoreStage(stage, answers))
	})

	t.Run(`empty answers score zero`, func(t *testing.T) {
		require.Equal(t, 0, ScoreStage(stage, AnswerMap{}))
	})
}

func TestValidateStage(t *testing.T) {
	t.Run(`required fields must be answered`, func(t *testing.T) {
		stage := appconfig.Stage{
			Questions: []appconfig.Question{
				{ID: "q1", Type: appconfig.QuestionMultipleChoice, Options: []appconfig.Option{{Text: "a", Score: 1}}, Required: true},
				{ID: "q2", Type: appconfig.QuestionCheckboxMultiple, Options: []appconfig.Option{{Text: "a", Score: 1}}, Required: true},
			},
		}
		valid, stageErrors := ValidateStage(stage, AnswerMap{"q2": {List: []string{}}})
		require.False(t, valid)
		require.Equal(t, "This field is required.", stageErrors["q1"])
		require.Equal(t, "This field is required.", stageErrors["q2"])
	})

	t.Run(`textarea word bounds apply to non-empty required answers`, func(t *testing.T) {
		stage := appconfig.Stage{
			Questions: []appconfig.Question{
				{ID: "short", Type: appconfig.QuestionTextarea, Required: true, MinWords: 5, MaxWords: 10},
				{ID: "long", Type: appconfig.QuestionTextarea, Required: true, MinWords: 1, MaxWords: 3},
			},
		}
		answers := AnswerMap{
			"short": {Text: "way too short"},
			"long":  {Text: "this one is too long"},
		}
		valid, stageErrors := ValidateStage(stage, answers)
		require.False(t, valid)
		require.Equal(t, "Minimum 5 words required.", stageErrors["short"])
		require.Equal(t, "Maximum 3 words allowed.", stageErrors["long"])
	})

	t.Run(`optional textarea may stay empty`, func(t *testing.T) {
		stage := appconfig.Stage{
			Questions: []appconfig.Question{
				{ID: "q1", Type: appconfig.QuestionTextarea, MinWords: 5},
			},
		}
		valid, stageErrors := ValidateStage(stage, AnswerMap{"q1": {}})
		require.True(t, valid)
		require.Empty(t, stageErrors)
	})

	t.Run(`selection limit applies even without the required flag`, func(t *testing.T) {
		stage := appconfig.Stage{
			Questions: []appconfig.Question{
				{
					ID:            "q1",
					Type:          appconfig.QuestionCheckboxMultiple,
					Options:       []appconfig.Option{{Text: "a", Score: 1}, {Text: "b", Score: 1}, {Text: "c", Score: 1}},
					MaxSelections: 2,
				},
			},
		}
		valid, stageErrors := ValidateStage(stage, AnswerMap{"q1": {List: []string{"a", "b", "c"}}})
		require.False(t, valid)
		require.Equal(t, "You can select a maximum of 2 options.", stageErrors["q1"])
	})
}

func TestCountWords(t *testing.T) {
	require.Equal(t, 0, CountWords(""))
	require.Equal(t, 0, CountWords("   \t\n"))
	require.Equal(t, 3, CountWords("one two three"))
	require.Equal(t, 3, CountWords("  one\n two\tthree  "))
}

func TestClassify(t *testing.T) {
	thresholds := appconfig.Thresholds{
		AutoAccept:        90,
		StrongCandidate:   75,
		InterviewRequired: 60,
		AutoReject:        0,
	}
	t.Run(`threshold boundaries`, func(t *testing.T) {
		require.Equal(t, models.ClassificationAutoAccept, Classify(150, thresholds))
		require.Equal(t, models.ClassificationAutoAccept, Classify(90, thresholds))
		require.Equal(t, models.ClassificationStrongCandidate, Classify(89, thresholds))
		require.Equal(t, models.ClassificationStrongCandidate, Classify(75, thresholds))
		require.Equal(t, models.ClassificationInterviewRequired, Classify(74, thresholds))
		require.Equal(t, models.ClassificationInterviewRequired, Classify(60, thresholds))
		require.Equal(t, models.ClassificationAutoReject, Classify(59, thresholds))
		require.Equal(t, models.ClassificationAutoReject, Classify(0, thresholds))
	})
}
