package scoring

import (
	"math"
	"strconv"
	"strings"

	"beta-program-backend/lib/betaapp/appconfig"
)

// Answer is the value of a single question. Text carries scalar answers
// (multiple_choice, slider, textarea), List carries array answers
// (checkbox_multiple, date_range).
type Answer struct {
	Text string
	List []string
}

func (a Answer) IsEmpty(t appconfig.QuestionType) bool {
	if t.IsArrayAnswer() {
		return len(a.List) == 0
	}
	return a.Text == ""
}

// AnswerMap holds the current answers keyed by question id.
type AnswerMap map[string]Answer

// NewAnswerMap initializes every question with its empty value:
// array-typed questions with an empty list, the rest with an empty string.
func NewAnswerMap(cfg *appconfig.ApplicationConfig) AnswerMap {
	answers := AnswerMap{}
	for _, stage := range cfg.Stages {
		for _, question := range stage.Questions {
			if question.Type.IsArrayAnswer() {
				answers[question.ID] = Answer{List: []string{}}
			} else {
				answers[question.ID] = Answer{}
			}
		}
	}
	return answers
}

func CountWords(text string) int {
	count := 0
	for _, word := range strings.Fields(text) {
		if len(word) > 0 {
			count++
		}
	}
	return count
}

const (
	textareaPresenceScore = 5
	sliderScoreCap        = 10
	// stage aggregation rescales the weighted sum against an assumed
	// base-10 question scale; see ScoreStage
	baseQuestionScale = 10
)

// ScoreQuestion returns the weighted raw score of one answered question.
func ScoreQuestion(q appconfig.Question, answer Answer) float64 {
	score := 0.0
	switch q.Type {
	case appconfig.QuestionMultipleChoice:
		for _, opt := range q.Options {
			if opt.Text == answer.Text {
				score = float64(opt.Score)
				break
			}
		}
	case appconfig.QuestionCheckboxMultiple:
		for _, selected := range answer.List {
			for _, opt := range q.Options {
				if opt.Text == selected {
					score += float64(opt.Score)
					break
				}
			}
		}
	case appconfig.QuestionSlider:
		if answer.Text != "" {
			value, err := strconv.Atoi(answer.Text)
			if err == nil {
				score = math.Min(sliderScoreCap, math.Floor(float64(value)/10))
			}
		}
	case appconfig.QuestionTextarea:
		if CountWords(answer.Text) > 0 {
			score = textareaPresenceScore
		}
	case appconfig.QuestionDateRange:
		// not scored yet, contributes 0
	}
	return score * q.Weight
}

// ScoreStage sums the weighted question scores and rescales them into the
// 0..max_possible_score range, assuming weighted scores sum to roughly 10
// per stage. The convention comes from the questionnaire authors; changing
// it silently changes pass/fail outcomes.
func ScoreStage(stage appconfig.Stage, answers AnswerMap) int {
	score := 0.0
	for _, question := range stage.Questions {
		score += ScoreQuestion(question, answers[question.ID])
	}
	return int(math.Round(score * float64(stage.MaxPossibleScore) / baseQuestionScale))
}
