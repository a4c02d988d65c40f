package betaappapimodels

import (
	"strings"

	"beta-program-backend/lib/betaapp/appconfig"
	"beta-program-backend/lib/betaapp/scoring"
	"beta-program-backend/lib/betaapp/session"
	"beta-program-backend/models"
	dbmodels "beta-program-backend/models/db"

	"github.com/pkg/errors"
)

type StartRequest struct {
	Email   string `json:"email"`
	PenName string `json:"pen_name,omitempty"`
}

func (r StartRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is not specified")
	}
	if !strings.Contains(r.Email, "@") {
		return errors.New("email is malformed")
	}
	return nil
}

type AnswerRequest struct {
	QuestionID string   `json:"question_id"`
	Value      string   `json:"value,omitempty"`
	Values     []string `json:"values,omitempty"`
}

func (r AnswerRequest) Validate() error {
	if r.QuestionID == "" {
		return errors.New("question_id is not specified")
	}
	return nil
}

func (r AnswerRequest) ToAnswer() scoring.Answer {
	return scoring.Answer{
		Text: r.Value,
		List: r.Values,
	}
}

type DecisionRequest struct {
	Decision models.Decision `json:"decision"`
	Comment  string          `json:"comment,omitempty"`
}

func (r DecisionRequest) Validate() error {
	if !r.Decision.IsValid() {
		return errors.Errorf("unknown decision %v", r.Decision)
	}
	return nil
}

type OptionView struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type QuestionView struct {
	ID            string       `json:"id"`
	Type          string       `json:"type"`
	Question      string       `json:"question"`
	Options       []OptionView `json:"options,omitempty"`
	Required      bool         `json:"required"`
	MinWords      int          `json:"min_words,omitempty"`
	MaxWords      int          `json:"max_words,omitempty"`
	Min           int          `json:"min,omitempty"`
	Max           int          `json:"max,omitempty"`
	Step          int          `json:"step,omitempty"`
	MaxSelections int          `json:"max_selections,omitempty"`
	SampleText    string       `json:"sample_text,omitempty"`
	Value         string       `json:"value,omitempty"`
	Values        []string     `json:"values,omitempty"`
	Error         string       `json:"error,omitempty"`
}

type StageView struct {
	SessionID   string         `json:"session_id"`
	StageIndex  int            `json:"stage_index"`
	TotalStages int            `json:"total_stages"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Questions   []QuestionView `json:"questions"`
	Complete    bool           `json:"complete"`
}

type StageScoreView struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Score int    `json:"score"`
}

// NextView carries either the next stage to fill in or, when the pass has
// reached a terminal state, the final result.
type NextView struct {
	Stage  *StageView  `json:"stage,omitempty"`
	Result *ResultView `json:"result,omitempty"`
}

type ResultView struct {
	SessionID      string           `json:"session_id"`
	Complete       bool             `json:"complete"`
	IsQualified    bool             `json:"is_qualified"`
	Classification string           `json:"classification,omitempty"`
	TotalScore     int              `json:"total_score"`
	StageScores    []StageScoreView `json:"stage_scores,omitempty"`
	Message        string           `json:"message,omitempty"`
}

func NewStageView(rec *session.Session) StageView {
	stage := rec.CurrentStage()
	view := StageView{
		SessionID:   rec.ID,
		StageIndex:  rec.StageIndex,
		TotalStages: rec.TotalStages(),
		Title:       stage.Title,
		Description: stage.Description,
		Questions:   make([]QuestionView, 0, len(stage.Questions)),
		Complete:    rec.ApplicationComplete,
	}
	for _, question := range stage.Questions {
		view.Questions = append(view.Questions, newQuestionView(question, rec.Answers[question.ID], rec.Errors[question.ID]))
	}
	return view
}

func newQuestionView(q appconfig.Question, answer scoring.Answer, answerErr string) QuestionView {
	view := QuestionView{
		ID:            q.ID,
		Type:          string(q.Type),
		Question:      q.Question,
		Required:      q.Required,
		MinWords:      q.MinWords,
		MaxWords:      q.MaxWords,
		Min:           q.Min,
		Max:           q.Max,
		Step:          q.Step,
		MaxSelections: q.MaxSelections,
		SampleText:    q.SampleText,
		Error:         answerErr,
	}
	for _, opt := range q.Options {
		view.Options = append(view.Options, OptionView{Text: opt.Text, Score: opt.Score})
	}
	if q.Type.IsArrayAnswer() {
		view.Values = answer.List
	} else {
		view.Value = answer.Text
	}
	return view
}

func NewResultView(rec *session.Session) ResultView {
	view := ResultView{
		SessionID:   rec.ID,
		Complete:    rec.ApplicationComplete,
		IsQualified: rec.IsQualified,
		TotalScore:  rec.TotalScore,
		Message:     rec.OutcomeMessage(),
	}
	if rec.IsQualified && rec.ApplicationComplete {
		view.Classification = string(rec.FinalClassification)
	}
	for idx, stage := range rec.Config().Stages {
		score, scored := rec.StageScores[idx]
		if !scored {
			continue
		}
		view.StageScores = append(view.StageScores, StageScoreView{
			Index: idx,
			Title: stage.Title,
			Score: score,
		})
	}
	return view
}

type ApplicationView struct {
	ID                string   `json:"id"`
	Email             string   `json:"email"`
	PenName           string   `json:"pen_name,omitempty"`
	IsQualified       bool     `json:"is_qualified"`
	Classification    string   `json:"classification,omitempty"`
	TotalScore        int      `json:"total_score"`
	StageReached      int      `json:"stage_reached"`
	StageScores       []StageScoreView `json:"stage_scores,omitempty"`
	FeedbackStrengths []string `json:"feedback_strengths,omitempty"`
	Decision          string   `json:"decision,omitempty"`
	DecisionComment   string   `json:"decision_comment,omitempty"`
	AIReview          string   `json:"ai_review,omitempty"`
	SubmittedAt       string   `json:"submitted_at"`
}

func NewApplicationView(rec dbmodels.BetaApplication) ApplicationView {
	view := ApplicationView{
		ID:                rec.ID,
		Email:             rec.Email,
		PenName:           rec.PenName,
		IsQualified:       rec.IsQualified,
		Classification:    string(rec.Classification),
		TotalScore:        rec.TotalScore,
		StageReached:      rec.StageReached,
		FeedbackStrengths: rec.FeedbackStrengths,
		Decision:          string(rec.Decision),
		DecisionComment:   rec.DecisionComment,
		AIReview:          rec.AIReview,
		SubmittedAt:       rec.SubmittedAt.Format("2006-01-02 15:04:05"),
	}
	for _, stage := range rec.StageScores.Stages {
		view.StageScores = append(view.StageScores, StageScoreView{
			Index: stage.Index,
			Title: stage.Title,
			Score: stage.Score,
		})
	}
	return view
}

type ApplicationFilter struct {
	Classification string `json:"classification,omitempty"`
	Qualified      *bool  `json:"qualified,omitempty"`
}
