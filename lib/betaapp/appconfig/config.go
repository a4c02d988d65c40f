package appconfig

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

type QuestionType string

const (
	QuestionMultipleChoice   QuestionType = "multiple_choice"
	QuestionCheckboxMultiple QuestionType = "checkbox_multiple"
	QuestionTextarea         QuestionType = "textarea"
	QuestionSlider           QuestionType = "slider"
	QuestionDateRange        QuestionType = "date_range"
)

func (t QuestionType) IsKnown() bool {
	switch t {
	case QuestionMultipleChoice, QuestionCheckboxMultiple, QuestionTextarea, QuestionSlider, QuestionDateRange:
		return true
	}
	return false
}

// IsArrayAnswer reports whether the answer value is a list of strings
// rather than a single string.
func (t QuestionType) IsArrayAnswer() bool {
	return t == QuestionCheckboxMultiple || t == QuestionDateRange
}

type Option struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type ScoringCriterion struct {
	Aspect   string `json:"aspect"`
	MaxScore int    `json:"max_score"`
}

type Question struct {
	ID              string             `json:"id"`
	Type            QuestionType       `json:"type"`
	Question        string             `json:"question"`
	Options         []Option           `json:"options,omitempty"`
	Weight          float64            `json:"weight"`
	Required        bool               `json:"required"`
	MinWords        int                `json:"min_words,omitempty"`
	MaxWords        int                `json:"max_words,omitempty"`
	Min             int                `json:"min,omitempty"`
	Max             int                `json:"max,omitempty"`
	Step            int                `json:"step,omitempty"`
	MaxSelections   int                `json:"max_selections,omitempty"`
	SampleText      string             `json:"sample_text,omitempty"`
	ScoringCriteria []ScoringCriterion `json:"scoring_criteria,omitempty"`
}

type Stage struct {
	Key              string     `json:"-"` // key in application_stages, kept for reporting
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	AutoDisqualify   bool       `json:"auto_disqualify,omitempty"`
	MinScoreRequired int        `json:"min_score_required"`
	MaxPossibleScore int        `json:"max_possible_score"`
	Questions        []Question `json:"questions"`
}

type Thresholds struct {
	AutoAccept        int `json:"auto_accept"`
	StrongCandidate   int `json:"strong_candidate"`
	InterviewRequired int `json:"interview_required"`
	AutoReject        int `json:"auto_reject"`
}

type ScoringSystem struct {
	OverallThresholds Thresholds     `json:"overall_thresholds"`
	StageRequirements map[string]int `json:"stage_requirements,omitempty"`
	BonusCriteria     map[string]int `json:"bonus_criteria,omitempty"`
}

type ApplicationConfig struct {
	Stages  []Stage
	Scoring ScoringSystem
}

func (c ApplicationConfig) FindQuestion(id string) (Question, bool) {
	for _, stage := range c.Stages {
		for _, question := range stage.Questions {
			if question.ID == id {
				return question, true
			}
		}
	}
	return Question{}, false
}

func Load(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read application config %v", path)
	}
	return Parse(data)
}

func Parse(data []byte) (*ApplicationConfig, error) {
	doc := struct {
		ApplicationStages json.RawMessage `json:"application_stages"`
		ScoringSystem     ScoringSystem   `json:"scoring_system"`
	}{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode application config")
	}
	if len(doc.ApplicationStages) == 0 {
		return nil, errors.New("application config has no application_stages")
	}
	stages, err := decodeStagesInOrder(doc.ApplicationStages)
	if err != nil {
		return nil, err
	}
	cfg := ApplicationConfig{
		Stages:  stages,
		Scoring: doc.ScoringSystem,
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decodeStagesInOrder walks the application_stages object token by token.
// Stage index is the document order of the keys; a plain map would lose it.
func decodeStagesInOrder(raw json.RawMessage) ([]Stage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode application_stages")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("application_stages is not an object")
	}
	stages := []Stage{}
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode stage key")
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("unexpected token in application_stages")
		}
		stage := Stage{}
		if err = dec.Decode(&stage); err != nil {
			return nil, errors.Wrapf(err, "failed to decode stage %v", key)
		}
		stage.Key = key
		stages = append(stages, stage)
	}
	return stages, nil
}

// Validate fails fast on a malformed questionnaire instead of letting it
// silently score to zero at runtime.
func (c ApplicationConfig) Validate() error {
	if len(c.Stages) == 0 {
		return errors.New("application config has no stages")
	}
	seen := map[string]bool{}
	for _, stage := range c.Stages {
		if len(stage.Questions) == 0 {
			return errors.Errorf("stage %v has no questions", stage.Key)
		}
		if stage.MaxPossibleScore <= 0 {
			return errors.Errorf("stage %v: max_possible_score must be positive", stage.Key)
		}
		if stage.MinScoreRequired < 0 {
			return errors.Errorf("stage %v: min_score_required is negative", stage.Key)
		}
		for _, question := range stage.Questions {
			if err := validateQuestion(question); err != nil {
				return errors.Wrapf(err, "stage %v", stage.Key)
			}
			if seen[question.ID] {
				return errors.Errorf("stage %v: duplicate question id %v", stage.Key, question.ID)
			}
			seen[question.ID] = true
		}
	}
	return c.Scoring.OverallThresholds.Validate()
}

func validateQuestion(q Question) error {
	if q.ID == "" {
		return errors.New("question without id")
	}
	if !q.Type.IsKnown() {
		return errors.Errorf("question %v: unknown type %v", q.ID, q.Type)
	}
	if q.Weight < 0 {
		return errors.Errorf("question %v: negative weight", q.ID)
	}
	switch q.Type {
	case QuestionMultipleChoice, QuestionCheckboxMultiple:
		if len(q.Options) == 0 {
			return errors.Errorf("question %v: choice question without options", q.ID)
		}
		for _, opt := range q.Options {
			if opt.Text == "" {
				return errors.Errorf("question %v: option without text", q.ID)
			}
			if opt.Score < 0 {
				return errors.Errorf("question %v: option %v has negative score", q.ID, opt.Text)
			}
		}
		if q.Type == QuestionCheckboxMultiple && q.MaxSelections < 0 {
			return errors.Errorf("question %v: negative max_selections", q.ID)
		}
	case QuestionTextarea:
		if q.MinWords < 0 || q.MaxWords < 0 {
			return errors.Errorf("question %v: negative word bound", q.ID)
		}
		if q.MinWords > 0 && q.MaxWords > 0 && q.MinWords > q.MaxWords {
			return errors.Errorf("question %v: min_words %v exceeds max_words %v", q.ID, q.MinWords, q.MaxWords)
		}
	case QuestionSlider:
		if q.Max < q.Min {
			return errors.Errorf("question %v: slider max %v is below min %v", q.ID, q.Max, q.Min)
		}
	}
	return nil
}

// Validate enforces the order the classifier evaluates thresholds in.
func (t Thresholds) Validate() error {
	if t.AutoAccept < t.StrongCandidate ||
		t.StrongCandidate < t.InterviewRequired ||
		t.InterviewRequired < t.AutoReject {
		return errors.New("overall_thresholds are not monotonically non-increasing")
	}
	return nil
}
