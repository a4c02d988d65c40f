package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"beta-program-backend/models"

	"github.com/lib/pq"
)

type BetaApplication struct {
	BaseModel
	Email             string                `gorm:"type:varchar(255);index"`
	PenName           string                `gorm:"type:varchar(150)"`
	IsQualified       bool                  `gorm:"index"`
	Classification    models.Classification `gorm:"type:varchar(32);index"` // empty for disqualified applications
	TotalScore        int
	StageReached      int
	StageScores       StageScoreLedger   `gorm:"type:jsonb"`
	Answers           ApplicationAnswers `gorm:"type:jsonb"`
	FeedbackStrengths pq.StringArray     `gorm:"type:text[]"`
	Decision          models.Decision    `gorm:"type:varchar(32)"` // admin override of interview_required outcomes
	DecisionComment   string             `gorm:"type:varchar(1024)"`
	IsNotified        bool
	IsReviewed        bool
	AIReview          string `gorm:"type:text"`
	SubmittedAt       time.Time
}

func (j StageScoreLedger) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *StageScoreLedger) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type StageScoreLedger struct {
	Stages []StageScore `json:"stages"`
}

type StageScore struct {
	Index       int    `json:"index"` // 0-based stage index
	Key         string `json:"key"`
	Title       string `json:"title"`
	Score       int    `json:"score"`
	MinRequired int    `json:"min_required"`
}

func (j ApplicationAnswers) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ApplicationAnswers) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type ApplicationAnswers struct {
	Items []ApplicationAnswer `json:"items"`
}

type ApplicationAnswer struct {
	QuestionID string   `json:"question_id"`
	Question   string   `json:"question"`
	Type       string   `json:"type"`
	Text       string   `json:"text,omitempty"`
	List       []string `json:"list,omitempty"`
}

// FreeTextAnswers returns textarea answers in questionnaire order.
func (j ApplicationAnswers) FreeTextAnswers() []ApplicationAnswer {
	result := []ApplicationAnswer{}
	for _, item := range j.Items {
		if item.Type == "textarea" && item.Text != "" {
			result = append(result, item)
		}
	}
	return result
}

func (r BetaApplication) OutcomeMessage() string {
	if !r.IsQualified {
		return models.DisqualifiedMessage
	}
	return r.Classification.Message()
}
