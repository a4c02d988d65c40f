package session

import (
	"sync"
	"time"

	"beta-program-backend/lib/betaapp/appconfig"
	"beta-program-backend/lib/betaapp/scoring"
	"beta-program-backend/models"

	"github.com/pkg/errors"
)

// Session is one applicant's linear pass through the questionnaire. It lives
// in memory only; a terminal session is persisted elsewhere and the session
// itself is discarded on reset or TTL expiry.
type Session struct {
	ID      string
	Email   string
	PenName string

	mx  sync.Mutex
	cfg *appconfig.ApplicationConfig

	StageIndex          int
	Answers             scoring.AnswerMap
	Errors              map[string]string
	StageScores         map[int]int
	IsQualified         bool
	ApplicationComplete bool
	FinalClassification models.Classification
	TotalScore          int

	StartedAt   time.Time
	LastActive  time.Time
	CompletedAt time.Time
}

func New(id, email, penName string, cfg *appconfig.ApplicationConfig) *Session {
	now := time.Now()
	return &Session{
		ID:          id,
		Email:       email,
		PenName:     penName,
		cfg:         cfg,
		Answers:     scoring.NewAnswerMap(cfg),
		Errors:      map[string]string{},
		StageScores: map[int]int{},
		IsQualified: true,
		StartedAt:   now,
		LastActive:  now,
	}
}

func (s *Session) Config() *appconfig.ApplicationConfig {
	return s.cfg
}

func (s *Session) CurrentStage() appconfig.Stage {
	return s.cfg.Stages[s.StageIndex]
}

func (s *Session) TotalStages() int {
	return len(s.cfg.Stages)
}

// Lock serializes access to the session. Handlers serve the same session id
// from concurrent goroutines and the cleanup worker reads LastActive; the
// caller holds the lock for the whole operation, view building included.
func (s *Session) Lock() {
	s.mx.Lock()
}

func (s *Session) Unlock() {
	s.mx.Unlock()
}

func (s *Session) Touch() {
	s.LastActive = time.Now()
}

// SetAnswer overwrites the answer for the question and clears its
// validation error, so an edited field is no longer flagged.
func (s *Session) SetAnswer(questionID string, answer scoring.Answer) error {
	if s.ApplicationComplete {
		return errors.New("application is already complete")
	}
	question, found := s.cfg.FindQuestion(questionID)
	if !found {
		return errors.Errorf("unknown question %v", questionID)
	}
	if question.Type.IsArrayAnswer() && answer.List == nil {
		answer.List = []string{}
	}
	s.Answers[questionID] = answer
	delete(s.Errors, questionID)
	return nil
}

// Next validates and scores the current stage. The score is recorded in the
// ledger before the gate fires; a failed gate terminates the session as
// disqualified without a classification. The last stage passing the gate
// classifies the whole application.
func (s *Session) Next() error {
	if s.ApplicationComplete {
		return errors.New("application is already complete")
	}
	stage := s.CurrentStage()
	valid, stageErrors := scoring.ValidateStage(stage, s.Answers)
	s.Errors = stageErrors
	if !valid {
		return nil
	}

	score := scoring.ScoreStage(stage, s.Answers)
	s.StageScores[s.StageIndex] = score

	if stage.MinScoreRequired > 0 && score < stage.MinScoreRequired {
		s.IsQualified = false
		s.complete()
		return nil
	}

	if s.StageIndex < s.TotalStages()-1 {
		s.StageIndex++
		return nil
	}
	s.classify()
	return nil
}

// Previous moves the stage pointer back only. A score already recorded for
// the stage stays in the ledger and is not recomputed on revisit.
func (s *Session) Previous() error {
	if s.ApplicationComplete {
		return errors.New("application is already complete")
	}
	if s.StageIndex > 0 {
		s.StageIndex--
	}
	return nil
}

// Reset reinitializes all per-pass state, keeping the applicant identity.
func (s *Session) Reset() {
	s.StageIndex = 0
	s.Answers = scoring.NewAnswerMap(s.cfg)
	s.Errors = map[string]string{}
	s.StageScores = map[int]int{}
	s.IsQualified = true
	s.ApplicationComplete = false
	s.FinalClassification = ""
	s.TotalScore = 0
	s.StartedAt = time.Now()
	s.CompletedAt = time.Time{}
	s.Touch()
}

func (s *Session) classify() {
	total := 0
	for _, score := range s.StageScores {
		total += score
	}
	s.TotalScore = total
	s.FinalClassification = scoring.Classify(total, s.cfg.Scoring.OverallThresholds)
	s.complete()
}

func (s *Session) complete() {
	s.ApplicationComplete = true
	s.CompletedAt = time.Now()
}

// OutcomeMessage is the applicant-facing text for a terminal session.
func (s *Session) OutcomeMessage() string {
	if !s.ApplicationComplete {
		return ""
	}
	if !s.IsQualified {
		return models.DisqualifiedMessage
	}
	return s.FinalClassification.Message()
}
