package betaapp

import (
	"time"

	"beta-program-backend/config"
	"beta-program-backend/db"
	"beta-program-backend/lib/betaapp/appconfig"
	"beta-program-backend/lib/betaapp/session"
	betaappstore "beta-program-backend/lib/betaapp/store"
	betaappapimodels "beta-program-backend/models/api/betaapp"
	dbmodels "beta-program-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const msgSessionNotFound = "application session not found"

// question whose selections are lifted into a dedicated column for filtering
const feedbackStrengthsQuestionID = "feedback_strengths"

type Provider interface {
	Start(req betaappapimodels.StartRequest) (*betaappapimodels.StageView, error)
	GetStage(id string) (view *betaappapimodels.StageView, hMsg string, err error)
	SetAnswer(id string, req betaappapimodels.AnswerRequest) (view *betaappapimodels.StageView, hMsg string, err error)
	Next(id string) (view *betaappapimodels.NextView, hMsg string, err error)
	Previous(id string) (view *betaappapimodels.StageView, hMsg string, err error)
	Reset(id string) (view *betaappapimodels.StageView, hMsg string, err error)
	GetResult(id string) (view *betaappapimodels.ResultView, hMsg string, err error)
	DropIdleSessions(ttl time.Duration) int
}

var Instance Provider

func NewHandler(cfg *appconfig.ApplicationConfig) {
	Instance = &impl{
		cfg:      cfg,
		sessions: session.NewStore(),
		store:    betaappstore.NewInstance(db.DB),
	}
}

type impl struct {
	cfg      *appconfig.ApplicationConfig
	sessions session.StoreProvider
	store    betaappstore.Provider
}

func (i impl) Start(req betaappapimodels.StartRequest) (*betaappapimodels.StageView, error) {
	rec := i.sessions.Create(req.Email, req.PenName, i.cfg)
	log.
		WithField("session_id", rec.ID).
		WithField("email", rec.Email).
		Info("application session started")
	rec.Lock()
	defer rec.Unlock()
	view := betaappapimodels.NewStageView(rec)
	return &view, nil
}

func (i impl) GetStage(id string) (*betaappapimodels.StageView, string, error) {
	rec := i.sessions.Get(id)
	if rec == nil {
		return nil, msgSessionNotFound, nil
	}
	rec.Lock()
	defer rec.Unlock()
	rec.Touch()
	view := betaappapimodels.NewStageView(rec)
	return &view, "", nil
}

func (i impl) SetAnswer(id string, req betaappapimodels.AnswerRequest) (*betaappapimodels.StageView, string, error) {
	rec := i.sessions.Get(id)
	if rec == nil {
		return nil, msgSessionNotFound, nil
	}
	rec.Lock()
	defer rec.Unlock()
	rec.Touch()
	if err := rec.SetAnswer(req.QuestionID, req.ToAnswer()); err != nil {
		return nil, err.Error(), nil
	}
	view := betaappapimodels.NewStageView(rec)
	return &view, "", nil
}

func (i impl) Next(id string) (*betaappapimodels.NextView, string, error) {
	rec := i.sessions.Get(id)
	if rec == nil {
		return nil, msgSessionNotFound, nil
	}
	rec.Lock()
	defer rec.Unlock()
	rec.Touch()
	if rec.ApplicationComplete {
		return nil, "application is already complete", nil
	}
	if err := rec.Next(); err != nil {
		return nil, "", err
	}
	if rec.ApplicationComplete {
		if err := i.persist(rec); err != nil {
			// the outcome is still shown; the record is only lost for admins
			log.
				WithError(err).
				WithField("session_id", rec.ID).
				Error("failed to persist completed application")
		}
		result := betaappapimodels.NewResultView(rec)
		return &betaappapimodels.NextView{Result: &result}, "", nil
	}
	stage := betaappapimodels.NewStageView(rec)
	return &betaappapimodels.NextView{Stage: &stage}, "", nil
}

func (i impl) Previous(id string) (*betaappapimodels.StageView, string, error) {
	rec := i.sessions.Get(id)
	if rec == nil {
		return nil, msgSessionNotFound, nil
	}
	rec.Lock()
	defer rec.Unlock()
	rec.Touch()
	if err := rec.Previous(); err != nil {
		return nil, err.Error(), nil
	}
	view := betaappapimodels.NewStageView(rec)
	return &view, "", nil
}

func (i impl) Reset(id string) (*betaappapimodels.StageView, string, error) {
	rec := i.sessions.Get(id)
	if rec == nil {
		return nil, msgSessionNotFound, nil
	}
	rec.Lock()
	defer rec.Unlock()
	rec.Reset()
	log.
		WithField("session_id", rec.ID).
		Info("application session reset")
	view := betaappapimodels.NewStageView(rec)
	return &view, "", nil
}

func (i impl) GetResult(id string) (*betaappapimodels.ResultView, string, error) {
	rec := i.sessions.Get(id)
	if rec == nil {
		return nil, msgSessionNotFound, nil
	}
	rec.Lock()
	defer rec.Unlock()
	rec.Touch()
	if !rec.ApplicationComplete {
		return nil, "application is not complete yet", nil
	}
	view := betaappapimodels.NewResultView(rec)
	return &view, "", nil
}

func (i impl) DropIdleSessions(ttl time.Duration) int {
	return i.sessions.DropIdle(ttl)
}

func (i impl) persist(rec *session.Session) error {
	app := dbmodels.BetaApplication{
		Email:        rec.Email,
		PenName:      rec.PenName,
		IsQualified:  rec.IsQualified,
		TotalScore:   rec.TotalScore,
		StageReached: rec.StageIndex + 1,
		SubmittedAt:  rec.CompletedAt,
	}
	if rec.IsQualified {
		app.Classification = rec.FinalClassification
	}
	for idx, stage := range rec.Config().Stages {
		score, scored := rec.StageScores[idx]
		if !scored {
			continue
		}
		app.StageScores.Stages = append(app.StageScores.Stages, dbmodels.StageScore{
			Index:       idx,
			Key:         stage.Key,
			Title:       stage.Title,
			Score:       score,
			MinRequired: stage.MinScoreRequired,
		})
	}
	for _, stage := range rec.Config().Stages {
		for _, question := range stage.Questions {
			answer := rec.Answers[question.ID]
			if answer.IsEmpty(question.Type) {
				continue
			}
			item := dbmodels.ApplicationAnswer{
				QuestionID: question.ID,
				Question:   question.Question,
				Type:       string(question.Type),
			}
			if question.Type.IsArrayAnswer() {
				item.List = answer.List
			} else {
				item.Text = answer.Text
			}
			app.Answers.Items = append(app.Answers.Items, item)
			if question.ID == feedbackStrengthsQuestionID {
				app.FeedbackStrengths = answer.List
			}
		}
	}
	_, err := i.store.Save(app)
	if err != nil {
		return errors.Wrap(err, "failed to save application")
	}
	return nil
}

// SessionTTL resolves the configured idle lifetime of in-memory sessions.
func SessionTTL() time.Duration {
	return time.Duration(config.Conf.BetaProgram.SessionTTLInMin) * time.Minute
}
