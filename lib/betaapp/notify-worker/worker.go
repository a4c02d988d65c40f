package notifyworker

import (
	"context"
	"fmt"
	"time"

	"beta-program-backend/config"
	"beta-program-backend/db"
	betaappstore "beta-program-backend/lib/betaapp/store"
	"beta-program-backend/lib/smtp"
	"beta-program-backend/lib/utils/helpers"
	dbmodels "beta-program-backend/models/db"

	log "github.com/sirupsen/logrus"
)

// emails applicants the outcome of their persisted application
func StartWorker(ctx context.Context) {
	i := &impl{
		store: betaappstore.NewInstance(db.DB),
	}
	go i.run(ctx)
}

type impl struct {
	store betaappstore.Provider
}

func (i impl) getLogger() *log.Entry {
	logger := log.
		WithField("worker_name", "OutcomeNotifyWorker")
	return logger
}

func (i impl) run(ctx context.Context) {
	period := 5 * time.Second
	logger := i.getLogger()
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case <-time.After(period):
			i.handle(ctx)
		}
		period = time.Duration(config.Conf.BetaProgram.NotifyPeriodInMin) * time.Minute
	}
}

func (i impl) handle(ctx context.Context) {
	logger := i.getLogger()
	list, err := i.store.GetForNotify()
	if err != nil {
		logger.WithError(err).Error("failed to get applications pending notification")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			return
		}
		err = i.notify(rec)
		if err != nil {
			// record stays un-notified, the next run retries it
			logger.WithError(err).
				WithField("application_id", rec.ID).
				Error("failed to notify applicant")
			continue
		}
		err = i.store.SetNotified(rec.ID)
		if err != nil {
			logger.WithError(err).
				WithField("application_id", rec.ID).
				Error("failed to mark application as notified")
			continue
		}
		logger.
			WithField("application_id", rec.ID).
			Info("applicant notified")
	}
}

func (i impl) notify(rec dbmodels.BetaApplication) error {
	programName := config.Conf.BetaProgram.ProgramName
	subject := fmt.Sprintf("Your %s application", programName)
	message := fmt.Sprintf("Thank you for your interest in our %s.\r\n\r\n%s", programName, rec.OutcomeMessage())
	if rec.IsQualified {
		message = fmt.Sprintf("%s\r\n\r\nYour score: %v", message, rec.TotalScore)
	}
	return smtp.Instance.SendEMail(config.Conf.Smtp.FromEmail, rec.Email, message, subject)
}
