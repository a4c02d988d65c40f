package reviewworker

import (
	"context"
	"time"

	"beta-program-backend/config"
	"beta-program-backend/db"
	betaappstore "beta-program-backend/lib/betaapp/store"
	gpthandler "beta-program-backend/lib/gpt"
	"beta-program-backend/lib/utils/helpers"

	log "github.com/sirupsen/logrus"
)

// advisory AI review of free-text answers for qualified applications
func StartWorker(ctx context.Context) {
	if !gpthandler.Instance.Enabled() {
		log.Info("AI review worker disabled, no YandexGPT credentials configured")
		return
	}
	i := &impl{
		store: betaappstore.NewInstance(db.DB),
		gpt:   gpthandler.Instance,
	}
	go i.run(ctx)
}

type impl struct {
	store betaappstore.Provider
	gpt   gpthandler.Provider
}

func (i impl) getLogger() *log.Entry {
	logger := log.
		WithField("worker_name", "AIReviewWorker")
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
		period = time.Duration(config.Conf.BetaProgram.AIReviewPeriodInMin) * time.Minute
	}
}

func (i impl) handle(ctx context.Context) {
	logger := i.getLogger()
	list, err := i.store.GetForAIReview()
	if err != nil {
		logger.WithError(err).Error("failed to get applications pending review")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			return
		}
		review, err := i.gpt.ReviewFreeText(rec)
		if err != nil {
			logger.WithError(err).
				WithField("application_id", rec.ID).
				Error("failed to review application")
			continue
		}
		err = i.store.SetAIReview(rec.ID, review)
		if err != nil {
			logger.WithError(err).
				WithField("application_id", rec.ID).
				Error("failed to save application review")
			continue
		}
		logger.
			WithField("application_id", rec.ID).
			Info("application reviewed")
	}
}
