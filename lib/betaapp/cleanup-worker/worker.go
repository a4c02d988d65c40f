package cleanupworker

import (
	"context"
	"time"

	"beta-program-backend/config"
	"beta-program-backend/lib/betaapp"

	log "github.com/sirupsen/logrus"
)

// drops in-memory application sessions idle beyond the configured TTL
func StartWorker(ctx context.Context) {
	i := &impl{
		betaApp: betaapp.Instance,
	}
	go i.run(ctx)
}

type impl struct {
	betaApp betaapp.Provider
}

func (i impl) getLogger() *log.Entry {
	logger := log.
		WithField("worker_name", "SessionCleanupWorker")
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
			i.handle()
		}
		period = time.Duration(config.Conf.BetaProgram.CleanupPeriodInMin) * time.Minute
	}
}

func (i impl) handle() {
	dropped := i.betaApp.DropIdleSessions(betaapp.SessionTTL())
	if dropped > 0 {
		i.getLogger().
			WithField("dropped", dropped).
			Info("idle application sessions dropped")
	}
}
