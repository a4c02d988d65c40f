package initializers

import (
	"context"
	"time"

	"beta-program-backend/config"
	"beta-program-backend/fiberlog"
	adminpanelhandler "beta-program-backend/lib/adminpanel"
	"beta-program-backend/lib/betaapp"
	betaappadmin "beta-program-backend/lib/betaapp/admin"
	"beta-program-backend/lib/betaapp/appconfig"
	cleanupworker "beta-program-backend/lib/betaapp/cleanup-worker"
	notifyworker "beta-program-backend/lib/betaapp/notify-worker"
	reviewworker "beta-program-backend/lib/betaapp/review-worker"
	xlsexport "beta-program-backend/lib/export/xls"
	gpthandler "beta-program-backend/lib/gpt"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	cfg, err := appconfig.Load(config.Conf.BetaProgram.ConfigPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load the application questionnaire")
	}
	gpthandler.NewHandler()
	adminpanelhandler.NewHandler()
	xlsexport.NewHandler()
	betaapp.NewHandler(cfg)
	betaappadmin.NewHandler()
	go initWorkers(ctx)
}

// workers start with a gap to spread the load
func initWorkers(ctx context.Context) {
	cleanupworker.StartWorker(ctx)

	if makeTimeGap(ctx) {
		notifyworker.StartWorker(ctx)
	}
	if makeTimeGap(ctx) {
		reviewworker.StartWorker(ctx)
	}
}

func makeTimeGap(ctx context.Context) (canRun bool) {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second * 10):
		return true
	}
}
