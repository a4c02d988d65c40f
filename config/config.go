package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"beta-program" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"AUTH_JWT_EXPIRE_IN_SEC"`
		AdminEmail     string `default:"" env:"AUTH_ADMIN_EMAIL"`
		AdminPassword  string `default:"" env:"AUTH_ADMIN_PASSWORD"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		FromEmail  string `default:"" env:"SMTP_FROM_EMAIL"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"beta-program-exports" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	BetaProgram struct {
		ConfigPath          string `default:"beta_application.json" env:"BETA_CONFIG_PATH"`
		ProgramName         string `default:"Beta Reader Program" env:"BETA_PROGRAM_NAME"`
		SessionTTLInMin     int    `default:"120" env:"BETA_SESSION_TTL_IN_MIN"`
		CleanupPeriodInMin  int    `default:"10" env:"BETA_CLEANUP_PERIOD_IN_MIN"`
		NotifyPeriodInMin   int    `default:"2" env:"BETA_NOTIFY_PERIOD_IN_MIN"`
		AIReviewPeriodInMin int    `default:"5" env:"BETA_AI_REVIEW_PERIOD_IN_MIN"`
	}
	YandexGPT struct {
		Token     string `default:"" env:"YAGPT_TOKEN"`
		CatalogID string `default:"" env:"YAGPT_CATALOG_ID"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
