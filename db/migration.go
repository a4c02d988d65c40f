package db

import (
	dbmodels "beta-program-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.BetaApplication{}); err != nil {
		return errors.Wrap(err, "failed to migrate BetaApplication")
	}
	if err := DB.AutoMigrate(&dbmodels.AdminUser{}); err != nil {
		return errors.Wrap(err, "failed to migrate AdminUser")
	}
	log.Info("migrations finished")
	return nil
}
