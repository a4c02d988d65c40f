package dbmodels

import (
	"time"

	"beta-program-backend/models"

	"github.com/pkg/errors"
)

type AdminUser struct {
	BaseModel
	IsActive  bool
	Role      models.UserRole `gorm:"type:varchar(255)"`
	Password  string          `gorm:"type:varchar(128)"`
	FirstName string          `gorm:"type:varchar(150)"`
	LastName  string          `gorm:"type:varchar(150)"`
	Email     string          `gorm:"type:varchar(255);index"`
	LastLogin time.Time
}

func (u AdminUser) Validate() error {
	if u.Email == "" {
		return errors.New("email is not specified")
	}
	return nil
}
