package adminpanelhandler

import (
	"fmt"
	"time"

	"beta-program-backend/config"
	"beta-program-backend/db"
	adminuserstore "beta-program-backend/lib/adminpanel/store"
	authhelpers "beta-program-backend/lib/utils/auth-helpers"
	"beta-program-backend/models"
	authapimodels "beta-program-backend/models/api/auth"
	dbmodels "beta-program-backend/models/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Login(email, password string) (response authapimodels.JWTResponse, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: adminuserstore.NewInstance(db.DB),
	}
	seedDefaultAdmin()
}

type impl struct {
	store adminuserstore.Provider
}

func (i impl) Login(email, password string) (response authapimodels.JWTResponse, err error) {
	logger := log.WithField("email", email)
	user, err := i.store.FindByEmail(email)
	if err != nil {
		logger.
			WithError(err).
			Error("failed to look up user by email")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.IsActive {
		logger.Debug("no active user with this email")
		return authapimodels.JWTResponse{}, errors.New("no active user with this email")
	}
	if authhelpers.GetMD5Hash(password) != user.Password {
		logger.Debug("password check failed")
		return authapimodels.JWTResponse{}, errors.New("password check failed")
	}
	claims := jwt.MapClaims{
		"name": fmt.Sprintf("%s %s", user.FirstName, user.LastName),
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(time.Second * time.Duration(config.Conf.Auth.JWTExpireInSec)).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(config.Conf.Auth.JWTSecret))
	if err != nil {
		logger.WithError(err).Error("failed to sign JWT")
		return authapimodels.JWTResponse{}, err
	}
	err = i.store.Update(user.ID, map[string]interface{}{"LastLogin": time.Now()})
	if err != nil {
		logger.
			WithError(err).
			Error("failed to update last login date")
	}
	return authapimodels.JWTResponse{
		Token: tokenString,
	}, nil
}

// seedDefaultAdmin creates the configured admin account on an empty install.
func seedDefaultAdmin() {
	email := config.Conf.Auth.AdminEmail
	password := config.Conf.Auth.AdminPassword
	if email == "" || password == "" {
		return
	}
	store := adminuserstore.NewInstance(db.DB)
	existing, err := store.FindByEmail(email)
	if err != nil {
		log.WithError(err).Error("failed to check for the default admin user")
		return
	}
	if existing != nil {
		return
	}
	rec := dbmodels.AdminUser{
		IsActive:  true,
		Role:      models.UserRoleAdmin,
		Password:  authhelpers.GetMD5Hash(password),
		FirstName: "Program",
		LastName:  "Admin",
		Email:     email,
	}
	if _, err = store.Save(rec); err != nil {
		log.WithError(err).Error("failed to seed the default admin user")
		return
	}
	log.WithField("email", email).Info("default admin user created")
}
