package authapimodels

import "github.com/pkg/errors"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is not specified")
	}
	if r.Password == "" {
		return errors.New("password is not specified")
	}
	return nil
}

type JWTResponse struct {
	Token string `json:"token"`
}
