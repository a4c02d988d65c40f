package v1

import (
	"beta-program-backend/controllers"
	adminpanelhandler "beta-program-backend/lib/adminpanel"
	apimodels "beta-program-backend/models/api"
	authapimodels "beta-program-backend/models/api/auth"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", controller.login)
	})
}

// @Summary Log in to the admin panel
// @Tags Auth
// @Description Exchange admin credentials for a JWT
// @Param	body body	 authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := adminpanelhandler.Instance.Login(payload.Email, payload.Password)
	if err != nil {
		log.
			WithField("email", payload.Email).
			WithError(err).
			Debug("login attempt rejected")
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("invalid credentials"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
