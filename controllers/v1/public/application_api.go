package publicapi

import (
	"beta-program-backend/controllers"
	"beta-program-backend/lib/betaapp"
	apimodels "beta-program-backend/models/api"
	betaappapimodels "beta-program-backend/models/api/betaapp"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("application", func(router fiber.Router) {
		router.Post("", controller.startApplication)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.getStage)
			idRoute.Put("answer", controller.setAnswer)
			idRoute.Post("next", controller.next)
			idRoute.Post("previous", controller.previous)
			idRoute.Post("reset", controller.reset)
			idRoute.Get("result", controller.getResult)
		})
	})
}

// @Summary Start an application session
// @Tags Beta application
// @Description Start an application session
// @Param	body body	 betaappapimodels.StartRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=betaappapimodels.StageView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/beta/application [post]
func (c *applicationApiController) startApplication(ctx *fiber.Ctx) error {
	var payload betaappapimodels.StartRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := betaapp.Instance.Start(payload)
	if err != nil {
		logger := log.WithField("email", payload.Email)
		return c.SendError(ctx, logger, err, "Failed to start the application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Get the current stage
// @Tags Beta application
// @Description Get the current stage with answers and validation errors
// @Param   id          		path    string  true         "session ID"
// @Success 200 {object} apimodels.Response{data=betaappapimodels.StageView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/beta/application/{id} [get]
func (c *applicationApiController) getStage(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := betaapp.Instance.GetStage(id)
	if err != nil {
		logger := log.WithField("session_id", id)
		return c.SendError(ctx, logger, err, "Failed to get the application stage")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Save an answer
// @Tags Beta application
// @Description Save an answer for one question of the current stage
// @Param   id          		path    string  true         "session ID"
// @Param	body body	 betaappapimodels.AnswerRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=betaappapimodels.StageView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/beta/application/{id}/answer [put]
func (c *applicationApiController) setAnswer(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload betaappapimodels.AnswerRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := betaapp.Instance.SetAnswer(id, payload)
	if err != nil {
		logger := log.WithField("session_id", id)
		return c.SendError(ctx, logger, err, "Failed to save the answer")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Validate and advance
// @Tags Beta application
// @Description Validate and score the current stage; advance, disqualify or classify
// @Param   id          		path    string  true         "session ID"
// @Success 200 {object} apimodels.Response{data=betaappapimodels.NextView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/beta/application/{id}/next [post]
func (c *applicationApiController) next(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := betaapp.Instance.Next(id)
	if err != nil {
		logger := log.WithField("session_id", id)
		return c.SendError(ctx, logger, err, "Failed to advance the application")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Go back one stage
// @Tags Beta application
// @Description Move the stage pointer back; recorded scores are kept
// @Param   id          		path    string  true         "session ID"
// @Success 200 {object} apimodels.Response{data=betaappapimodels.StageView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/beta/application/{id}/previous [post]
func (c *applicationApiController) previous(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := betaapp.Instance.Previous(id)
	if err != nil {
		logger := log.WithField("session_id", id)
		return c.SendError(ctx, logger, err, "Failed to go back")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Start over
// @Tags Beta application
// @Description Reset the session to the first stage with empty answers
// @Param   id          		path    string  true         "session ID"
// @Success 200 {object} apimodels.Response{data=betaappapimodels.StageView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/beta/application/{id}/reset [post]
func (c *applicationApiController) reset(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := betaapp.Instance.Reset(id)
	if err != nil {
		logger := log.WithField("session_id", id)
		return c.SendError(ctx, logger, err, "Failed to reset the application")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Get the final result
// @Tags Beta application
// @Description Get the terminal outcome of a completed session
// @Param   id          		path    string  true         "session ID"
// @Success 200 {object} apimodels.Response{data=betaappapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/beta/application/{id}/result [get]
func (c *applicationApiController) getResult(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := betaapp.Instance.GetResult(id)
	if err != nil {
		logger := log.WithField("session_id", id)
		return c.SendError(ctx, logger, err, "Failed to get the application result")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
