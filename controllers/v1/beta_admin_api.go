package v1

import (
	"strconv"

	"beta-program-backend/controllers"
	betaappadmin "beta-program-backend/lib/betaapp/admin"
	apimodels "beta-program-backend/models/api"
	betaappapimodels "beta-program-backend/models/api/betaapp"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type betaAdminApiController struct {
	controllers.BaseAPIController
}

func InitBetaAdminApiRouters(app *fiber.App) {
	controller := betaAdminApiController{}
	app.Route("applications", func(router fiber.Router) {
		router.Get("", controller.listApplications)
		router.Post("export", controller.exportApplications)
		router.Get("export/:name", controller.downloadExport)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.getApplication)
			idRoute.Put("decision", controller.setDecision)
			idRoute.Get("summary", controller.getSummary)
		})
	})
}

func parseApplicationFilter(ctx *fiber.Ctx) betaappapimodels.ApplicationFilter {
	filter := betaappapimodels.ApplicationFilter{
		Classification: ctx.Query("classification"),
	}
	if raw := ctx.Query("qualified"); raw != "" {
		if qualified, err := strconv.ParseBool(raw); err == nil {
			filter.Qualified = &qualified
		}
	}
	return filter
}

// @Summary List submitted applications
// @Tags Beta admin
// @Description List submitted applications, newest first
// @Param   classification	query	string	false	"filter by classification"
// @Param   qualified		query	bool	false	"filter by qualification"
// @Param   page			query	int		false	"page number"
// @Param   limit			query	int		false	"records per page"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]betaappapimodels.ApplicationView}
// @Failure 500 {object} apimodels.Response
// @Security ApiKeyAuth
// @router /api/v1/applications [get]
func (c *betaAdminApiController) listApplications(ctx *fiber.Ctx) error {
	pagination := apimodels.Pagination{
		Page:  ctx.QueryInt("page"),
		Limit: ctx.QueryInt("limit"),
	}
	list, rowCount, err := betaappadmin.Instance.List(parseApplicationFilter(ctx), pagination)
	if err != nil {
		return c.SendError(ctx, log.NewEntry(log.StandardLogger()), err, "Failed to list the applications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Get one application
// @Tags Beta admin
// @Description Get a submitted application by ID
// @Param   id          		path    string  true         "application ID"
// @Success 200 {object} apimodels.Response{data=betaappapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @Security ApiKeyAuth
// @router /api/v1/applications/{id} [get]
func (c *betaAdminApiController) getApplication(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := betaappadmin.Instance.GetByID(id)
	if err != nil {
		logger := log.WithField("application_id", id)
		return c.SendError(ctx, logger, err, "Failed to get the application")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Record a decision
// @Tags Beta admin
// @Description Accept or reject a submitted application
// @Param   id          		path    string  true         "application ID"
// @Param	body body	 betaappapimodels.DecisionRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @Security ApiKeyAuth
// @router /api/v1/applications/{id}/decision [put]
func (c *betaAdminApiController) setDecision(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload betaappapimodels.DecisionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := betaappadmin.Instance.SetDecision(id, payload)
	if err != nil {
		logger := log.WithField("application_id", id)
		return c.SendError(ctx, logger, err, "Failed to save the decision")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Export applications to xlsx
// @Tags Beta admin
// @Description Build an xlsx snapshot of the matching applications and upload it to storage
// @Param   classification	query	string	false	"filter by classification"
// @Param   qualified		query	bool	false	"filter by qualification"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 500 {object} apimodels.Response
// @Security ApiKeyAuth
// @router /api/v1/applications/export [post]
func (c *betaAdminApiController) exportApplications(ctx *fiber.Ctx) error {
	objectName, err := betaappadmin.Instance.ExportList(ctx.Context(), parseApplicationFilter(ctx))
	if err != nil {
		return c.SendError(ctx, log.NewEntry(log.StandardLogger()), err, "Failed to export the applications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(objectName))
}

// @Summary Download an export file
// @Tags Beta admin
// @Description Download a previously built xlsx export by object name
// @Param   name          		path    string  true         "export object name"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @Security ApiKeyAuth
// @router /api/v1/applications/export/{name} [get]
func (c *betaAdminApiController) downloadExport(ctx *fiber.Ctx) error {
	objectName := ctx.Params("name")
	if objectName == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("name is not specified"))
	}
	data, err := betaappadmin.Instance.DownloadExport(ctx.Context(), objectName)
	if err != nil {
		logger := log.WithField("object_name", objectName)
		return c.SendError(ctx, logger, err, "Failed to download the export file")
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+objectName+`"`)
	return ctx.Status(fiber.StatusOK).Send(data)
}

// @Summary Get an application summary pdf
// @Tags Beta admin
// @Description Render a one-page pdf summary of a submitted application
// @Param   id          		path    string  true         "application ID"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @Security ApiKeyAuth
// @router /api/v1/applications/{id}/summary [get]
func (c *betaAdminApiController) getSummary(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	pdfFile, hMsg, err := betaappadmin.Instance.GenerateSummary(id)
	if err != nil {
		logger := log.WithField("application_id", id)
		return c.SendError(ctx, logger, err, "Failed to build the summary")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="application-summary.pdf"`)
	return ctx.Status(fiber.StatusOK).Send(pdfFile)
}
