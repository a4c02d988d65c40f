package betaappadmin

import (
	"context"
	"fmt"
	"time"

	"beta-program-backend/config"
	"beta-program-backend/db"
	betaappstore "beta-program-backend/lib/betaapp/store"
	pdfexport "beta-program-backend/lib/export/pdf"
	xlsexport "beta-program-backend/lib/export/xls"
	apimodels "beta-program-backend/models/api"
	betaappapimodels "beta-program-backend/models/api/betaapp"
	s3client "beta-program-backend/s3"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const msgApplicationNotFound = "application not found"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Provider interface {
	List(filter betaappapimodels.ApplicationFilter, pagination apimodels.Pagination) (list []betaappapimodels.ApplicationView, rowCount int64, err error)
	GetByID(id string) (view *betaappapimodels.ApplicationView, hMsg string, err error)
	SetDecision(id string, req betaappapimodels.DecisionRequest) (hMsg string, err error)
	ExportList(ctx context.Context, filter betaappapimodels.ApplicationFilter) (objectName string, err error)
	DownloadExport(ctx context.Context, objectName string) (data []byte, err error)
	GenerateSummary(id string) (pdfFile []byte, hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: betaappstore.NewInstance(db.DB),
	}
}

type impl struct {
	store betaappstore.Provider
}

func (i impl) List(filter betaappapimodels.ApplicationFilter, pagination apimodels.Pagination) ([]betaappapimodels.ApplicationView, int64, error) {
	page, limit := pagination.GetPage()
	recs, rowCount, err := i.store.List(filter.Classification, filter.Qualified, page, limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list applications")
	}
	list := make([]betaappapimodels.ApplicationView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, betaappapimodels.NewApplicationView(rec))
	}
	return list, rowCount, nil
}

func (i impl) GetByID(id string) (*betaappapimodels.ApplicationView, string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to get the application")
	}
	if rec == nil {
		return nil, msgApplicationNotFound, nil
	}
	view := betaappapimodels.NewApplicationView(*rec)
	return &view, "", nil
}

func (i impl) SetDecision(id string, req betaappapimodels.DecisionRequest) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", errors.Wrap(err, "failed to get the application")
	}
	if rec == nil {
		return msgApplicationNotFound, nil
	}
	err = i.store.SetDecision(id, string(req.Decision), req.Comment)
	if err != nil {
		return "", errors.Wrap(err, "failed to save the decision")
	}
	log.
		WithField("application_id", id).
		WithField("decision", req.Decision).
		Info("application decision recorded")
	return "", nil
}

// ExportList builds an xlsx snapshot of the matching applications and
// uploads it to the export bucket. All matching rows go into one file,
// so the listing is read page by page.
func (i impl) ExportList(ctx context.Context, filter betaappapimodels.ApplicationFilter) (string, error) {
	const pageSize = 500
	recs, rowCount, err := i.store.List(filter.Classification, filter.Qualified, 1, pageSize)
	if err != nil {
		return "", errors.Wrap(err, "failed to list applications for export")
	}
	for page := 2; int64(len(recs)) < rowCount; page++ {
		next, _, err := i.store.List(filter.Classification, filter.Qualified, page, pageSize)
		if err != nil {
			return "", errors.Wrap(err, "failed to list applications for export")
		}
		if len(next) == 0 {
			break
		}
		recs = append(recs, next...)
	}
	buf, err := xlsexport.Instance.ExportApplicationList(recs)
	if err != nil {
		return "", errors.Wrap(err, "failed to build the export file")
	}
	objectName := fmt.Sprintf("applications-%s.xlsx", time.Now().Format("20060102-150405"))
	err = s3client.Instance.UploadObject(ctx, objectName, buf.Bytes(), xlsxContentType)
	if err != nil {
		return "", errors.Wrap(err, "failed to upload the export file")
	}
	log.
		WithField("object_name", objectName).
		WithField("rows", len(recs)).
		Info("application export uploaded")
	return objectName, nil
}

func (i impl) DownloadExport(ctx context.Context, objectName string) ([]byte, error) {
	return s3client.Instance.GetObject(ctx, objectName)
}

func (i impl) GenerateSummary(id string) ([]byte, string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to get the application")
	}
	if rec == nil {
		return nil, msgApplicationNotFound, nil
	}
	pdfFile, err := pdfexport.GenerateApplicationSummary(config.Conf.BetaProgram.ProgramName, *rec)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to render the summary")
	}
	return pdfFile, "", nil
}
