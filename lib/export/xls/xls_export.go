package xlsexport

import (
	"bytes"
	"fmt"
	"strings"

	dbmodels "beta-program-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportApplicationList(list []dbmodels.BetaApplication) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var applicationHeaders = []string{"Email", "Pen name", "Qualified", "Classification", "Total score", "Stage reached", "Stage scores", "Feedback strengths", "Decision", "Submitted at"}

func (i impl) ExportApplicationList(list []dbmodels.BetaApplication) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, applicationHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		_, err = writeApplicationData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Applications")
	return f.WriteToBuffer()
}

func writeApplicationData(f *excelize.File, sheet string, list []dbmodels.BetaApplication, row int) (int, error) {
	for _, item := range list {
		row++
		// "Email"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Email); err != nil {
			return row, err
		}

		// "Pen name"
		col++
		if err := writeColumn(f, sheet, col, row, item.PenName); err != nil {
			return row, err
		}

		// "Qualified"
		col++
		qualified := "no"
		if item.IsQualified {
			qualified = "yes"
		}
		if err := writeColumn(f, sheet, col, row, qualified); err != nil {
			return row, err
		}

		// "Classification"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Classification)); err != nil {
			return row, err
		}

		// "Total score"
		col++
		if err := writeColumn(f, sheet, col, row, item.TotalScore); err != nil {
			return row, err
		}

		// "Stage reached"
		col++
		if err := writeColumn(f, sheet, col, row, item.StageReached); err != nil {
			return row, err
		}

		// "Stage scores"
		col++
		if err := writeColumn(f, sheet, col, row, formatStageScores(item.StageScores)); err != nil {
			return row, err
		}

		// "Feedback strengths"
		col++
		if err := writeColumn(f, sheet, col, row, strings.Join(item.FeedbackStrengths, ", ")); err != nil {
			return row, err
		}

		// "Decision"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Decision)); err != nil {
			return row, err
		}

		// "Submitted at"
		col++
		if !item.SubmittedAt.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.SubmittedAt.Format("02.01.2006 15:04")); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func formatStageScores(ledger dbmodels.StageScoreLedger) string {
	parts := make([]string, 0, len(ledger.Stages))
	for _, stage := range ledger.Stages {
		parts = append(parts, fmt.Sprintf("%v: %v/%v", stage.Title, stage.Score, stage.MinRequired))
	}
	return strings.Join(parts, "; ")
}
