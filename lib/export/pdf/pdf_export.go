package pdfexport

import (
	"bytes"
	"fmt"

	dbmodels "beta-program-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// GenerateApplicationSummary renders a one-page admin summary of a
// submitted application.
func GenerateApplicationSummary(programName string, rec dbmodels.BetaApplication) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateApplicationSummary panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s - Application Summary", programName), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	writeField(pdf, "Applicant", rec.Email)
	if rec.PenName != "" {
		writeField(pdf, "Pen name", rec.PenName)
	}
	if !rec.SubmittedAt.IsZero() {
		writeField(pdf, "Submitted", rec.SubmittedAt.Format("02.01.2006 15:04"))
	}
	if rec.IsQualified {
		writeField(pdf, "Outcome", string(rec.Classification))
		writeField(pdf, "Total score", fmt.Sprintf("%v", rec.TotalScore))
	} else {
		writeField(pdf, "Outcome", "disqualified")
	}
	if rec.Decision != "" {
		writeField(pdf, "Admin decision", string(rec.Decision))
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Stage scores", "", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, stage := range rec.StageScores.Stages {
		line := fmt.Sprintf("%v. %v: %v", stage.Index+1, stage.Title, stage.Score)
		if stage.MinRequired > 0 {
			line = fmt.Sprintf("%v (min %v)", line, stage.MinRequired)
		}
		pdf.CellFormat(0, 6, line, "", 1, "", false, 0, "")
	}

	answers := rec.Answers.FreeTextAnswers()
	if len(answers) != 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Written answers", "", 1, "", false, 0, "")
		for _, answer := range answers {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 5, answer.Question, "", "", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, answer.Text, "", "", false)
			pdf.Ln(2)
		}
	}

	if rec.AIReview != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Editorial AI note", "", 1, "", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, rec.AIReview, "", "", false)
	}

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, errors.Wrap(err, "failed to render pdf")
	}
	return buf.Bytes(), nil
}

func writeField(pdf *fpdf.Fpdf, name, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 6, name+":", "", 0, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, value, "", 1, "", false, 0, "")
}
