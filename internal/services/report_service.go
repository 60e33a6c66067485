package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"corteBack/internal/models"
)

// Page geometry of the caixa report, in points.
const (
	reportFileName   = "relatorio_caixa.pdf"
	reportPageWidth  = 200
	reportPageHeight = 400
	reportLineStep   = 20
	reportFirstLineY = 100
)

// Uploader pushes the rendered report to object storage.
type Uploader interface {
	Upload(file []byte, key string, contentType string) (string, error)
}

type ReportService struct {
	TransactionRepo TransactionRepo
	Dir             string
	Storage         Uploader // nil disables upload
}

// Generate renders the cash report for the given transactions, in the order
// given, and writes it to the fixed path, overwriting any previous report.
// When the lines run past the page, it continues on a new page.
func (s *ReportService) Generate(transactions []models.Transaction) (string, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: reportPageWidth, Ht: reportPageHeight},
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(50, 50, tr("Relatório de Caixa"))
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(20, 80, tr("Transações:"))

	y := float64(reportFirstLineY)
	for _, t := range transactions {
		if y > reportPageHeight-reportLineStep {
			pdf.AddPage()
			y = 2 * reportLineStep
		}
		pdf.Text(20, y, tr(ReportLine(t)))
		y += reportLineStep
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("report: %w", err)
	}
	path := filepath.Join(s.Dir, reportFileName)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("report: %w", err)
	}
	return path, nil
}

// GenerateForOwner renders the report from the owner's current transaction
// list (newest first, the same order the sync delivers) and uploads it when
// storage is configured. A failed upload still returns the local path; the
// file was already written.
func (s *ReportService) GenerateForOwner(ctx context.Context, userID string) (string, string, error) {
	transactions, err := s.TransactionRepo.GetTransactionsByUserID(ctx, userID)
	if err != nil {
		return "", "", fmt.Errorf("report: %w", err)
	}

	path, err := s.Generate(transactions)
	if err != nil {
		return "", "", err
	}

	if s.Storage == nil {
		return path, "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return path, "", fmt.Errorf("report: %w", err)
	}
	key := fmt.Sprintf("reports/%s/%s.pdf", userID, uuid.New().String())
	url, err := s.Storage.Upload(data, key, "application/pdf")
	if err != nil {
		return path, "", fmt.Errorf("report: %w", err)
	}
	return path, url, nil
}

// ReportLine formats one ledger entry the way the report prints it.
func ReportLine(t models.Transaction) string {
	return fmt.Sprintf("%s: R$ %.2f", t.Description, t.Amount)
}
