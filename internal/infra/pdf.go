package infra

// pdf.go — Daily report rendering using go-pdf/fpdf. A5 portrait, one page:
// header with the display date, then sales, purchases, exchange and cash
// sections with a bold net-movement line at the bottom.

import (
	"bytes"
	"fmt"

	"github.com/alperendnc/jewelery-app-sub000/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// BuildDailyReportPDF renders one day's report and returns the PDF bytes.
// Nothing is written to disk; the handler streams the result directly.
func BuildDailyReportPDF(report *dto.DailyReportResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 9, "Daily Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	date := report.DisplayDate
	if date == "" {
		date = report.Date
	}
	pdf.CellFormat(contentW, 6, date, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Trade sections ───────────────────────────────────────────────────────
	sectionHeader(pdf, contentW, "Sales")
	countAmountRow(pdf, contentW, report.SalesCount, report.SalesTotal)

	sectionHeader(pdf, contentW, "Purchases")
	countAmountRow(pdf, contentW, report.PurchaseCount, report.PurchaseTotal)

	sectionHeader(pdf, contentW, "Currency Exchange")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW*0.5, 5, fmt.Sprintf("Exchanges: %d", report.ExchangeCount), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW*0.5, 5, "In (sell)", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.5, 5, report.ExchangeIn.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW*0.5, 5, "Out (buy)", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.5, 5, report.ExchangeOut.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	// ── Cash movement ────────────────────────────────────────────────────────
	sectionHeader(pdf, contentW, "Cash Movement")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW*0.5, 5, fmt.Sprintf("Transactions: %d", report.TransactionCount), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW*0.5, 5, "Cash in", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.5, 5, report.CashIn.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW*0.5, 5, "Cash out", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.5, 5, report.CashOut.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW*0.5, 7, "Net Movement", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.5, 7, report.NetMovement.StringFixed(2), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render daily report: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionHeader(pdf *fpdf.Fpdf, contentW float64, title string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func countAmountRow(pdf *fpdf.Fpdf, contentW float64, count int, total decimal.Decimal) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW*0.5, 5, fmt.Sprintf("Count: %d", count), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.5, 5, total.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(2)
}
