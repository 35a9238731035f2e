package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/finhouse/mortgage-planner/pkg/amortize"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Month", 14},
	{"Year", 14},
	{"Payment", 24},
	{"Principal", 24},
	{"Interest", 24},
	{"Overpay", 22},
	{"Lump sum", 22},
	{"Total", 24},
	{"Balance", 26},
}

// WritePDF writes the schedule as a paginated document: a summary block
// followed by the full table with the header repeated on every page.
func WritePDF(w io.Writer, result amortize.Result, summary Summary) error {
	if len(result.Rows) == 0 {
		return ErrEmptySchedule
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Mortgage Amortization Schedule", false)
	pdf.SetAutoPageBreak(false, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Mortgage Amortization Schedule", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	summaryLines := []string{
		fmt.Sprintf("Loan amount: %.2f %s", summary.Principal, summary.Currency),
		fmt.Sprintf("Interest rate: %.2f%%", summary.AnnualRate),
		fmt.Sprintf("Term: %d months", summary.TermMonths),
		fmt.Sprintf("Monthly payment: %.2f %s", summary.MonthlyPayment, summary.Currency),
		fmt.Sprintf("Total interest: %.2f %s", summary.TotalInterest, summary.Currency),
		fmt.Sprintf("Total cost: %.2f %s", summary.TotalCost, summary.Currency),
		fmt.Sprintf("Months to payoff: %d", summary.TotalMonths),
	}
	for _, line := range summaryLines {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	writeTableHeader(pdf)

	pdf.SetFont("Helvetica", "", 9)
	_, pageHeight := pdf.GetPageSize()
	for _, row := range result.Rows {
		if pdf.GetY() > pageHeight-20 {
			pdf.AddPage()
			writeTableHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}
		cells := []string{
			fmt.Sprintf("%d", row.Month),
			fmt.Sprintf("%d", row.Year),
			fmt.Sprintf("%.2f", row.ScheduledPayment),
			fmt.Sprintf("%.2f", row.PrincipalPortion),
			fmt.Sprintf("%.2f", row.InterestPortion),
			fmt.Sprintf("%.2f", row.OverpaymentPortion),
			fmt.Sprintf("%.2f", row.LumpSumPortion),
			fmt.Sprintf("%.2f", row.TotalPayment),
			fmt.Sprintf("%.2f", row.EndingBalance),
		}
		for i, cell := range cells {
			pdf.CellFormat(pdfColumns[i].width, 5, cell, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func writeTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 6, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}
