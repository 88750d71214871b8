package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"schoolhub_backend/internals/features/finance/feeledger/model"
)

/* =========================================================
   Receipt rendering (best-effort, decoupled from commit)
========================================================= */

// ReceiptData carries everything the PDF needs; callers compose it after the
// payment has committed so a render failure can never unwind a payment.
type ReceiptData struct {
	SchoolName  string
	StudentName string
	AdmissionNo string
	ClassName   string
	Payment     model.FeePayment
	Fee         model.StudentFee
}

// BuildReceiptPDF renders a one-page fee receipt.
func BuildReceiptPDF(data ReceiptData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Fee Receipt", false)
	pdf.AddPage()

	school := data.SchoolName
	if strings.TrimSpace(school) == "" {
		school = "SchoolHub"
	}

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, school, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, "Fee Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	row := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}
	row("Receipt No.", data.Payment.FeePaymentID.String())
	row("Date", data.Payment.FeePaymentDate.Format("02 Jan 2006 15:04"))
	row("Student", data.StudentName)
	if data.AdmissionNo != "" {
		row("Admission No.", data.AdmissionNo)
	}
	if data.ClassName != "" {
		row("Class", data.ClassName)
	}
	row("Mode", strings.ToUpper(string(data.Payment.FeePaymentMode)))
	if data.Payment.FeePaymentTerm != nil {
		row("Term", *data.Payment.FeePaymentTerm)
	}
	pdf.Ln(4)

	// breakdown table
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(120, 8, "Component", "1", 0, "L", true, 0, "")
	pdf.CellFormat(0, 8, "Amount (Rs)", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	breakdown := data.Payment.Breakdown()
	for _, k := range model.AllComponents {
		v, ok := breakdown[k]
		if !ok {
			continue
		}
		pdf.CellFormat(120, 8, k.Label(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, fmt.Sprintf("%d", v), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(120, 8, "Total Paid", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("%d", data.Payment.FeePaymentAmount), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total fees: Rs %d   Paid to date: Rs %d   Balance: Rs %d",
		data.Fee.StudentFeeTotal, data.Fee.StudentFeePaid, data.Fee.StudentFeeBalance), "", 1, "L", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "This is a system generated receipt.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
