package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"verisay/agreement"
	"verisay/evidence"
)

// fieldRow pairs a printed label with its field-map key.
type fieldRow struct {
	label string
	key   string
}

// layoutByType drives the type-aware detail section of the document.
var layoutByType = map[agreement.Type][]fieldRow{
	agreement.TypeRental: {
		{"Landlord Name", "landlordName"},
		{"Tenant Name", "tenantName"},
		{"Property Address", "propertyAddress"},
		{"Monthly Rent", "rentAmount"},
		{"Security Deposit", "securityDeposit"},
		{"Lease Start Date", "startDate"},
		{"Lease End Date", "endDate"},
	},
	agreement.TypeLoan: {
		{"Lender Name", "lenderName"},
		{"Borrower Name", "borrowerName"},
		{"Loan Amount", "loanAmount"},
		{"Interest Rate", "interestRate"},
		{"Repayment Period", "repaymentPeriod"},
		{"Loan Start Date", "startDate"},
	},
	agreement.TypeBusiness: {
		{"Business Name", "businessName"},
		{"Partner Name", "partnerName"},
		{"Business Type", "businessType"},
		{"Investment Amount", "investmentAmount"},
		{"Profit Sharing Ratio", "profitSharingRatio"},
		{"Partnership Start Date", "startDate"},
	},
	agreement.TypeFreelancing: {
		{"Client Name", "clientName"},
		{"Freelancer Name", "freelancerName"},
		{"Project Description", "projectDescription"},
		{"Project Amount", "projectAmount"},
		{"Project Deadline", "deadline"},
		{"Payment Terms", "paymentTerms"},
	},
}

// Generator turns a finalized agreement snapshot into document bytes.
type Generator interface {
	Render(snap Snapshot) ([]byte, error)
}

// PDFGenerator renders the agreement as an A4 PDF with a type-specific
// field table. Genuinely absent values are printed as "N/A"; any other
// generation problem surfaces as an error.
type PDFGenerator struct{}

func NewPDFGenerator() PDFGenerator {
	return PDFGenerator{}
}

func (PDFGenerator) Render(snap Snapshot) ([]byte, error) {
	ag := snap.Agreement

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	title := strings.ToUpper(strings.TrimSpace(ag.Title))
	if title == "" {
		title = string(ag.Type) + " AGREEMENT"
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("This agreement is made on %s.", ag.CreatedAt.Format("January 02, 2006")), "", "L", false)
	pdf.Ln(4)

	if desc := strings.TrimSpace(ag.Description); desc != "" {
		pdf.MultiCell(0, 6, desc, "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Agreement Details", "", 1, "L", false, 0, "")
	pdf.Ln(2)
	for _, row := range layoutByType[ag.Type] {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(60, 7, row.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, fieldValue(ag.Fields, row.key), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	if len(snap.Evidence) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Attached Evidence", "", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 10)
		for _, item := range snap.Evidence {
			line := fmt.Sprintf("%s uploaded %s", evidenceLabel(item.Kind, item.PartyRole), item.UploadedAt.Format("Jan 02, 2006 15:04"))
			pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "By signing below, the parties acknowledge that they have read, understood, and agree to the terms and conditions of this agreement.", "", "L", false)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Signatures:", "", 1, "L", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(85, 7, "Party 1: _________________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Party 2: _________________________", "", 1, "L", false, 0, "")

	if ag.SignedAt != nil {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("Finalized electronically on %s.", ag.SignedAt.Format("January 02, 2006 15:04 MST")), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: generate pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func fieldValue(fields agreement.FieldMap, key string) string {
	value, ok := fields[key]
	if !ok || value == nil {
		return "N/A"
	}
	s := strings.TrimSpace(fmt.Sprint(value))
	if s == "" {
		return "N/A"
	}
	return s
}

func evidenceLabel(kind evidence.Kind, role *evidence.PartyRole) string {
	if role == nil {
		return string(kind)
	}
	return fmt.Sprintf("%s (%s)", kind, *role)
}
