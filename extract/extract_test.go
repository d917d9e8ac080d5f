package extract

import (
	"reflect"
	"testing"
)

func TestExtract_RentalTranscript(t *testing.T) {
	transcript := "This is a rental agreement. The landlord is John Smith and the tenant is Mary Jones. " +
		"The property is located at 42 Lake View Road, Pune. The monthly rent is Rs. 25,000 and the security deposit is 50,000. " +
		"The lease starts on 1st June 2025 and ends on 31st May 2026."

	fields := New().Extract(transcript, TypeRental)

	want := map[string]any{
		"landlordName":    "John Smith",
		"tenantName":      "Mary Jones",
		"propertyAddress": "42 Lake View Road, Pune",
		"rentAmount":      "25,000",
		"securityDeposit": "50,000",
		"startDate":       "1st June 2025",
		"endDate":         "31st May 2026",
	}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("extracted fields mismatch:\n got %v\nwant %v", fields, want)
	}

	if missing := New().Missing(TypeRental, fields); len(missing) != 0 {
		t.Errorf("expected no missing fields, got %v", missing)
	}
}

func TestExtract_LoanTranscript(t *testing.T) {
	transcript := "Loan agreement terms. The lender is Anil Kapoor and the borrower is Ravi Verma. " +
		"The loan amount is rupees 2,00,000 with an interest rate of 12 percent. " +
		"It will be repaid over 24 months. The loan starts on 2025-07-01."

	fields := New().Extract(transcript, TypeLoan)

	for field, want := range map[string]string{
		"lenderName":      "Anil Kapoor",
		"borrowerName":    "Ravi Verma",
		"loanAmount":      "2,00,000",
		"interestRate":    "12",
		"repaymentPeriod": "24 months",
		"startDate":       "2025-07-01",
	} {
		if got := fields[field]; got != want {
			t.Errorf("%s: got %v, want %q", field, got, want)
		}
	}

	if missing := New().Missing(TypeLoan, fields); len(missing) != 0 {
		t.Errorf("expected no missing fields, got %v", missing)
	}
}

func TestExtract_FreelancingTranscript(t *testing.T) {
	transcript := "The client is Acme Corp and the freelancer is Priya Nair. " +
		"The project involves building a landing page. The project fee is $1,500. " +
		"The work is due by July 15, 2025. Payment terms are 50% advance, 50% on delivery."

	fields := New().Extract(transcript, TypeFreelancing)

	for field, want := range map[string]string{
		"clientName":         "Acme Corp",
		"freelancerName":     "Priya Nair",
		"projectDescription": "building a landing page",
		"projectAmount":      "1,500",
		"deadline":           "July 15, 2025",
		"paymentTerms":       "50% advance, 50% on delivery",
	} {
		if got := fields[field]; got != want {
			t.Errorf("%s: got %v, want %q", field, got, want)
		}
	}
}

func TestExtract_EmptyTranscript(t *testing.T) {
	fields := New().Extract("", TypeRental)
	if len(fields) != 0 {
		t.Fatalf("expected empty map, got %v", fields)
	}

	missing := New().Missing(TypeRental, fields)
	want := requiredFields[TypeRental]
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("expected all required fields missing, got %v", missing)
	}
}

func TestExtract_UnknownType(t *testing.T) {
	fields := New().Extract("the landlord is John Smith", "MARRIAGE")
	if len(fields) != 0 {
		t.Errorf("expected no fields for unknown type, got %v", fields)
	}
	if missing := New().Missing("MARRIAGE", fields); len(missing) != 0 {
		t.Errorf("expected no missing fields for unknown type, got %v", missing)
	}
}

func TestMissing_BlankAndNilValues(t *testing.T) {
	fields := map[string]any{
		"landlordName":    "John Smith",
		"tenantName":      "   ",
		"propertyAddress": nil,
		"rentAmount":      "25,000",
	}

	missing := New().Missing(TypeRental, fields)
	want := []string{"tenantName", "propertyAddress", "startDate", "endDate"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("got %v, want %v", missing, want)
	}
}

func TestMissing_IgnoresExtraKeys(t *testing.T) {
	fields := map[string]any{
		"landlordName":    "A",
		"tenantName":      "B",
		"propertyAddress": "C",
		"rentAmount":      "1",
		"startDate":       "2025-01-01",
		"endDate":         "2026-01-01",
		"witnessName":     "not required",
	}
	if missing := New().Missing(TypeRental, fields); len(missing) != 0 {
		t.Errorf("expected no missing fields, got %v", missing)
	}
}

func TestRequiredFields_CopyIsIndependent(t *testing.T) {
	got := New().RequiredFields(TypeLoan)
	if len(got) != 6 {
		t.Fatalf("expected 6 required loan fields, got %d", len(got))
	}
	got[0] = "mutated"
	if requiredFields[TypeLoan][0] == "mutated" {
		t.Errorf("RequiredFields must return a copy")
	}
}
