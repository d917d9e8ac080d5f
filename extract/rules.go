package extract

import "regexp"

// Agreement type tags accepted by the extractor. They match the values of
// the agreement type enumeration; the extractor deliberately works on plain
// strings so it stays a pure, dependency-free component.
const (
	TypeRental      = "RENTAL"
	TypeBusiness    = "BUSINESS"
	TypeLoan        = "LOAN"
	TypeFreelancing = "FREELANCING"
)

// requiredFields lists, per agreement type, the field names whose absence
// is reported (not enforced) as missing. Unknown types map to nil.
var requiredFields = map[string][]string{
	TypeRental:      {"landlordName", "tenantName", "propertyAddress", "rentAmount", "startDate", "endDate"},
	TypeLoan:        {"lenderName", "borrowerName", "loanAmount", "interestRate", "repaymentPeriod", "startDate"},
	TypeBusiness:    {"businessName", "partnerName", "businessType", "investmentAmount", "profitSharingRatio", "startDate"},
	TypeFreelancing: {"clientName", "freelancerName", "projectDescription", "projectAmount", "deadline", "paymentTerms"},
}

type rule struct {
	field string
	re    *regexp.Regexp
}

// Sub-patterns shared across rules. Spoken dictation arrives in many
// shapes ("5th June 2025", "June 5, 2025", "2025-06-05"), so the date
// pattern accepts all three. Free-text captures are lazy and stop at a
// sentence boundary or a connective so one clause cannot swallow the next.
const (
	namePat   = `([A-Za-z][A-Za-z .']*?)(?:\s+(?:and|while|with)\b|[,.]|$)`
	textPat   = `([A-Za-z0-9][A-Za-z0-9 ,/&'-]*?)(?:\.|\s+and\b|$)`
	termsPat  = `([A-Za-z0-9][A-Za-z0-9 ,%/&'-]*?)(?:\.|$)`
	datePat   = `(\d{1,2}(?:st|nd|rd|th)?\s+[A-Za-z]+,?\s+\d{4}|[A-Za-z]+\s+\d{1,2},?\s+\d{4}|\d{4}-\d{2}-\d{2}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`
	amountPat = `(?:rs\.?|inr|rupees|usd|\$|₹)?\s*(\d[\d,]*(?:\.\d+)?)`
)

var rulesByType = map[string][]rule{
	TypeRental: {
		{"landlordName", regexp.MustCompile(`(?i)(?:landlord(?:'s)?(?: name)?(?: is)?|owner(?: is)?)\s*[:,]?\s*` + namePat)},
		{"tenantName", regexp.MustCompile(`(?i)tenant(?:'s)?(?: name)?(?: is)?\s*[:,]?\s*` + namePat)},
		{"propertyAddress", regexp.MustCompile(`(?i)(?:property(?: is)?(?: located| situated)?(?: at)?|address(?: is)?)\s*[:,]?\s*` + textPat)},
		{"rentAmount", regexp.MustCompile(`(?i)(?:monthly\s+)?rent(?: amount)?(?: is| of| will be)?\s*[:,]?\s*` + amountPat)},
		{"securityDeposit", regexp.MustCompile(`(?i)(?:security\s+)?deposit(?: is| of)?\s*[:,]?\s*` + amountPat)},
		{"startDate", regexp.MustCompile(`(?i)(?:lease\s+)?(?:start(?:ing)?\s+date(?: is)?|starts?\s+(?:on|from)|beginning)\s*[:,]?\s*` + datePat)},
		{"endDate", regexp.MustCompile(`(?i)(?:lease\s+)?(?:end(?:ing)?\s+date(?: is)?|ends?\s+on|until|till)\s*[:,]?\s*` + datePat)},
	},
	TypeLoan: {
		{"lenderName", regexp.MustCompile(`(?i)lender(?:'s)?(?: name)?(?: is)?\s*[:,]?\s*` + namePat)},
		{"borrowerName", regexp.MustCompile(`(?i)borrower(?:'s)?(?: name)?(?: is)?\s*[:,]?\s*` + namePat)},
		{"loanAmount", regexp.MustCompile(`(?i)loan(?: amount)?(?: is| of)?\s*[:,]?\s*` + amountPat)},
		{"interestRate", regexp.MustCompile(`(?i)interest(?: rate)?(?: is| of)?\s*[:,]?\s*(\d+(?:\.\d+)?)\s*(?:%|percent)`)},
		{"repaymentPeriod", regexp.MustCompile(`(?i)(?:repayment|repaid|tenure)(?:\s+(?:period|over|in))?(?: is| of)?\s*[:,]?\s*(\d+\s*(?:months?|years?))`)},
		{"startDate", regexp.MustCompile(`(?i)(?:loan\s+)?(?:start(?:ing)?\s+date(?: is)?|starts?\s+(?:on|from)|disbursed\s+on)\s*[:,]?\s*` + datePat)},
		{"endDate", regexp.MustCompile(`(?i)(?:repayment\s+)?(?:end(?:ing)?\s+date(?: is)?|ends?\s+on|due\s+by)\s*[:,]?\s*` + datePat)},
	},
	TypeBusiness: {
		{"businessName", regexp.MustCompile(`(?i)business(?: name)?(?: is)?(?: called| named)?\s*[:,]?\s*` + textPat)},
		{"partnerName", regexp.MustCompile(`(?i)partner(?:'s)?(?: name)?(?: is)?\s*[:,]?\s*` + namePat)},
		{"businessType", regexp.MustCompile(`(?i)(?:type\s+of\s+business|business\s+type)(?: is)?\s*[:,]?\s*` + namePat)},
		{"investmentAmount", regexp.MustCompile(`(?i)invest(?:ment|ing)?(?: amount)?(?: is| of)?\s*[:,]?\s*` + amountPat)},
		{"profitSharingRatio", regexp.MustCompile(`(?i)profit(?:\s+sharing)?(?:\s+ratio)?(?: is| of)?\s*[:,]?\s*(\d{1,2}\s*[:/]\s*\d{1,2})`)},
		{"startDate", regexp.MustCompile(`(?i)(?:partnership\s+)?(?:start(?:ing)?\s+date(?: is)?|starts?\s+(?:on|from)|commences\s+on)\s*[:,]?\s*` + datePat)},
	},
	TypeFreelancing: {
		{"clientName", regexp.MustCompile(`(?i)client(?:'s)?(?: name)?(?: is)?\s*[:,]?\s*` + namePat)},
		{"freelancerName", regexp.MustCompile(`(?i)freelancer(?:'s)?(?: name)?(?: is)?\s*[:,]?\s*` + namePat)},
		{"projectDescription", regexp.MustCompile(`(?i)project(?: is| involves| description(?: is)?)\s*[:,]?\s*` + textPat)},
		{"projectAmount", regexp.MustCompile(`(?i)(?:project\s+)?(?:amount|fee|payment)(?: is| of)?\s*[:,]?\s*` + amountPat)},
		{"deadline", regexp.MustCompile(`(?i)(?:deadline(?: is)?|due\s+(?:on|by)|delivered\s+by)\s*[:,]?\s*` + datePat)},
		{"paymentTerms", regexp.MustCompile(`(?i)payment\s+terms?(?: are| is)?\s*[:,]?\s*` + termsPat)},
	},
}
