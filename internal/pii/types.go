package pii

// Category identifies a detector in the fixed registry.
type Category string

const (
	CategoryEmail      Category = "email"
	CategoryPhone      Category = "phone"
	CategorySSN        Category = "ssn"
	CategoryCreditCard Category = "credit_card"
	CategoryIPAddress  Category = "ip_address"
	CategoryAddress    Category = "address"
)

// DetectionResult is the outcome of validating a piece of text.
//
// PIITypes and Details carry one entry per match, in registry order then
// match order, so len(PIITypes) == len(Details) and HasPII is true exactly
// when Details is non-empty. Detail values are masked; the original matched
// text never appears in a result.
type DetectionResult struct {
	HasPII     bool     `json:"has_pii"`
	PIITypes   []string `json:"pii_types"`
	Confidence float64  `json:"confidence"`
	Details    []string `json:"details"`
	SafeToSend bool     `json:"safe_to_send"`
}
