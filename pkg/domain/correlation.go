package domain

// Confidence grades how strongly a correlation is supported by its evidence.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Correlation is a structured link derived from raw engine records.
type Correlation struct {
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Confidence  Confidence  `json:"confidence"`
	Evidence    []RawResult `json:"evidence"`
}
