package models

// CommercialValue buckets a keyword by expected resale demand.
type CommercialValue string

const (
	CommercialLow    CommercialValue = "low"
	CommercialMedium CommercialValue = "medium"
	CommercialHigh   CommercialValue = "high"
)

// TrendRecord is a scored keyword candidate used to seed domain generation.
// Records are immutable after creation; duplicates across sources are allowed.
type TrendRecord struct {
	Keyword         string          `json:"keyword"`
	Score           int             `json:"score"` // 0..100
	CommercialValue CommercialValue `json:"commercial_value"`
}

// Repo is a single repository record returned by the search API.
// Description may be absent in the source payload; it decodes to "".
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
