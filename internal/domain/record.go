package domain

// RawRecord is one decoded report row exactly as the network API returned it.
type RawRecord map[string]any

// PartialRecord is the output of a network normalizer: every field is
// optional so that missing-field behavior lives in a single defaulting
// pass instead of being scattered across per-network branches.
type PartialRecord struct {
	CampaignID   *string
	CampaignName *string
	CampaignLogo *string
	Code         *string
	CountryCode  *string
	OrderID      *string
	OrderValue   *float64
	Commission   *float64
	Revenue      *float64
	Quantity     *int
	CustomerType *string
	Status       *PurchaseStatus
	OrderDate    *string
	PurchaseDate *string
}

// CanonicalRecord is one fully-defaulted report row in the shape shared
// by all networks. Dates are Y-m-d strings.
type CanonicalRecord struct {
	CampaignID   string
	CampaignName string
	CampaignLogo string
	Code         string
	CountryCode  string
	OrderID      string
	OrderValue   float64
	Commission   float64
	Revenue      float64
	Quantity     int
	CustomerType string
	Status       PurchaseStatus
	OrderDate    string
	PurchaseDate string
}
