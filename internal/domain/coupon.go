package domain

// Coupon is a discount code tied to a campaign. Unique by (CampaignID, Code).
type Coupon struct {
	ID          string
	CampaignID  string
	Code        string
	Description string
	Status      string
	UsedCount   int
}
