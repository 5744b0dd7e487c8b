package domain

type CampaignType string

const (
	CampaignTypeCoupon CampaignType = "coupon"
	CampaignTypeLink   CampaignType = "link"
)

type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// Campaign is an advertiser offer tracked within a network, scoped to
// one user's account. Unique by (NetworkID, UserID, NetworkCampaignID).
type Campaign struct {
	ID                string
	NetworkID         string
	UserID            string
	NetworkCampaignID string
	Name              string
	LogoURL           string
	Type              CampaignType
	Status            CampaignStatus
}
