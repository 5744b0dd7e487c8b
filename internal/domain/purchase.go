package domain

import "time"

type PurchaseStatus string

const (
	PurchaseStatusApproved PurchaseStatus = "approved"
	PurchaseStatusPending  PurchaseStatus = "pending"
	PurchaseStatusRejected PurchaseStatus = "rejected"
)

// Purchase is one conversion attributed to a coupon or campaign. Rows
// are always inserted, never updated: the replace-window delete is the
// only thing that removes them.
type Purchase struct {
	ID             string
	CouponID       *string
	CampaignID     string
	NetworkID      string
	UserID         string
	CountryCode    string
	OrderID        string
	NetworkOrderID string
	OrderValue     float64
	Commission     float64
	Revenue        float64
	Quantity       int
	Currency       string
	CustomerType   string
	Status         PurchaseStatus
	OrderDate      time.Time
	MetadataJSON   string
}

// PurchaseFact is the flattened row shipped to the analytics store
// after a successful coupon sync.
type PurchaseFact struct {
	PurchaseID   string
	NetworkID    string
	UserID       string
	CampaignID   string
	CouponCode   string
	CountryCode  string
	OrderValue   float64
	Commission   float64
	Revenue      float64
	Quantity     int32
	Status       string
	OrderDate    time.Time
	IngestedAt   time.Time
}
