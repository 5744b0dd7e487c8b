package models

import (
	"time"

	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
)

type PurchaseModel struct {
	ID             string  `gorm:"primaryKey;type:uuid"`
	CouponID       *string `gorm:"type:uuid;index"`
	CampaignID     string  `gorm:"type:uuid;index"`
	NetworkID      string  `gorm:"index:idx_purchase_window"`
	UserID         string  `gorm:"index:idx_purchase_window"`
	CountryCode    string
	OrderID        string
	NetworkOrderID string
	OrderValue     float64
	Commission     float64
	Revenue        float64
	Quantity       int
	Currency       string
	CustomerType   string
	Status         domain.PurchaseStatus `gorm:"index"`
	OrderDate      time.Time             `gorm:"index:idx_purchase_window"`
	Metadata       string                `gorm:"type:jsonb"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
