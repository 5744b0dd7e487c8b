package models

import "time"

type CouponModel struct {
	ID          string        `gorm:"primaryKey;type:uuid"`
	CampaignID  string        `gorm:"uniqueIndex:idx_coupon_code;type:uuid"`
	Campaign    CampaignModel `gorm:"foreignKey:CampaignID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Code        string        `gorm:"uniqueIndex:idx_coupon_code"`
	Description string
	Status      string
	UsedCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
