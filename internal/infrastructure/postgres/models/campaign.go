package models

import (
	"time"

	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
)

type CampaignModel struct {
	ID                string `gorm:"primaryKey;type:uuid"`
	NetworkID         string `gorm:"uniqueIndex:idx_campaign_scope"`
	UserID            string `gorm:"uniqueIndex:idx_campaign_scope"`
	NetworkCampaignID string `gorm:"uniqueIndex:idx_campaign_scope"`
	Name              string
	LogoURL           string
	Type              domain.CampaignType
	Status            domain.CampaignStatus `gorm:"index:idx_campaign_status"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
