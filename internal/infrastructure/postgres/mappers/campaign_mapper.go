package mappers

import (
	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/postgres/models"
)

func ToGORMCampaign(campaign *domain.Campaign) *models.CampaignModel {
	return &models.CampaignModel{
		ID:                campaign.ID,
		NetworkID:         campaign.NetworkID,
		UserID:            campaign.UserID,
		NetworkCampaignID: campaign.NetworkCampaignID,
		Name:              campaign.Name,
		LogoURL:           campaign.LogoURL,
		Type:              campaign.Type,
		Status:            campaign.Status,
	}
}

func ToDomainCampaign(model *models.CampaignModel) *domain.Campaign {
	return &domain.Campaign{
		ID:                model.ID,
		NetworkID:         model.NetworkID,
		UserID:            model.UserID,
		NetworkCampaignID: model.NetworkCampaignID,
		Name:              model.Name,
		LogoURL:           model.LogoURL,
		Type:              model.Type,
		Status:            model.Status,
	}
}
