package mappers

import (
	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/postgres/models"
)

func ToGORMPurchase(purchase *domain.Purchase) *models.PurchaseModel {
	metadata := purchase.MetadataJSON
	if metadata == "" {
		metadata = "{}"
	}
	return &models.PurchaseModel{
		ID:             purchase.ID,
		CouponID:       purchase.CouponID,
		CampaignID:     purchase.CampaignID,
		NetworkID:      purchase.NetworkID,
		UserID:         purchase.UserID,
		CountryCode:    purchase.CountryCode,
		OrderID:        purchase.OrderID,
		NetworkOrderID: purchase.NetworkOrderID,
		OrderValue:     purchase.OrderValue,
		Commission:     purchase.Commission,
		Revenue:        purchase.Revenue,
		Quantity:       purchase.Quantity,
		Currency:       purchase.Currency,
		CustomerType:   purchase.CustomerType,
		Status:         purchase.Status,
		OrderDate:      purchase.OrderDate,
		Metadata:       metadata,
	}
}

func ToDomainPurchase(model *models.PurchaseModel) *domain.Purchase {
	return &domain.Purchase{
		ID:             model.ID,
		CouponID:       model.CouponID,
		CampaignID:     model.CampaignID,
		NetworkID:      model.NetworkID,
		UserID:         model.UserID,
		CountryCode:    model.CountryCode,
		OrderID:        model.OrderID,
		NetworkOrderID: model.NetworkOrderID,
		OrderValue:     model.OrderValue,
		Commission:     model.Commission,
		Revenue:        model.Revenue,
		Quantity:       model.Quantity,
		Currency:       model.Currency,
		CustomerType:   model.CustomerType,
		Status:         model.Status,
		OrderDate:      model.OrderDate,
		MetadataJSON:   model.Metadata,
	}
}
