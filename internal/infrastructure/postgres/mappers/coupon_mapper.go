package mappers

import (
	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/postgres/models"
)

func ToGORMCoupon(coupon *domain.Coupon) *models.CouponModel {
	return &models.CouponModel{
		ID:          coupon.ID,
		CampaignID:  coupon.CampaignID,
		Code:        coupon.Code,
		Description: coupon.Description,
		Status:      coupon.Status,
		UsedCount:   coupon.UsedCount,
	}
}

func ToDomainCoupon(model *models.CouponModel) *domain.Coupon {
	return &domain.Coupon{
		ID:          model.ID,
		CampaignID:  model.CampaignID,
		Code:        model.Code,
		Description: model.Description,
		Status:      model.Status,
		UsedCount:   model.UsedCount,
	}
}
