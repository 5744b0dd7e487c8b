package normalize

import (
	"strings"

	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
)

// digizagNormalizer handles the HasOffers-style payload nested under
// Stat and Offer sub-objects. digizag does not report countries.
type digizagNormalizer struct{}

func (digizagNormalizer) Normalize(rec domain.RawRecord) domain.PartialRecord {
	var p domain.PartialRecord

	if offer, ok := getMap(rec, "Offer"); ok {
		if v, ok := getString(offer, "id"); ok {
			p.CampaignID = ptr(v)
		}
		if v, ok := getString(offer, "name"); ok {
			p.CampaignName = ptr(v)
		}
		if v, ok := getString(offer, "preview_url"); ok {
			p.CampaignLogo = ptr(v)
		}
	}

	stat, ok := getMap(rec, "Stat")
	if !ok {
		return p
	}

	if v, ok := getString(stat, "coupon_code"); ok {
		p.Code = ptr(v)
	}
	if v, ok := getString(stat, "order_id"); ok {
		p.OrderID = ptr(v)
	}
	if v, ok := getFloat(stat, "sale_amount"); ok {
		p.OrderValue = ptr(v)
	}
	if v, ok := getFloat(stat, "payout"); ok {
		p.Commission = ptr(v)
		p.Revenue = ptr(v)
	}
	if v, ok := getInt(stat, "conversions"); ok {
		p.Quantity = ptr(v)
	}
	if v, ok := getString(stat, "conversion_status"); ok {
		switch domain.PurchaseStatus(strings.ToLower(strings.TrimSpace(v))) {
		case domain.PurchaseStatusApproved:
			p.Status = ptr(domain.PurchaseStatusApproved)
		case domain.PurchaseStatusRejected:
			p.Status = ptr(domain.PurchaseStatusRejected)
		case domain.PurchaseStatusPending:
			p.Status = ptr(domain.PurchaseStatusPending)
		}
	}
	if v, ok := getString(stat, "datetime"); ok {
		if d, ok := dateOnly(v); ok {
			p.OrderDate = ptr(d)
			p.PurchaseDate = ptr(d)
		}
	}

	return p
}
