package normalize

import (
	"strings"

	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
)

// platformanceNormalizer handles the platformance report, whose flat
// fields already mirror the canonical shape.
type platformanceNormalizer struct{}

func (platformanceNormalizer) Normalize(rec domain.RawRecord) domain.PartialRecord {
	var p domain.PartialRecord

	if v, ok := getString(rec, "campaign_id"); ok {
		p.CampaignID = ptr(v)
	}
	if v, ok := getString(rec, "campaign_name"); ok {
		p.CampaignName = ptr(v)
	}
	if v, ok := getString(rec, "campaign_logo"); ok {
		p.CampaignLogo = ptr(v)
	}
	if v, ok := getString(rec, "code"); ok {
		p.Code = ptr(v)
	}
	if v, ok := getString(rec, "country_code"); ok {
		p.CountryCode = ptr(v)
	} else if v, ok := getString(rec, "country"); ok {
		p.CountryCode = ptr(v)
	}
	if v, ok := getString(rec, "order_id"); ok {
		p.OrderID = ptr(v)
	}
	if v, ok := getFloat(rec, "order_value"); ok {
		p.OrderValue = ptr(v)
	}
	if v, ok := getFloat(rec, "commission"); ok {
		p.Commission = ptr(v)
	}
	if v, ok := getFloat(rec, "revenue"); ok {
		p.Revenue = ptr(v)
	}
	if v, ok := getInt(rec, "quantity"); ok {
		p.Quantity = ptr(v)
	}
	if v, ok := getString(rec, "customer_type"); ok {
		p.CustomerType = ptr(v)
	}
	if v, ok := getString(rec, "status"); ok {
		switch domain.PurchaseStatus(strings.ToLower(strings.TrimSpace(v))) {
		case domain.PurchaseStatusApproved:
			p.Status = ptr(domain.PurchaseStatusApproved)
		case domain.PurchaseStatusRejected:
			p.Status = ptr(domain.PurchaseStatusRejected)
		case domain.PurchaseStatusPending:
			p.Status = ptr(domain.PurchaseStatusPending)
		}
	}
	if v, ok := getString(rec, "order_date"); ok {
		if d, ok := dateOnly(v); ok {
			p.OrderDate = ptr(d)
		}
	}

	return p
}
