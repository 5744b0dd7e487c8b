package normalize

import "github.com/LavaJover/shvark-affiliate-service/internal/domain"

// boostinyNormalizer handles the flat boostiny report shape. It is also
// the fallback for unrecognized network names (see domain.ParseNetwork).
type boostinyNormalizer struct{}

func (boostinyNormalizer) Normalize(rec domain.RawRecord) domain.PartialRecord {
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
	if v, ok := getFloat(rec, "sales_amount_usd"); ok {
		p.OrderValue = ptr(v)
	}
	if v, ok := getFloat(rec, "revenue"); ok {
		// boostiny pays out the reported revenue as-is.
		p.Commission = ptr(v)
		p.Revenue = ptr(v)
	}
	if v, ok := getInt(rec, "orders"); ok {
		p.Quantity = ptr(v)
	}
	if v, ok := getString(rec, "customer_type"); ok {
		p.CustomerType = ptr(v)
	}
	if v, ok := getString(rec, "date"); ok {
		if d, ok := dateOnly(v); ok {
			p.OrderDate = ptr(d)
		}
	}
	if v, ok := getString(rec, "last_updated_at"); ok {
		if d, ok := dateOnly(v); ok {
			p.PurchaseDate = ptr(d)
		}
	}

	// boostiny reports carry no per-row status.
	p.Status = ptr(domain.PurchaseStatusApproved)
	return p
}
