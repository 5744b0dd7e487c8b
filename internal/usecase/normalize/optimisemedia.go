package normalize

import "github.com/LavaJover/shvark-affiliate-service/internal/domain"

// optimiseMediaLogoURL is the network branding asset: optimisemedia
// reports carry no per-campaign logo.
const optimiseMediaLogoURL = "https://cdn.optimisemedia.com/assets/om-logo.png"

// optimiseMediaNormalizer derives quantity, payout and status from the
// per-state conversion/commission breakdown in the report row.
type optimiseMediaNormalizer struct{}

func (optimiseMediaNormalizer) Normalize(rec domain.RawRecord) domain.PartialRecord {
	var p domain.PartialRecord

	if v, ok := getString(rec, "advertiserId"); ok {
		p.CampaignID = ptr(v)
	}
	if v, ok := getString(rec, "advertiserName"); ok {
		p.CampaignName = ptr(v)
	}
	p.CampaignLogo = ptr(optimiseMediaLogoURL)

	if v, ok := getString(rec, "voucherCode"); ok {
		p.Code = ptr(v)
	}
	if v, ok := getString(rec, "orderId"); ok {
		p.OrderID = ptr(v)
	}
	if v, ok := getFloat(rec, "orderValue"); ok {
		p.OrderValue = ptr(v)
	}

	// Country "-" is the network's own missing-value sentinel.
	if v, ok := getString(rec, "countryCode"); ok && v != "-" && v != "" {
		p.CountryCode = ptr(v)
	} else {
		p.CountryCode = ptr("US")
	}

	pendingConv, _ := getInt(rec, "pendingConversions")
	validatedConv, _ := getInt(rec, "validatedConversions")
	rejectedConv, _ := getInt(rec, "rejectedConversions")
	if qty := pendingConv + validatedConv + rejectedConv; qty > 0 {
		p.Quantity = ptr(qty)
	}

	pendingComm, _ := getFloat(rec, "pendingCommission")
	validatedComm, _ := getFloat(rec, "validatedCommission")
	rejectedComm, _ := getFloat(rec, "rejectedCommission")
	total := rejectedComm + pendingComm + validatedComm
	p.Commission = ptr(total)
	p.Revenue = ptr(total)

	// Validated wins over rejected even when both are positive.
	switch {
	case validatedComm > 0:
		p.Status = ptr(domain.PurchaseStatusApproved)
	case rejectedComm > 0:
		p.Status = ptr(domain.PurchaseStatusRejected)
	default:
		p.Status = ptr(domain.PurchaseStatusPending)
	}

	// Upstream sourced customer type from the campaign name; kept until
	// the network exposes a real customer-type field.
	if v, ok := getString(rec, "campaignName"); ok {
		p.CustomerType = ptr(v)
	}

	if v, ok := getString(rec, "date"); ok {
		if d, ok := dateOnly(v); ok {
			p.OrderDate = ptr(d)
		}
	}

	return p
}
