package normalize

import (
	"testing"
	"time"

	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestBoostinyNormalize(t *testing.T) {
	rec := domain.RawRecord{
		"campaign_id":      float64(1),
		"campaign_name":    "X",
		"sales_amount_usd": float64(100),
		"revenue":          float64(20),
		"orders":           float64(2),
		"customer_type":    " VIP ",
	}

	out, diags := Normalize(domain.NetworkBoostiny, rec, Options{Now: testNow})

	assert.Empty(t, diags)
	assert.Equal(t, "1", out.CampaignID)
	assert.Equal(t, "X", out.CampaignName)
	assert.Equal(t, 100.0, out.OrderValue)
	assert.Equal(t, 20.0, out.Commission)
	assert.Equal(t, 20.0, out.Revenue)
	assert.Equal(t, 2, out.Quantity)
	assert.Equal(t, "vip", out.CustomerType)
	assert.Equal(t, domain.PurchaseStatusApproved, out.Status)
}

func TestBoostinyDates(t *testing.T) {
	rec := domain.RawRecord{
		"campaign_id":     "7",
		"date":            "2024-02-01",
		"last_updated_at": "2024-02-03 09:30:00",
	}

	out, _ := Normalize(domain.NetworkBoostiny, rec, Options{Now: testNow})

	assert.Equal(t, "2024-02-01", out.OrderDate)
	assert.Equal(t, "2024-02-03", out.PurchaseDate)
}

func TestOptimiseMediaNormalize(t *testing.T) {
	t.Run("derived sums and country sentinel", func(t *testing.T) {
		rec := domain.RawRecord{
			"advertiserId":         float64(5),
			"validatedCommission":  float64(30),
			"rejectedCommission":   float64(10),
			"pendingCommission":    float64(0),
			"pendingConversions":   float64(1),
			"validatedConversions": float64(2),
			"rejectedConversions":  float64(0),
			"countryCode":          "-",
		}

		out, _ := Normalize(domain.NetworkOptimiseMedia, rec, Options{Now: testNow})

		assert.Equal(t, "5", out.CampaignID)
		assert.Equal(t, 40.0, out.Commission)
		assert.Equal(t, 40.0, out.Revenue)
		assert.Equal(t, 3, out.Quantity)
		assert.Equal(t, "US", out.CountryCode)
		// Validated beats rejected even though both commissions are > 0.
		assert.Equal(t, domain.PurchaseStatusApproved, out.Status)
	})

	t.Run("rejected only", func(t *testing.T) {
		rec := domain.RawRecord{
			"advertiserId":       "9",
			"rejectedCommission": float64(5),
		}
		out, _ := Normalize(domain.NetworkOptimiseMedia, rec, Options{Now: testNow})
		assert.Equal(t, domain.PurchaseStatusRejected, out.Status)
	})

	t.Run("no commissions at all", func(t *testing.T) {
		rec := domain.RawRecord{"advertiserId": "9"}
		out, _ := Normalize(domain.NetworkOptimiseMedia, rec, Options{Now: testNow})
		assert.Equal(t, domain.PurchaseStatusPending, out.Status)
		// Zero conversions fall back to one order.
		assert.Equal(t, 1, out.Quantity)
	})

	t.Run("customer type comes from campaign name", func(t *testing.T) {
		rec := domain.RawRecord{
			"advertiserId": "9",
			"campaignName": "Spring Promo",
		}
		out, _ := Normalize(domain.NetworkOptimiseMedia, rec, Options{Now: testNow})
		assert.Equal(t, "spring promo", out.CustomerType)
	})
}

func TestDigizagNormalize(t *testing.T) {
	rec := domain.RawRecord{
		"Offer": map[string]any{
			"id":   float64(42),
			"name": "Fashion Store",
		},
		"Stat": map[string]any{
			"sale_amount":       float64(250),
			"payout":            float64(12.5),
			"coupon_code":       "SAVE10",
			"conversion_status": "Approved",
			"datetime":          "2024-01-15 10:00:00",
		},
	}

	out, _ := Normalize(domain.NetworkDigizag, rec, Options{Now: testNow})

	assert.Equal(t, "42", out.CampaignID)
	assert.Equal(t, "Fashion Store", out.CampaignName)
	assert.Equal(t, 250.0, out.OrderValue)
	assert.Equal(t, 12.5, out.Commission)
	assert.Equal(t, 12.5, out.Revenue)
	assert.Equal(t, "SAVE10", out.Code)
	assert.Equal(t, domain.PurchaseStatusApproved, out.Status)
	assert.Equal(t, "2024-01-15", out.OrderDate)
	assert.Equal(t, "2024-01-15", out.PurchaseDate)
	// digizag reports carry no country.
	assert.Equal(t, "", out.CountryCode)
}

func TestPlatformanceNormalize(t *testing.T) {
	rec := domain.RawRecord{
		"campaign_id":   "p-1",
		"campaign_name": "Gadgets",
		"code":          "TECH5",
		"country_code":  "ae",
		"status":        "pending",
		"order_date":    "2024-02-20",
	}

	out, _ := Normalize(domain.NetworkPlatformance, rec, Options{Now: testNow})

	assert.Equal(t, "p-1", out.CampaignID)
	assert.Equal(t, "TECH5", out.Code)
	assert.Equal(t, "ae", out.CountryCode)
	assert.Equal(t, domain.PurchaseStatusPending, out.Status)
	assert.Equal(t, "2024-02-20", out.OrderDate)
	// Monetary fields default to zero, quantity to one.
	assert.Equal(t, 0.0, out.OrderValue)
	assert.Equal(t, 0.0, out.Commission)
	assert.Equal(t, 1, out.Quantity)
}

func TestDefaulting(t *testing.T) {
	out, _ := Normalize(domain.NetworkPlatformance, domain.RawRecord{}, Options{Now: testNow})

	assert.Equal(t, "", out.CampaignID)
	assert.Equal(t, "Unknown", out.CampaignName)
	assert.Equal(t, "unknown", out.CustomerType)
	assert.Equal(t, 1, out.Quantity)
	assert.Equal(t, domain.PurchaseStatusPending, out.Status)
	assert.Equal(t, "2024-03-10", out.OrderDate)
	assert.Equal(t, out.OrderDate, out.PurchaseDate)
}

func TestStrictDiagnostics(t *testing.T) {
	out, diags := Normalize(domain.NetworkPlatformance, domain.RawRecord{}, Options{Strict: true, Now: testNow})

	assert.Contains(t, diags, "missing campaign_id")
	assert.Contains(t, diags, "missing code")
	assert.Contains(t, diags, "missing country_code")
	assert.Contains(t, diags, "missing order_value")
	assert.Contains(t, diags, "missing order_date")
	// Strict mode must not change the defaulted output.
	assert.Equal(t, "Unknown", out.CampaignName)
	assert.Equal(t, 1, out.Quantity)
}

func TestUnknownNetworkUsesBoostinyRules(t *testing.T) {
	network, ok := domain.ParseNetwork("boostiny-typo")
	assert.False(t, ok)
	assert.Equal(t, domain.NetworkBoostiny, network)

	rec := domain.RawRecord{"campaign_id": "1", "sales_amount_usd": float64(50)}
	out, _ := Normalize(network, rec, Options{Now: testNow})
	assert.Equal(t, 50.0, out.OrderValue)
	assert.Equal(t, domain.PurchaseStatusApproved, out.Status)
}
