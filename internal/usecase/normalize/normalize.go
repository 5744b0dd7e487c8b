package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
)

// Normalizer maps one network-specific report row to the shared
// partial shape. Implementations are pure: no I/O, no defaulting.
type Normalizer interface {
	Normalize(rec domain.RawRecord) domain.PartialRecord
}

var registry = map[domain.Network]Normalizer{
	domain.NetworkBoostiny:      boostinyNormalizer{},
	domain.NetworkDigizag:       digizagNormalizer{},
	domain.NetworkPlatformance:  platformanceNormalizer{},
	domain.NetworkOptimiseMedia: optimiseMediaNormalizer{},
}

// For returns the normalizer registered for the network. Every value
// produced by domain.ParseNetwork has a registered normalizer.
func For(network domain.Network) Normalizer {
	if n, ok := registry[network]; ok {
		return n
	}
	return boostinyNormalizer{}
}

type Options struct {
	// Strict collects missing-required-field diagnostics. It never
	// changes the defaulted output.
	Strict bool
	// Now overrides the clock used for date defaulting in tests.
	Now time.Time
}

// Normalize runs the network's normalizer and a single defaulting pass.
// The returned diagnostics are empty unless Options.Strict is set.
func Normalize(network domain.Network, rec domain.RawRecord, opts Options) (domain.CanonicalRecord, []string) {
	partial := For(network).Normalize(rec)

	var diags []string
	if opts.Strict {
		diags = missingFields(partial)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	return applyDefaults(partial, now), diags
}

func applyDefaults(p domain.PartialRecord, now time.Time) domain.CanonicalRecord {
	rec := domain.CanonicalRecord{
		CampaignName: "Unknown",
		Quantity:     1,
		CustomerType: "unknown",
		Status:       domain.PurchaseStatusPending,
		OrderDate:    now.Format("2006-01-02"),
	}

	if p.CampaignID != nil {
		rec.CampaignID = *p.CampaignID
	}
	if p.CampaignName != nil && *p.CampaignName != "" {
		rec.CampaignName = *p.CampaignName
	}
	if p.CampaignLogo != nil {
		rec.CampaignLogo = *p.CampaignLogo
	}
	if p.Code != nil {
		rec.Code = strings.TrimSpace(*p.Code)
	}
	if p.CountryCode != nil {
		rec.CountryCode = strings.TrimSpace(*p.CountryCode)
	}
	if p.OrderID != nil {
		rec.OrderID = *p.OrderID
	}
	if p.OrderValue != nil {
		rec.OrderValue = *p.OrderValue
	}
	if p.Commission != nil {
		rec.Commission = *p.Commission
	}
	if p.Revenue != nil {
		rec.Revenue = *p.Revenue
	}
	if p.Quantity != nil && *p.Quantity > 0 {
		rec.Quantity = *p.Quantity
	}
	if p.CustomerType != nil {
		if ct := strings.ToLower(strings.TrimSpace(*p.CustomerType)); ct != "" {
			rec.CustomerType = ct
		}
	}
	if p.Status != nil {
		rec.Status = *p.Status
	}
	if p.OrderDate != nil && *p.OrderDate != "" {
		rec.OrderDate = *p.OrderDate
	}
	if p.PurchaseDate != nil && *p.PurchaseDate != "" {
		rec.PurchaseDate = *p.PurchaseDate
	} else {
		rec.PurchaseDate = rec.OrderDate
	}
	return rec
}

func missingFields(p domain.PartialRecord) []string {
	var diags []string
	if p.CampaignID == nil {
		diags = append(diags, "missing campaign_id")
	}
	if p.Code == nil {
		diags = append(diags, "missing code")
	}
	if p.CountryCode == nil {
		diags = append(diags, "missing country_code")
	}
	if p.OrderValue == nil {
		diags = append(diags, "missing order_value")
	}
	if p.OrderDate == nil {
		diags = append(diags, "missing order_date")
	}
	return diags
}

// ---- raw record access helpers ----

func getString(rec domain.RawRecord, key string) (string, bool) {
	v, ok := rec[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return fmt.Sprintf("%v", t), true
	}
}

func getFloat(rec domain.RawRecord, key string) (float64, bool) {
	v, ok := rec[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func getInt(rec domain.RawRecord, key string) (int, bool) {
	f, ok := getFloat(rec, key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func getMap(rec domain.RawRecord, key string) (domain.RawRecord, bool) {
	v, ok := rec[key]
	if !ok {
		return nil, false
	}
	switch t := v.(type) {
	case map[string]any:
		return domain.RawRecord(t), true
	case domain.RawRecord:
		return t, true
	default:
		return nil, false
	}
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// dateOnly reduces any of the datetime formats the networks emit to Y-m-d.
func dateOnly(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

func ptr[T any](v T) *T { return &v }
