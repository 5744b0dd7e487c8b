package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-affiliate-service/internal/usecase/normalize"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

// syncCurrency: all four networks report USD amounts; multi-currency
// is not supported.
const syncCurrency = "USD"

const couponDescription = "Auto-synced from network"

type SyncUsecase interface {
	ProcessCouponData(ctx context.Context, input *domain.SyncInput) *domain.SyncResult
	ProcessLinkData(ctx context.Context, input *domain.SyncInput) *domain.SyncResult
}

type SyncOptions struct {
	// ReactivateCampaigns forces campaign status back to active on
	// every re-sync, clobbering manual pauses. On by default because
	// that is what the networks' own dashboards imply, but it can be
	// switched off without a code change.
	ReactivateCampaigns bool
	// StrictNormalization collects missing-field diagnostics per
	// record without changing defaulting behavior.
	StrictNormalization bool
}

type DefaultSyncUsecase struct {
	Store     domain.SyncStore
	Publisher domain.SyncEventPublisher
	Analytics domain.AnalyticsSink
	AuditLog  logger.SyncEventLogger
	Metrics   *metrics.SyncMetrics
	Options   SyncOptions

	newRunID func() string
}

func NewDefaultSyncUsecase(
	store domain.SyncStore,
	publisher domain.SyncEventPublisher,
	analytics domain.AnalyticsSink,
	auditLog logger.SyncEventLogger,
	syncMetrics *metrics.SyncMetrics,
	options SyncOptions) *DefaultSyncUsecase {

	runID, err := nanoid.Standard(12)
	if err != nil {
		runID = uuid.NewString
	}

	return &DefaultSyncUsecase{
		Store:     store,
		Publisher: publisher,
		Analytics: analytics,
		AuditLog:  auditLog,
		Metrics:   syncMetrics,
		Options:   options,
		newRunID:  runID,
	}
}

// ProcessCouponData ingests one coupon report batch with replace
// semantics: all purchases in the (network, user, date window) scope
// are deleted before the batch is inserted, so re-running the same
// window is idempotent. Each record runs in its own savepoint: a
// failing record is rolled back, recorded and skipped; only a
// transaction-level failure flips Success to false.
func (uc *DefaultSyncUsecase) ProcessCouponData(ctx context.Context, input *domain.SyncInput) *domain.SyncResult {
	started := time.Now()
	result := &domain.SyncResult{RunID: uc.newRunID(), Success: true}
	uc.logStarted(ctx, input, result.RunID, "coupon")

	var facts []domain.PurchaseFact
	err := uc.Store.InSyncWindow(ctx, input.NetworkID, input.UserID, func(tx domain.SyncTx) error {
		deleted, err := tx.DeletePurchaseWindow(input.NetworkID, input.UserID, input.StartDate, input.EndDate)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrWindowDelete, err)
		}
		if uc.Metrics != nil {
			uc.Metrics.RecordWindowCleared(string(input.Network), deleted)
		}

		for _, raw := range input.Records {
			rec, diags := normalize.Normalize(input.Network, raw, normalize.Options{Strict: uc.Options.StrictNormalization})
			uc.appendDiagnostics(result, rec.CampaignName, diags)

			// On failure the savepoint rolls the record's writes back;
			// the counters and facts it accumulated go with it.
			counts := result.Processed
			kept := len(facts)
			err := tx.RecordScope(func(rtx domain.SyncTx) error {
				return uc.ingestCouponRecord(rtx, input, rec, result, &facts)
			})
			if err != nil {
				result.Processed = counts
				facts = facts[:kept]
				result.Errors = append(result.Errors, domain.RecordError{Campaign: rec.CampaignName, Error: err.Error()})
				slog.Error("coupon record rejected",
					"run_id", result.RunID,
					"network", input.Network,
					"campaign", rec.CampaignName,
					"error", err.Error())
			}
		}
		return nil
	})
	if err != nil {
		// The transaction rolled back: report zero persisted counts and
		// keep the in-flight accumulator separately.
		result.Success = false
		result.Message = err.Error()
		result.Attempted = result.Processed
		result.Processed = domain.ProcessedCounts{}
		facts = nil
	}

	uc.finish(ctx, input, result, "coupon", started, facts)
	return result
}

// ProcessLinkData ingests link-attribution purchases. Unlike the coupon
// path there is no window delete: re-running the same batch appends
// duplicate purchases.
func (uc *DefaultSyncUsecase) ProcessLinkData(ctx context.Context, input *domain.SyncInput) *domain.SyncResult {
	started := time.Now()
	result := &domain.SyncResult{RunID: uc.newRunID(), Success: true}
	uc.logStarted(ctx, input, result.RunID, "link")

	err := uc.Store.InSyncWindow(ctx, input.NetworkID, input.UserID, func(tx domain.SyncTx) error {
		for _, raw := range input.Records {
			rec, diags := normalize.Normalize(input.Network, raw, normalize.Options{Strict: uc.Options.StrictNormalization})
			uc.appendDiagnostics(result, rec.CampaignName, diags)

			counts := result.Processed
			err := tx.RecordScope(func(rtx domain.SyncTx) error {
				return uc.ingestLinkRecord(rtx, input, raw, rec, result)
			})
			if err != nil {
				result.Processed = counts
				result.Errors = append(result.Errors, domain.RecordError{Campaign: rec.CampaignName, Error: err.Error()})
				slog.Error("link record rejected",
					"run_id", result.RunID,
					"network", input.Network,
					"campaign", rec.CampaignName,
					"error", err.Error())
			}
		}
		return nil
	})
	if err != nil {
		result.Success = false
		result.Message = err.Error()
		result.Attempted = result.Processed
		result.Processed = domain.ProcessedCounts{}
	}

	uc.finish(ctx, input, result, "link", started, nil)
	return result
}

func (uc *DefaultSyncUsecase) ingestCouponRecord(
	tx domain.SyncTx,
	input *domain.SyncInput,
	rec domain.CanonicalRecord,
	result *domain.SyncResult,
	facts *[]domain.PurchaseFact) error {

	if rec.CampaignID == "" {
		return domain.ErrMissingCampaignID
	}

	countryCode := strings.ToUpper(rec.CountryCode)
	countryName := countryCode
	if countryCode == "" {
		countryCode = domain.CountryCodeNA
		countryName = domain.CountryNameNA
	}
	if _, err := tx.UpsertCountry(countryCode, countryName); err != nil {
		return fmt.Errorf("upsert country: %w", err)
	}

	campaign, err := tx.UpsertCampaign(&domain.Campaign{
		NetworkID:         input.NetworkID,
		UserID:            input.UserID,
		NetworkCampaignID: rec.CampaignID,
		Name:              rec.CampaignName,
		LogoURL:           rec.CampaignLogo,
		Type:              domain.CampaignTypeCoupon,
		Status:            domain.CampaignStatusActive,
	}, uc.Options.ReactivateCampaigns)
	if err != nil {
		return fmt.Errorf("upsert campaign: %w", err)
	}
	result.Processed.Campaigns++

	code := rec.Code
	if code == "" {
		code = "NA-" + campaign.ID
	}
	coupon, err := tx.UpsertCoupon(&domain.Coupon{
		CampaignID:  campaign.ID,
		Code:        code,
		Description: couponDescription,
		Status:      "active",
		UsedCount:   rec.Quantity,
	})
	if err != nil {
		return fmt.Errorf("upsert coupon: %w", err)
	}
	result.Processed.Coupons++

	orderDate, err := time.Parse("2006-01-02", rec.OrderDate)
	if err != nil {
		return fmt.Errorf("parse order date %q: %w", rec.OrderDate, err)
	}

	couponID := coupon.ID
	purchase := &domain.Purchase{
		CouponID:       &couponID,
		CampaignID:     campaign.ID,
		NetworkID:      input.NetworkID,
		UserID:         input.UserID,
		CountryCode:    countryCode,
		OrderID:        rec.OrderID,
		NetworkOrderID: rec.OrderID,
		OrderValue:     rec.OrderValue,
		Commission:     rec.Commission,
		Revenue:        rec.Revenue,
		Quantity:       rec.Quantity,
		Currency:       syncCurrency,
		CustomerType:   rec.CustomerType,
		Status:         rec.Status,
		OrderDate:      orderDate,
	}
	if err := tx.CreatePurchase(purchase); err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	result.Processed.Purchases++

	*facts = append(*facts, domain.PurchaseFact{
		PurchaseID:  purchase.ID,
		NetworkID:   input.NetworkID,
		UserID:      input.UserID,
		CampaignID:  campaign.ID,
		CouponCode:  code,
		CountryCode: countryCode,
		OrderValue:  rec.OrderValue,
		Commission:  rec.Commission,
		Revenue:     rec.Revenue,
		Quantity:    int32(rec.Quantity),
		Status:      string(rec.Status),
		OrderDate:   orderDate,
		IngestedAt:  time.Now(),
	})
	return nil
}

var numericSubID = regexp.MustCompile(`^\d+$`)

func (uc *DefaultSyncUsecase) ingestLinkRecord(
	tx domain.SyncTx,
	input *domain.SyncInput,
	raw domain.RawRecord,
	rec domain.CanonicalRecord,
	result *domain.SyncResult) error {

	if rec.CampaignID == "" {
		return domain.ErrMissingCampaignID
	}

	campaign, err := tx.UpsertCampaign(&domain.Campaign{
		NetworkID:         input.NetworkID,
		UserID:            input.UserID,
		NetworkCampaignID: rec.CampaignID,
		Name:              rec.CampaignName,
		LogoURL:           rec.CampaignLogo,
		Type:              domain.CampaignTypeLink,
		Status:            domain.CampaignStatusActive,
	}, uc.Options.ReactivateCampaigns)
	if err != nil {
		return fmt.Errorf("upsert campaign: %w", err)
	}
	result.Processed.Campaigns++

	orderDate, err := time.Parse("2006-01-02", rec.OrderDate)
	if err != nil {
		return fmt.Errorf("parse order date %q: %w", rec.OrderDate, err)
	}

	purchase := &domain.Purchase{
		CampaignID:     campaign.ID,
		NetworkID:      input.NetworkID,
		UserID:         input.UserID,
		CountryCode:    domain.CountryCodeNA,
		OrderID:        rec.OrderID,
		NetworkOrderID: rec.OrderID,
		OrderValue:     rec.OrderValue,
		Commission:     rec.Commission,
		Revenue:        rec.Revenue,
		Quantity:       rec.Quantity,
		Currency:       syncCurrency,
		CustomerType:   rec.CustomerType,
		Status:         domain.PurchaseStatusApproved,
		OrderDate:      orderDate,
		MetadataJSON:   linkMetadata(raw),
	}
	if err := tx.CreatePurchase(purchase); err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	result.Processed.Purchases++
	return nil
}

// linkMetadata keeps traffic source and sub id from the raw row.
// sub_id is kept only when it is purely numeric.
func linkMetadata(raw domain.RawRecord) string {
	meta := map[string]string{}
	if v, ok := raw["traffic_source"].(string); ok && v != "" {
		meta["traffic_source"] = v
	}
	switch v := raw["sub_id"].(type) {
	case string:
		if numericSubID.MatchString(v) {
			meta["sub_id"] = v
		}
	case float64:
		meta["sub_id"] = fmt.Sprintf("%.0f", v)
	}
	if len(meta) == 0 {
		return ""
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return ""
	}
	return string(b)
}

func (uc *DefaultSyncUsecase) appendDiagnostics(result *domain.SyncResult, campaign string, diags []string) {
	for _, d := range diags {
		result.Diagnostics = append(result.Diagnostics, domain.RecordError{Campaign: campaign, Error: d})
	}
}

func (uc *DefaultSyncUsecase) logStarted(ctx context.Context, input *domain.SyncInput, runID, dataType string) {
	if uc.AuditLog == nil {
		return
	}
	err := uc.AuditLog.LogSyncStarted(ctx, logger.SyncStartedEvent{
		RunID:     runID,
		NetworkID: input.NetworkID,
		UserID:    input.UserID,
		Network:   string(input.Network),
		DataType:  dataType,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Records:   len(input.Records),
		Timestamp: time.Now(),
	})
	if err != nil {
		slog.Error("failed to log sync start", "run_id", runID, "error", err.Error())
	}
}

func (uc *DefaultSyncUsecase) finish(
	ctx context.Context,
	input *domain.SyncInput,
	result *domain.SyncResult,
	dataType string,
	started time.Time,
	facts []domain.PurchaseFact) {

	duration := time.Since(started)

	if uc.Metrics != nil {
		uc.Metrics.RecordSyncFinished(
			string(input.Network), dataType, result.Success,
			result.Processed.Campaigns, result.Processed.Coupons, result.Processed.Purchases,
			len(result.Errors), duration.Seconds())
	}

	if uc.AuditLog != nil {
		err := uc.AuditLog.LogSyncFinished(ctx, logger.SyncFinishedEvent{
			RunID:      result.RunID,
			NetworkID:  input.NetworkID,
			UserID:     input.UserID,
			Network:    string(input.Network),
			DataType:   dataType,
			Success:    result.Success,
			Message:    result.Message,
			Campaigns:  result.Processed.Campaigns,
			Coupons:    result.Processed.Coupons,
			Purchases:  result.Processed.Purchases,
			Errors:     len(result.Errors),
			DurationMs: duration.Milliseconds(),
			Timestamp:  time.Now(),
		})
		if err != nil {
			slog.Error("failed to log sync finish", "run_id", result.RunID, "error", err.Error())
		}
	}

	if uc.Publisher != nil {
		err := uc.Publisher.PublishSyncCompleted(domain.SyncEvent{
			RunID:     result.RunID,
			NetworkID: input.NetworkID,
			UserID:    input.UserID,
			Network:   string(input.Network),
			DataType:  dataType,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
			Success:   result.Success,
			Processed: result.Processed,
			Errors:    len(result.Errors),
		})
		if err != nil {
			slog.Error("failed to publish sync event", "run_id", result.RunID, "error", err.Error())
		}
	}

	if result.Success && uc.Analytics != nil && len(facts) > 0 {
		if err := uc.Analytics.InsertPurchaseFacts(ctx, facts); err != nil {
			slog.Error("failed to ship purchase facts", "run_id", result.RunID, "error", err.Error())
		}
	}
}
