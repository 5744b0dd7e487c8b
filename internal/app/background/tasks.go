package background

import (
	"context"
	"log"
	"time"

	"github.com/LavaJover/shvark-affiliate-service/internal/client"
	"github.com/LavaJover/shvark-affiliate-service/internal/config"
	"github.com/LavaJover/shvark-affiliate-service/internal/delivery/amqp"
	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-affiliate-service/internal/usecase"
)

type BackgroundTasks struct {
	SyncUsecase usecase.SyncUsecase
	AuditLogger *logger.PGSyncEventLogger
	Fetchers    map[string]client.Fetcher
	Accounts    []config.NetworkAccount
	Sync        config.SyncConfig
}

func NewBackgroundTasks(
	syncUC usecase.SyncUsecase,
	auditLogger *logger.PGSyncEventLogger,
	fetchers map[string]client.Fetcher,
	accounts []config.NetworkAccount,
	syncCfg config.SyncConfig) *BackgroundTasks {

	return &BackgroundTasks{
		SyncUsecase: syncUC,
		AuditLogger: auditLogger,
		Fetchers:    fetchers,
		Accounts:    accounts,
		Sync:        syncCfg,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startAuditRetention(ctx)
	go bt.startScheduledResync(ctx)
}

func (bt *BackgroundTasks) startAuditRetention(ctx context.Context) {
	if bt.Sync.AuditRetentionDays <= 0 {
		return
	}
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().AddDate(0, 0, -bt.Sync.AuditRetentionDays)
			deleted, err := bt.AuditLogger.DeleteEventsBefore(ctx, cutoff)
			if err != nil {
				log.Printf("Audit retention error: %v\n", err)
				continue
			}
			if deleted > 0 {
				log.Printf("Audit retention: dropped %d rows older than %s", deleted, cutoff.Format("2006-01-02"))
			}
		}
	}
}

// startScheduledResync re-pulls the trailing window for every configured
// account. The coupon path's replace semantics make this safe to run
// repeatedly over the same days.
func (bt *BackgroundTasks) startScheduledResync(ctx context.Context) {
	if bt.Sync.ResyncIntervalMin <= 0 || len(bt.Accounts) == 0 {
		return
	}
	ticker := time.NewTicker(time.Duration(bt.Sync.ResyncIntervalMin) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, account := range bt.Accounts {
				if err := bt.resyncAccount(ctx, account); err != nil {
					log.Printf("Scheduled resync error for %s/%s: %v\n", account.Network, account.UserID, err)
				}
			}
		}
	}
}

func (bt *BackgroundTasks) resyncAccount(ctx context.Context, account config.NetworkAccount) error {
	fetcher, ok := bt.Fetchers[amqp.AccountKey(account.NetworkID, account.UserID)]
	if !ok {
		return domain.ErrFetcherNotFound
	}

	endDate := time.Now().Format("2006-01-02")
	startDate := time.Now().AddDate(0, 0, -bt.Sync.ResyncWindowDays).Format("2006-01-02")

	records, err := fetcher.FetchReport(ctx, startDate, endDate)
	if err != nil {
		return err
	}

	network, _ := domain.ParseNetwork(account.Network)
	input := &domain.SyncInput{
		NetworkID: account.NetworkID,
		UserID:    account.UserID,
		StartDate: startDate,
		EndDate:   endDate,
		Network:   network,
		Records:   records,
	}

	var result *domain.SyncResult
	if account.DataType == "link" {
		result = bt.SyncUsecase.ProcessLinkData(ctx, input)
	} else {
		result = bt.SyncUsecase.ProcessCouponData(ctx, input)
	}
	if !result.Success {
		log.Printf("Scheduled resync run %s failed: %s\n", result.RunID, result.Message)
	}
	return nil
}
