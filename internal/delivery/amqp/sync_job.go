package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-affiliate-service/internal/client"
	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
	"github.com/LavaJover/shvark-affiliate-service/internal/usecase"
)

// SyncJob is the queue message that triggers one ingestion run. Records
// may be inlined (replays, webhooks); otherwise the worker pulls the
// window from the network API.
type SyncJob struct {
	Network   string             `json:"network"`
	NetworkID string             `json:"network_id"`
	UserID    string             `json:"user_id"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	DataType  string             `json:"data_type"`
	Records   []domain.RawRecord `json:"records,omitempty"`
}

const jobTimeout = 2 * time.Minute

type SyncJobWorker struct {
	Consumer *Consumer
	Usecase  usecase.SyncUsecase
	Fetchers map[string]client.Fetcher
	Queue    string
}

func NewSyncJobWorker(consumer *Consumer, uc usecase.SyncUsecase, fetchers map[string]client.Fetcher, queue string) *SyncJobWorker {
	return &SyncJobWorker{
		Consumer: consumer,
		Usecase:  uc,
		Fetchers: fetchers,
		Queue:    queue,
	}
}

// AccountKey addresses a fetcher by the (network, user) scope a job carries.
func AccountKey(networkID, userID string) string {
	return networkID + ":" + userID
}

func (w *SyncJobWorker) Start() error {
	return w.Consumer.ConsumeQueue(w.Queue, w.HandleMessage)
}

func (w *SyncJobWorker) HandleMessage(body []byte) error {
	var job SyncJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("failed to unmarshal sync job: %w", err)
	}

	network, known := domain.ParseNetwork(job.Network)
	if !known {
		slog.Warn("unrecognized network name, normalizing with boostiny rules", "network", job.Network)
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	records := job.Records
	if len(records) == 0 {
		fetcher, ok := w.Fetchers[AccountKey(job.NetworkID, job.UserID)]
		if !ok {
			return fmt.Errorf("%w: network=%s user=%s", domain.ErrFetcherNotFound, job.Network, job.UserID)
		}
		fetched, err := fetcher.FetchReport(ctx, job.StartDate, job.EndDate)
		if err != nil {
			return fmt.Errorf("fetch %s report: %w", job.Network, err)
		}
		records = fetched
	}

	input := &domain.SyncInput{
		NetworkID: job.NetworkID,
		UserID:    job.UserID,
		StartDate: job.StartDate,
		EndDate:   job.EndDate,
		Network:   network,
		Records:   records,
	}

	var result *domain.SyncResult
	switch job.DataType {
	case "", "coupon":
		result = w.Usecase.ProcessCouponData(ctx, input)
	case "link":
		result = w.Usecase.ProcessLinkData(ctx, input)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownDataType, job.DataType)
	}

	if !result.Success {
		return fmt.Errorf("sync run %s failed: %s", result.RunID, result.Message)
	}

	log.Printf("sync run %s done: network=%s campaigns=%d coupons=%d purchases=%d errors=%d",
		result.RunID, job.Network,
		result.Processed.Campaigns, result.Processed.Coupons, result.Processed.Purchases,
		len(result.Errors))
	return nil
}
