package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/LavaJover/shvark-affiliate-service/internal/client"
	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	couponInputs []*domain.SyncInput
	linkInputs   []*domain.SyncInput
	result       *domain.SyncResult
}

func (f *fakeUsecase) ProcessCouponData(ctx context.Context, input *domain.SyncInput) *domain.SyncResult {
	f.couponInputs = append(f.couponInputs, input)
	return f.result
}

func (f *fakeUsecase) ProcessLinkData(ctx context.Context, input *domain.SyncInput) *domain.SyncResult {
	f.linkInputs = append(f.linkInputs, input)
	return f.result
}

type fakeFetcher struct {
	records []domain.RawRecord
	err     error

	startDate string
	endDate   string
}

func (f *fakeFetcher) FetchReport(ctx context.Context, startDate, endDate string) ([]domain.RawRecord, error) {
	f.startDate, f.endDate = startDate, endDate
	return f.records, f.err
}

func okResult() *domain.SyncResult {
	return &domain.SyncResult{RunID: "run-1", Success: true}
}

func marshalJob(t *testing.T, job SyncJob) []byte {
	t.Helper()
	body, err := json.Marshal(job)
	require.NoError(t, err)
	return body
}

func TestHandleMessageInlineRecords(t *testing.T) {
	uc := &fakeUsecase{result: okResult()}
	worker := NewSyncJobWorker(nil, uc, nil, "sync_jobs")

	body := marshalJob(t, SyncJob{
		Network:   "boostiny",
		NetworkID: "net-1",
		UserID:    "user-1",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		DataType:  "coupon",
		Records:   []domain.RawRecord{{"campaign_id": "1"}},
	})

	require.NoError(t, worker.HandleMessage(body))
	require.Len(t, uc.couponInputs, 1)
	input := uc.couponInputs[0]
	assert.Equal(t, domain.NetworkBoostiny, input.Network)
	assert.Equal(t, "net-1", input.NetworkID)
	assert.Len(t, input.Records, 1)
	assert.Empty(t, uc.linkInputs)
}

func TestHandleMessageFetchesWhenNoRecords(t *testing.T) {
	uc := &fakeUsecase{result: okResult()}
	fetcher := &fakeFetcher{records: []domain.RawRecord{{"campaign_id": "1"}, {"campaign_id": "2"}}}
	fetchers := map[string]client.Fetcher{AccountKey("net-1", "user-1"): fetcher}
	worker := NewSyncJobWorker(nil, uc, fetchers, "sync_jobs")

	body := marshalJob(t, SyncJob{
		Network:   "digizag",
		NetworkID: "net-1",
		UserID:    "user-1",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})

	require.NoError(t, worker.HandleMessage(body))
	assert.Equal(t, "2024-01-01", fetcher.startDate)
	assert.Equal(t, "2024-01-31", fetcher.endDate)
	// Empty data type defaults to the coupon path.
	require.Len(t, uc.couponInputs, 1)
	assert.Len(t, uc.couponInputs[0].Records, 2)
}

func TestHandleMessageLinkDataType(t *testing.T) {
	uc := &fakeUsecase{result: okResult()}
	worker := NewSyncJobWorker(nil, uc, nil, "sync_jobs")

	body := marshalJob(t, SyncJob{
		Network:  "platformance",
		DataType: "link",
		Records:  []domain.RawRecord{{"campaign_id": "1"}},
	})

	require.NoError(t, worker.HandleMessage(body))
	assert.Empty(t, uc.couponInputs)
	require.Len(t, uc.linkInputs, 1)
	assert.Equal(t, domain.NetworkPlatformance, uc.linkInputs[0].Network)
}

func TestHandleMessageErrors(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		worker := NewSyncJobWorker(nil, &fakeUsecase{result: okResult()}, nil, "sync_jobs")
		assert.Error(t, worker.HandleMessage([]byte("{not json")))
	})

	t.Run("unknown data type", func(t *testing.T) {
		worker := NewSyncJobWorker(nil, &fakeUsecase{result: okResult()}, nil, "sync_jobs")
		body := marshalJob(t, SyncJob{
			Network:  "boostiny",
			DataType: "banner",
			Records:  []domain.RawRecord{{"campaign_id": "1"}},
		})
		err := worker.HandleMessage(body)
		assert.ErrorIs(t, err, domain.ErrUnknownDataType)
	})

	t.Run("no fetcher for account", func(t *testing.T) {
		worker := NewSyncJobWorker(nil, &fakeUsecase{result: okResult()}, map[string]client.Fetcher{}, "sync_jobs")
		body := marshalJob(t, SyncJob{Network: "boostiny", NetworkID: "net-x", UserID: "user-x"})
		err := worker.HandleMessage(body)
		assert.ErrorIs(t, err, domain.ErrFetcherNotFound)
	})

	t.Run("fetch failure", func(t *testing.T) {
		fetcher := &fakeFetcher{err: errors.New("upstream 503")}
		fetchers := map[string]client.Fetcher{AccountKey("net-1", "user-1"): fetcher}
		worker := NewSyncJobWorker(nil, &fakeUsecase{result: okResult()}, fetchers, "sync_jobs")
		body := marshalJob(t, SyncJob{Network: "boostiny", NetworkID: "net-1", UserID: "user-1"})
		err := worker.HandleMessage(body)
		assert.ErrorContains(t, err, "upstream 503")
	})

	t.Run("failed run is returned for requeue", func(t *testing.T) {
		uc := &fakeUsecase{result: &domain.SyncResult{RunID: "run-9", Success: false, Message: "deadlock detected"}}
		worker := NewSyncJobWorker(nil, uc, nil, "sync_jobs")
		body := marshalJob(t, SyncJob{Network: "boostiny", Records: []domain.RawRecord{{"campaign_id": "1"}}})
		err := worker.HandleMessage(body)
		assert.ErrorContains(t, err, "run-9")
		assert.ErrorContains(t, err, "deadlock detected")
	})
}
