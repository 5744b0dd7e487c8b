package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// maxTxRetries: extra attempts after the first one when the transaction
// hits a serialization or deadlock failure.
const maxTxRetries = 2

type DefaultSyncRepository struct {
	DB *gorm.DB
}

func NewDefaultSyncRepository(db *gorm.DB) *DefaultSyncRepository {
	return &DefaultSyncRepository{DB: db}
}

func (r *DefaultSyncRepository) InSyncWindow(ctx context.Context, networkID, userID string, fn func(domain.SyncTx) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// Serialize concurrent syncs for the same account: two runs
			// racing on delete-then-insert would otherwise lose updates.
			if lockErr := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?), hashtext(?))", networkID, userID).Error; lockErr != nil {
				return fmt.Errorf("acquire sync lock: %w", lockErr)
			}
			return fn(&syncTx{tx: tx})
		}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})

		if err == nil || attempt >= maxTxRetries || !isRetryableTxError(err) {
			return err
		}
		log.Printf("sync transaction conflict, retry %d/%d: %v", attempt+1, maxTxRetries, err)
		time.Sleep(time.Duration(attempt+1) * 100 * time.Millisecond)
	}
}

// SQLSTATE 40001 = serialization_failure, 40P01 = deadlock_detected.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

type syncTx struct {
	tx *gorm.DB
}

// RecordScope wraps fn in a nested gorm transaction, which issues a
// SAVEPOINT inside the already open window transaction. A failed
// statement aborts only the savepoint, so the remaining records of the
// batch can still run and commit.
func (t *syncTx) RecordScope(fn func(domain.SyncTx) error) error {
	return t.tx.Transaction(func(nested *gorm.DB) error {
		return fn(&syncTx{tx: nested})
	})
}

func (t *syncTx) DeletePurchaseWindow(networkID, userID, startDate, endDate string) (int64, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0, fmt.Errorf("parse start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0, fmt.Errorf("parse end date %q: %w", endDate, err)
	}

	res := t.tx.
		Where("network_id = ? AND user_id = ? AND order_date BETWEEN ? AND ?", networkID, userID, start, end).
		Delete(&models.PurchaseModel{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (t *syncTx) UpsertCountry(code, name string) (*domain.Country, error) {
	var model models.CountryModel
	err := t.tx.Where("code = ?", code).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		model = models.CountryModel{
			ID:   uuid.NewString(),
			Code: code,
			Name: name,
		}
		if err := t.tx.Create(&model).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return &domain.Country{ID: model.ID, Code: model.Code, Name: model.Name}, nil
}

func (t *syncTx) UpsertCampaign(campaign *domain.Campaign, reactivate bool) (*domain.Campaign, error) {
	var model models.CampaignModel
	err := t.tx.
		Where("network_id = ? AND user_id = ? AND network_campaign_id = ?",
			campaign.NetworkID, campaign.UserID, campaign.NetworkCampaignID).
		First(&model).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		created := mappers.ToGORMCampaign(campaign)
		created.ID = uuid.NewString()
		if err := t.tx.Create(created).Error; err != nil {
			return nil, err
		}
		return mappers.ToDomainCampaign(created), nil
	}
	if err != nil {
		return nil, err
	}

	model.Name = campaign.Name
	model.LogoURL = campaign.LogoURL
	model.Type = campaign.Type
	if reactivate {
		model.Status = domain.CampaignStatusActive
	}
	if err := t.tx.Save(&model).Error; err != nil {
		return nil, err
	}
	return mappers.ToDomainCampaign(&model), nil
}

func (t *syncTx) UpsertCoupon(coupon *domain.Coupon) (*domain.Coupon, error) {
	var model models.CouponModel
	err := t.tx.
		Where("campaign_id = ? AND code = ?", coupon.CampaignID, coupon.Code).
		First(&model).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		created := mappers.ToGORMCoupon(coupon)
		created.ID = uuid.NewString()
		if err := t.tx.Create(created).Error; err != nil {
			return nil, err
		}
		return mappers.ToDomainCoupon(created), nil
	}
	if err != nil {
		return nil, err
	}

	model.Description = coupon.Description
	model.Status = coupon.Status
	// Overwritten, not incremented: the network report is the source of truth.
	model.UsedCount = coupon.UsedCount
	if err := t.tx.Save(&model).Error; err != nil {
		return nil, err
	}
	return mappers.ToDomainCoupon(&model), nil
}

func (t *syncTx) CreatePurchase(purchase *domain.Purchase) error {
	model := mappers.ToGORMPurchase(purchase)
	if model.ID == "" {
		model.ID = uuid.NewString()
		purchase.ID = model.ID
	}
	return t.tx.Create(model).Error
}
