package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type SyncStartedEvent struct {
	ID        uint `gorm:"primaryKey"`
	RunID     string
	NetworkID string
	UserID    string
	Network   string
	DataType  string
	StartDate string
	EndDate   string
	Records   int
	Timestamp time.Time
}

type SyncFinishedEvent struct {
	ID         uint `gorm:"primaryKey"`
	RunID      string
	NetworkID  string
	UserID     string
	Network    string
	DataType   string
	Success    bool
	Message    string
	Campaigns  int
	Coupons    int
	Purchases  int
	Errors     int
	DurationMs int64
	Timestamp  time.Time
}

type SyncEventLogger interface {
	LogSyncStarted(ctx context.Context, event SyncStartedEvent) error
	LogSyncFinished(ctx context.Context, event SyncFinishedEvent) error
}

type PGSyncEventLogger struct {
	db *gorm.DB
}

func NewPGSyncEventLogger(db *gorm.DB) *PGSyncEventLogger {
	return &PGSyncEventLogger{db: db}
}

func (l *PGSyncEventLogger) LogSyncStarted(ctx context.Context, event SyncStartedEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}

func (l *PGSyncEventLogger) LogSyncFinished(ctx context.Context, event SyncFinishedEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}

// DeleteEventsBefore drops audit rows older than cutoff. Used by the
// retention background task.
func (l *PGSyncEventLogger) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := l.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&SyncStartedEvent{})
	if res.Error != nil {
		return 0, res.Error
	}
	deleted := res.RowsAffected

	res = l.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&SyncFinishedEvent{})
	if res.Error != nil {
		return deleted, res.Error
	}
	return deleted + res.RowsAffected, nil
}
