package domain

import "context"

// SyncTx exposes the storage operations available inside one sync
// transaction. Everything done through it either commits or rolls back
// as a unit.
type SyncTx interface {
	// RecordScope runs fn inside a nested scope (a savepoint on
	// Postgres). When fn fails only that scope's writes are rolled
	// back: the enclosing transaction stays usable instead of being
	// poisoned by the failed statement.
	RecordScope(fn func(SyncTx) error) error
	DeletePurchaseWindow(networkID, userID, startDate, endDate string) (int64, error)
	UpsertCountry(code, name string) (*Country, error)
	// UpsertCampaign refreshes name/logo/type on conflict. Status is
	// forced back to active only when reactivate is set.
	UpsertCampaign(campaign *Campaign, reactivate bool) (*Campaign, error)
	// UpsertCoupon refreshes status and overwrites UsedCount on conflict.
	UpsertCoupon(coupon *Coupon) (*Coupon, error)
	CreatePurchase(purchase *Purchase) error
}

// SyncStore runs fn inside a transaction holding an advisory lock keyed
// on (networkID, userID), so two runs for the same account cannot race
// on the delete-then-insert step. The transaction is retried on
// serialization/deadlock failures before the error is surfaced.
type SyncStore interface {
	InSyncWindow(ctx context.Context, networkID, userID string, fn func(SyncTx) error) error
}
