package domain

import "context"

// AnalyticsSink receives purchase facts after a successful coupon sync.
// Delivery is best effort: a sink failure never fails the sync.
type AnalyticsSink interface {
	InsertPurchaseFacts(ctx context.Context, facts []PurchaseFact) error
}
