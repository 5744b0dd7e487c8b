package domain

// SyncEventPublisher fans finished-run events out to the message bus.
type SyncEventPublisher interface {
	PublishSyncCompleted(event SyncEvent) error
}
