package domain

// SyncInput carries one ingestion run: a batch of raw network records
// plus the scope they belong to. StartDate/EndDate are Y-m-d strings
// bounding the replace window.
type SyncInput struct {
	NetworkID string
	UserID    string
	StartDate string
	EndDate   string
	Network   Network
	Records   []RawRecord
}

// ProcessedCounts aggregates how many entities a run touched.
type ProcessedCounts struct {
	Campaigns int `json:"campaigns"`
	Coupons   int `json:"coupons"`
	Purchases int `json:"purchases"`
}

// RecordError describes one failed input record, keyed by the
// best-effort campaign name so operators can find the offending row.
type RecordError struct {
	Campaign string `json:"campaign"`
	Error    string `json:"error"`
}

// SyncResult is the outcome of one run. Success=false is reserved for
// transaction/infrastructure failures: per-record errors appear in
// Errors while Success stays true. On failure Processed is zeroed
// (the transaction rolled those writes back) and the pre-rollback
// accumulator is preserved in Attempted.
type SyncResult struct {
	RunID       string          `json:"run_id"`
	Success     bool            `json:"success"`
	Message     string          `json:"message,omitempty"`
	Processed   ProcessedCounts `json:"processed"`
	Attempted   ProcessedCounts `json:"attempted,omitempty"`
	Errors      []RecordError   `json:"errors,omitempty"`
	Diagnostics []RecordError   `json:"diagnostics,omitempty"`
}

// SyncEvent is published after every finished run.
type SyncEvent struct {
	RunID     string          `json:"run_id"`
	NetworkID string          `json:"network_id"`
	UserID    string          `json:"user_id"`
	Network   string          `json:"network"`
	DataType  string          `json:"data_type"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Success   bool            `json:"success"`
	Processed ProcessedCounts `json:"processed"`
	Errors    int             `json:"errors"`
}
