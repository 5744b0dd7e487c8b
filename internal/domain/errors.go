package domain

import "errors"

var (
	ErrMissingCampaignID = errors.New("record has no campaign id")
	ErrUnknownDataType   = errors.New("unknown sync data type")
	ErrFetcherNotFound   = errors.New("no fetcher configured for network")
	ErrWindowDelete      = errors.New("failed to clear purchase window")
)
