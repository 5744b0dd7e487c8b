package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-affiliate-service/internal/config"
	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
)

// Fetcher pulls one report window from a network API. Records come back
// raw: normalization happens in the sync usecase.
type Fetcher interface {
	FetchReport(ctx context.Context, startDate, endDate string) ([]domain.RawRecord, error)
}

var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

// ForAccount builds the fetcher for one configured network account.
func ForAccount(account config.NetworkAccount) (Fetcher, error) {
	network, ok := domain.ParseNetwork(account.Network)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrFetcherNotFound, account.Network)
	}

	switch network {
	case domain.NetworkBoostiny:
		return &BoostinyClient{BaseURL: account.BaseURL, APIKey: account.APIKey, HTTP: defaultHTTPClient}, nil
	case domain.NetworkDigizag:
		return &DigizagClient{BaseURL: account.BaseURL, APIKey: account.APIKey, HTTP: defaultHTTPClient}, nil
	case domain.NetworkPlatformance:
		return &PlatformanceClient{BaseURL: account.BaseURL, APIKey: account.APIKey, HTTP: defaultHTTPClient}, nil
	case domain.NetworkOptimiseMedia:
		return &OptimiseMediaClient{BaseURL: account.BaseURL, APIKey: account.APIKey, HTTP: defaultHTTPClient}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrFetcherNotFound, account.Network)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func doGetJSON(ctx context.Context, httpClient *http.Client, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	response, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return json.Unmarshal(responseBodyBytes, out)
	}

	var errResp errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResp); err == nil {
		if errResp.Error != "" {
			return errors.New(errResp.Error)
		}
		if errResp.Message != "" {
			return errors.New(errResp.Message)
		}
	}
	return fmt.Errorf("unexpected status %d", response.StatusCode)
}
