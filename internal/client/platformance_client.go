package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
)

type PlatformanceClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

type platformanceReportResponse struct {
	Records []domain.RawRecord `json:"records"`
}

func (c *PlatformanceClient) FetchReport(ctx context.Context, startDate, endDate string) ([]domain.RawRecord, error) {
	reqURL := fmt.Sprintf("%s/api/v2/conversions?from=%s&to=%s",
		c.BaseURL, url.QueryEscape(startDate), url.QueryEscape(endDate))

	var resp platformanceReportResponse
	headers := map[string]string{"Authorization": "Bearer " + c.APIKey}
	if err := doGetJSON(ctx, c.HTTP, reqURL, headers, &resp); err != nil {
		return nil, fmt.Errorf("platformance report: %w", err)
	}

	return resp.Records, nil
}
