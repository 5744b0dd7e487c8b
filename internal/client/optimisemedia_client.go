package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
)

type OptimiseMediaClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

type optimiseMediaReportResponse struct {
	Conversions []domain.RawRecord `json:"conversions"`
}

func (c *OptimiseMediaClient) FetchReport(ctx context.Context, startDate, endDate string) ([]domain.RawRecord, error) {
	reqURL := fmt.Sprintf("%s/v2/reporting/conversions.json?startDate=%s&endDate=%s",
		c.BaseURL, url.QueryEscape(startDate), url.QueryEscape(endDate))

	var resp optimiseMediaReportResponse
	headers := map[string]string{"X-Api-Key": c.APIKey}
	if err := doGetJSON(ctx, c.HTTP, reqURL, headers, &resp); err != nil {
		return nil, fmt.Errorf("optimisemedia report: %w", err)
	}

	return resp.Conversions, nil
}
