package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
)

// DigizagClient pulls conversion reports from the digizag (HasOffers)
// API. Rows come back nested under Stat/Offer, which is exactly what
// the digizag normalizer expects.
type DigizagClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

type digizagReportResponse struct {
	Response struct {
		Data []domain.RawRecord `json:"data"`
	} `json:"response"`
}

func (c *DigizagClient) FetchReport(ctx context.Context, startDate, endDate string) ([]domain.RawRecord, error) {
	reqURL := fmt.Sprintf("%s/v3/Report.json?api_key=%s&start_date=%s&end_date=%s",
		c.BaseURL, url.QueryEscape(c.APIKey), url.QueryEscape(startDate), url.QueryEscape(endDate))

	var resp digizagReportResponse
	if err := doGetJSON(ctx, c.HTTP, reqURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("digizag report: %w", err)
	}

	return resp.Response.Data, nil
}
