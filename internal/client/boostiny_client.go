package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
)

// BoostinyClient pulls paginated campaign reports from the boostiny
// publisher API.
type BoostinyClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

type boostinyReportResponse struct {
	Data struct {
		Payload    []domain.RawRecord `json:"payload"`
		Pagination struct {
			CurrentPage int `json:"current_page"`
			LastPage    int `json:"last_page"`
		} `json:"pagination"`
	} `json:"data"`
}

func (c *BoostinyClient) FetchReport(ctx context.Context, startDate, endDate string) ([]domain.RawRecord, error) {
	var all []domain.RawRecord

	for page := 1; ; page++ {
		reqURL := fmt.Sprintf("%s/publisher/campaign-data?from=%s&to=%s&page=%d",
			c.BaseURL, url.QueryEscape(startDate), url.QueryEscape(endDate), page)

		var resp boostinyReportResponse
		if err := doGetJSON(ctx, c.HTTP, reqURL, map[string]string{"api-key": c.APIKey}, &resp); err != nil {
			return nil, fmt.Errorf("boostiny page %d: %w", page, err)
		}

		all = append(all, resp.Data.Payload...)
		if resp.Data.Pagination.CurrentPage >= resp.Data.Pagination.LastPage {
			break
		}
	}

	return all, nil
}
