package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/LavaJover/shvark-affiliate-service/internal/config"
	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
)

// Client ships purchase facts to the analytics warehouse.
type Client struct {
	conn driver.Conn
}

func NewClient(cfg config.ClickHouse) (*Client, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Client{conn: conn}, nil
}

func (c *Client) InsertPurchaseFacts(ctx context.Context, facts []domain.PurchaseFact) error {
	if len(facts) == 0 {
		return nil
	}

	batch, err := c.conn.PrepareBatch(ctx, `
		INSERT INTO fact_purchase (
			purchase_id, network_id, user_id, campaign_id, coupon_code,
			country_code, order_value, commission, revenue, quantity,
			status, order_date, ingested_at
		)`)
	if err != nil {
		return fmt.Errorf("prepare purchase fact batch: %w", err)
	}

	for _, f := range facts {
		if err := batch.Append(
			f.PurchaseID, f.NetworkID, f.UserID, f.CampaignID, f.CouponCode,
			f.CountryCode, f.OrderValue, f.Commission, f.Revenue, f.Quantity,
			f.Status, f.OrderDate, f.IngestedAt,
		); err != nil {
			return fmt.Errorf("append purchase fact: %w", err)
		}
	}

	return batch.Send()
}

func (c *Client) Close() error {
	return c.conn.Close()
}
