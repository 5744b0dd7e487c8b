package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type AffiliateConfig struct {
	Env           string `yaml:"env"`
	AffiliateDB   `yaml:"affiliate_db"`
	LogConfig     `yaml:"log_config"`
	KafkaService  `yaml:"kafka-service"`
	RabbitMQ      `yaml:"rabbitmq"`
	ClickHouse    `yaml:"clickhouse"`
	MetricsServer `yaml:"metrics_server"`
	Sync          SyncConfig       `yaml:"sync"`
	Networks      []NetworkAccount `yaml:"networks"`
}

type AffiliateDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"affiliate-sync-events"`
}

type RabbitMQ struct {
	URL           string `yaml:"url"`
	SyncJobQueue  string `yaml:"sync_job_queue" env-default:"affiliate.sync.jobs"`
	PrefetchCount int    `yaml:"prefetch_count" env-default:"10"`
}

type ClickHouse struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" env-default:"9000"`
	Database string `yaml:"database"`
	Username string `yaml:"username" env-default:"default"`
	Password string `yaml:"password"`
}

type MetricsServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type SyncConfig struct {
	ReactivateCampaigns bool `yaml:"reactivate_campaigns" env-default:"true"`
	StrictNormalization bool `yaml:"strict_normalization"`
	AuditRetentionDays  int  `yaml:"audit_retention_days" env-default:"90"`
	ResyncIntervalMin   int  `yaml:"resync_interval_min"`
	ResyncWindowDays    int  `yaml:"resync_window_days" env-default:"1"`
}

// NetworkAccount is one (network, user) pair the service syncs on a
// schedule, with the credentials to pull its reports.
type NetworkAccount struct {
	Network   string `yaml:"network"`
	NetworkID string `yaml:"network_id"`
	UserID    string `yaml:"user_id"`
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	DataType  string `yaml:"data_type" env-default:"coupon"`
}

func MustLoad() *AffiliateConfig {

	// Processing env config variable and file
	configPath := os.Getenv("AFFILIATE_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("AFFILIATE_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg AffiliateConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
