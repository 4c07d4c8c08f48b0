package config

import (
	"time"

	"github.com/dmitrijs2005/plantguard/internal/flagx"
	"github.com/dmitrijs2005/plantguard/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations accept "90s" or
// integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	MetricsAddr                  string         `json:"metrics_addr"`
	LoggerBackend                string         `json:"logger_backend"`
	CatalogCacheTTL              timex.Duration `json:"catalog_cache_ttl"`
	TokenCleanupInterval         timex.Duration `json:"token_cleanup_interval"`
}

// parseJson overlays values from the file named by -c/-config. Keys missing
// from the file keep their current value. An unreadable or malformed file
// panics.
func parseJson(config *Config) {
	c := &JsonConfig{}
	if !flagx.LoadJSONConfig(c) {
		return
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	setDuration(&config.RefreshTokenValidityDuration, c.RefreshTokenValidityDuration)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.LoggerBackend, c.LoggerBackend)
	setDuration(&config.CatalogCacheTTL, c.CatalogCacheTTL)
	setDuration(&config.TokenCleanupInterval, c.TokenCleanupInterval)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
