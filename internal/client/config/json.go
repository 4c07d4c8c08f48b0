package config

import (
	"time"

	"github.com/dmitrijs2005/plantguard/internal/flagx"
	"github.com/dmitrijs2005/plantguard/internal/timex"
)

// JsonConfig mirrors Config for JSON files.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	MaxImageBytes       int64          `json:"max_image_bytes"`
	CatalogCacheTTL     timex.Duration `json:"catalog_cache_ttl"`
}

// parseJson overlays values from the file named by -c/-config. Keys missing
// from the file keep their current value. An unreadable or malformed file
// panics.
func parseJson(cfg *Config) {
	jc := &JsonConfig{}
	if !flagx.LoadJSONConfig(jc) {
		return
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	if jc.MaxImageBytes > 0 {
		cfg.MaxImageBytes = jc.MaxImageBytes
	}
	setDuration(&cfg.CatalogCacheTTL, jc.CatalogCacheTTL)
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
