package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/plantguard/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   address and port of the backend gRPC endpoint
//	-i int      online check interval, seconds
//	-t int      per-request timeout, seconds
//	-m int      largest accepted image, bytes
//	-k int      species and disease cache TTL, seconds
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-t", "-m", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.Int64Var(&cfg.MaxImageBytes, "m", cfg.MaxImageBytes, "max image size (in bytes)")
	cacheTTL := fs.Int("k", int(cfg.CatalogCacheTTL.Seconds()), "catalog cache TTL (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.CatalogCacheTTL = time.Duration(*cacheTTL) * time.Second
}
