package httpfs

import (
	"net/http"
	"time"

	"github.com/gobeaver/chainkit"
)

func init() {
	for _, scheme := range []string{"http", "https"} {
		scheme := scheme
		chainkit.RegisterBackendFactory(scheme, func(cfg *chainkit.Config) (chainkit.Backend, error) {
			client := &http.Client{
				Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
			}
			return New(scheme, WithClient(client), WithUserAgent(cfg.HTTPUserAgent)), nil
		})
	}
}
