package memory

import "github.com/gobeaver/chainkit"

func init() {
	chainkit.RegisterBackendFactory("memory", func(cfg *chainkit.Config) (chainkit.Backend, error) {
		return New(Config{MaxSize: cfg.MemoryMaxSize}), nil
	})
}
