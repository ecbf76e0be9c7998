package zip

import "github.com/gobeaver/chainkit"

func init() {
	chainkit.RegisterBackendFactory("zip", func(cfg *chainkit.Config) (chainkit.Backend, error) {
		return New(), nil
	})
}
