package tar

import "github.com/gobeaver/chainkit"

func init() {
	chainkit.RegisterBackendFactory("tar", func(cfg *chainkit.Config) (chainkit.Backend, error) {
		return New(), nil
	})
}
