package local

import "github.com/gobeaver/chainkit"

func init() {
	factory := func(cfg *chainkit.Config) (chainkit.Backend, error) {
		return New(cfg.LocalBasePath)
	}
	chainkit.RegisterBackendFactory("local", factory)
	chainkit.RegisterBackendFactory("file", factory)
}
