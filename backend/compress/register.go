package compress

import "github.com/gobeaver/chainkit"

func init() {
	for _, algorithm := range []Algorithm{Gzip, Zstd, LZ4} {
		algorithm := algorithm
		chainkit.RegisterBackendFactory(string(algorithm), func(cfg *chainkit.Config) (chainkit.Backend, error) {
			return New(algorithm)
		})
	}
}
