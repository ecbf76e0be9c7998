package chainkit

import (
	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Schemes to construct when building a registry from config (comma-separated).
	// Each scheme needs a registered backend factory; import the backend
	// package for its side effect to register one. Empty means DefaultSchemes.
	Schemes string `env:"CHAINKIT_SCHEMES"`

	// Local backend configuration
	LocalBasePath string `env:"CHAINKIT_LOCAL_BASE_PATH,default:."`

	// Memory backend configuration
	MemoryMaxSize int64 `env:"CHAINKIT_MEMORY_MAX_SIZE"` // 0 = unlimited

	// S3 backend configuration
	S3Region          string `env:"CHAINKIT_S3_REGION,default:us-east-1"`
	S3Bucket          string `env:"CHAINKIT_S3_BUCKET"`
	S3Prefix          string `env:"CHAINKIT_S3_PREFIX"`
	S3Endpoint        string `env:"CHAINKIT_S3_ENDPOINT"`
	S3AccessKeyID     string `env:"CHAINKIT_S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"CHAINKIT_S3_SECRET_ACCESS_KEY"`
	S3ForcePathStyle  bool   `env:"CHAINKIT_S3_FORCE_PATH_STYLE,default:false"`

	// HTTP backend configuration
	HTTPTimeoutSeconds int    `env:"CHAINKIT_HTTP_TIMEOUT_SECONDS,default:30"`
	HTTPUserAgent      string `env:"CHAINKIT_HTTP_USER_AGENT"`
}

// DefaultSchemes is the scheme list used when CHAINKIT_SCHEMES is unset.
const DefaultSchemes = "local,zip,tar,gzip,zstd,lz4"

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	if cfg.Schemes == "" {
		cfg.Schemes = DefaultSchemes
	}
	return cfg, nil
}
