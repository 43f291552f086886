package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "3MB"
	defaultTokenTTL           = 24 * time.Hour
	defaultLookupTimeout      = 5 * time.Second
	defaultArgon2Time         = 1
	defaultArgon2MemoryKiB    = 64 * 1024
	defaultArgon2Threads      = 4
	defaultRateLimitWindow    = 15 * time.Minute
	defaultRateLimitMax       = 100
	defaultMaxImageBytes      = 2 * 1024 * 1024
	defaultPublicPrefix       = "/uploads"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int      `json:"port" yaml:"port"`
		MaxRequestBodySize string   `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		AllowOrigins       []string `json:"allowOrigins" yaml:"allowOrigins"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Database DatabaseConfig `json:"database" yaml:"database"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth AuthConfig `json:"auth" yaml:"auth"`

	RateLimit RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	Storage StorageConfig `json:"storage" yaml:"storage"`
}

// DatabaseConfig controls schema management.
type DatabaseConfig struct {
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	// Lifetime of an issued session token.
	TokenTTL time.Duration `json:"tokenTTL" yaml:"tokenTTL"`

	// Upper bound for the user lookup performed by the session gate.
	LookupTimeout time.Duration `json:"lookupTimeout" yaml:"lookupTimeout"`

	// Number of concurrent password hash/verify operations.
	HashWorkers int `json:"hashWorkers" yaml:"hashWorkers"`

	Argon2 Argon2Config `json:"argon2" yaml:"argon2"`
}

// Argon2Config holds argon2id work factors.
type Argon2Config struct {
	Time      uint32 `json:"time" yaml:"time"`
	MemoryKiB uint32 `json:"memoryKiB" yaml:"memoryKiB"`
	Threads   uint8  `json:"threads" yaml:"threads"`
}

// RateLimitConfig defines the fixed-window limiter in front of the auth routes.
type RateLimitConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	Window  time.Duration `json:"window" yaml:"window"`
	Max     int           `json:"max" yaml:"max"`
	Redis   RedisConfig   `json:"redis" yaml:"redis"`
}

// RedisConfig locates the shared limiter store. An empty Addr selects the in-process store.
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// StorageConfig defines where profile images are kept.
type StorageConfig struct {
	// gocloud.dev bucket URL, e.g. file:///var/lib/identity/uploads or s3://bucket?region=...
	BucketURL     string `json:"bucketURL" yaml:"bucketURL"`
	MaxImageBytes int64  `json:"maxImageBytes" yaml:"maxImageBytes"`
	PublicPrefix  string `json:"publicPrefix" yaml:"publicPrefix"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Environment variables override file values.
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// SECRETKEY_ACCESS -> secretKey.access
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads the service configuration and requires a signing secret.
func New() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.SecretKey.Access) == "" {
		return nil, errors.New("secretKey.access must be provided")
	}

	return cfg, nil
}

// Load reads config.yaml with environment overrides and applies defaults.
func Load() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if len(cfg.HTTP.AllowOrigins) == 0 {
		cfg.HTTP.AllowOrigins = []string{"*"}
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = defaultTokenTTL
	}
	if cfg.Auth.LookupTimeout <= 0 {
		cfg.Auth.LookupTimeout = defaultLookupTimeout
	}
	if cfg.Auth.HashWorkers <= 0 {
		cfg.Auth.HashWorkers = runtime.NumCPU()
	}
	if cfg.Auth.Argon2.Time == 0 {
		cfg.Auth.Argon2.Time = defaultArgon2Time
	}
	if cfg.Auth.Argon2.MemoryKiB == 0 {
		cfg.Auth.Argon2.MemoryKiB = defaultArgon2MemoryKiB
	}
	if cfg.Auth.Argon2.Threads == 0 {
		cfg.Auth.Argon2.Threads = defaultArgon2Threads
	}
	if cfg.RateLimit.Window <= 0 {
		cfg.RateLimit.Window = defaultRateLimitWindow
	}
	if cfg.RateLimit.Max <= 0 {
		cfg.RateLimit.Max = defaultRateLimitMax
	}
	if cfg.Storage.MaxImageBytes <= 0 {
		cfg.Storage.MaxImageBytes = defaultMaxImageBytes
	}
	if cfg.Storage.PublicPrefix == "" {
		cfg.Storage.PublicPrefix = defaultPublicPrefix
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
