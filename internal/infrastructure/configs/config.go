package configs

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/JoshVilla/brgy-admin-sub001/internal/infrastructure/env"
)

type Config struct {
	HTTP   HTTPConfig   `koanf:"http"`
	Broker BrokerConfig `koanf:"broker"`
	Mongo  MongoConfig  `koanf:"mongo"`
}

type HTTPConfig struct {
	Host           string        `koanf:"host"`
	Port           uint16        `koanf:"port"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	AllowedHeaders []string      `koanf:"allowed_headers"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
}

// BrokerConfig covers both sides of the bridge: Host/Port is where the
// broker process listens, URL is where the API process dials it.
type BrokerConfig struct {
	Host string `koanf:"host"`
	Port uint16 `koanf:"port"`
	URL  string `koanf:"url"`
}

type MongoConfig struct {
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyDefaults(k)
	applyEnvOverrides(k)

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	setDefault(k, "http.host", "0.0.0.0")
	setDefault(k, "http.port", 8080)
	setDefault(k, "http.read_timeout", 10*time.Second)
	setDefault(k, "http.write_timeout", 30*time.Second)
	setDefault(k, "http.allowed_origins", []string{"*"})
	setDefault(k, "http.allowed_headers", []string{"Content-Type", "Authorization"})

	setDefault(k, "broker.host", "0.0.0.0")
	setDefault(k, "broker.port", 8081)
	setDefault(k, "broker.url", "ws://localhost:8081/ws")

	setDefault(k, "mongo.uri", "mongodb://localhost:27017")
	setDefault(k, "mongo.database", "brgy_admin")
}

func applyEnvOverrides(k *koanf.Koanf) {
	if host := env.GetString("HTTP_HOST", ""); host != "" {
		k.Set("http.host", host)
	}
	if port := env.GetInt("HTTP_PORT", 0); port > 0 {
		k.Set("http.port", port)
	}
	if readTimeout := env.GetInt("HTTP_READ_TIMEOUT_SECONDS", 0); readTimeout > 0 {
		k.Set("http.read_timeout", time.Duration(readTimeout)*time.Second)
	}
	if writeTimeout := env.GetInt("HTTP_WRITE_TIMEOUT_SECONDS", 0); writeTimeout > 0 {
		k.Set("http.write_timeout", time.Duration(writeTimeout)*time.Second)
	}

	if host := env.GetString("BROKER_HOST", ""); host != "" {
		k.Set("broker.host", host)
	}
	if port := env.GetInt("BROKER_PORT", 0); port > 0 {
		k.Set("broker.port", port)
	}
	if url := env.GetString("BROKER_URL", ""); url != "" {
		k.Set("broker.url", url)
	}

	if uri := env.GetString("MONGODB_URI", ""); uri != "" {
		k.Set("mongo.uri", uri)
	}
	if database := env.GetString("MONGODB_DATABASE", ""); database != "" {
		k.Set("mongo.database", database)
	}
}

// setDefault only sets the value if the key doesn't already exist
func setDefault(k *koanf.Koanf, key string, value interface{}) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}
