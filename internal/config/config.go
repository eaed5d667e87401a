package config

import (
	"os"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile = "data/config.yaml"
	configEnvKey      = "TRACKER_CONFIG"
)

type config struct {
	App       AppConfig       `yaml:"app"`
	Storage   StorageConfig   `yaml:"storage"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Memcached MemcachedConfig `yaml:"memcached"`
	Sqlite    SqliteConfig    `yaml:"sqlite"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Jaeger    JaegerConfig    `yaml:"jaeger"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type Service struct {
	config config
}

// New reads the YAML config and then applies environment overrides.
// A missing default config file is not an error; defaults are used instead.
func New() (*Service, error) {
	// .env is optional
	_ = godotenv.Load()

	path, explicit := os.LookupEnv(configEnvKey)
	if !explicit {
		path = defaultConfigFile
	}

	s := &Service{config: defaults()}

	rawYAML, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err = yaml.Unmarshal(rawYAML, &s.config); err != nil {
			return nil, errors.Wrap(err, "parsing yaml")
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, errors.Wrap(err, "reading config file")
	}

	if err = env.Parse(&s.config); err != nil {
		return nil, errors.Wrap(err, "parsing env")
	}
	return s, nil
}

// FromYAML builds a Service from raw YAML on top of the defaults.
func FromYAML(raw []byte) (*Service, error) {
	s := &Service{config: defaults()}
	if err := yaml.Unmarshal(raw, &s.config); err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}
	return s, nil
}

func defaults() config {
	return config{
		App: AppConfig{
			CurrencyCode:  "LKR",
			DemoEmail:     "demo@example.com",
			DemoPassword:  "password123",
			RecentEntries: 3,
			AlertMinutes:  30,
		},
		Storage: StorageConfig{BackendName: BackendMemory},
		Sqlite:  SqliteConfig{File: "data/tracker.db"},
		Telegram: TelegramConfig{
			TimeoutSeconds: 5,
		},
		Jaeger:  JaegerConfig{ServiceName: "finance-tracker"},
		Metrics: MetricsConfig{Address: ":9090"},
	}
}

func (s *Service) App() *AppConfig {
	return &s.config.App
}

func (s *Service) Storage() *StorageConfig {
	return &s.config.Storage
}

func (s *Service) Telegram() *TelegramConfig {
	return &s.config.Telegram
}

func (s *Service) Postgres() *PostgresConfig {
	return &s.config.Postgres
}

func (s *Service) Memcached() *MemcachedConfig {
	return &s.config.Memcached
}

func (s *Service) Sqlite() *SqliteConfig {
	return &s.config.Sqlite
}

func (s *Service) Kafka() *KafkaConfig {
	return &s.config.Kafka
}

func (s *Service) Jaeger() *JaegerConfig {
	return &s.config.Jaeger
}

func (s *Service) Metrics() *MetricsConfig {
	return &s.config.Metrics
}
