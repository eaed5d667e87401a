package config

type MetricsConfig struct {
	Address string `yaml:"address" env:"TRACKER_METRICS_ADDR"`
}

func (s *MetricsConfig) Addr() string {
	return s.Address
}
