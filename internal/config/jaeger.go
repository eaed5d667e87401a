package config

type JaegerConfig struct {
	IsEnabled   bool   `yaml:"enabled" env:"TRACKER_JAEGER_ENABLED"`
	ServiceName string `yaml:"service-name"`
}

func (s *JaegerConfig) Enabled() bool {
	return s.IsEnabled
}

func (s *JaegerConfig) Service() string {
	return s.ServiceName
}
