package config

type MemcachedConfig struct {
	NodeHosts []string `yaml:"hosts" env:"TRACKER_MEMCACHED_HOSTS" envSeparator:","`
}

func (s *MemcachedConfig) Hosts() []string {
	return s.NodeHosts
}
