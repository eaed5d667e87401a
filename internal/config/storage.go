package config

const (
	BackendMemory    = "memory"
	BackendSqlite    = "sqlite"
	BackendPostgres  = "postgres"
	BackendMemcached = "memcached"
)

type StorageConfig struct {
	BackendName string `yaml:"backend" env:"TRACKER_STORAGE_BACKEND"`
	QuotaBytes  int    `yaml:"quota-bytes"`
}

func (s *StorageConfig) Backend() string {
	return s.BackendName
}

func (s *StorageConfig) Quota() int {
	return s.QuotaBytes
}
