package config

type SqliteConfig struct {
	File string `yaml:"file" env:"TRACKER_SQLITE_FILE"`
}

func (s *SqliteConfig) Path() string {
	return s.File
}
