package config

type PostgresConfig struct {
	Hostname string `yaml:"host" env:"TRACKER_POSTGRES_HOST"`
	Db       string `yaml:"db" env:"TRACKER_POSTGRES_DB"`
	User     string `yaml:"username" env:"TRACKER_POSTGRES_USER"`
	Pswd     string `yaml:"password" env:"TRACKER_POSTGRES_PASSWORD"`
}

func (s *PostgresConfig) Host() string {
	return s.Hostname
}

func (s *PostgresConfig) Database() string {
	return s.Db
}

func (s *PostgresConfig) Username() string {
	return s.User
}

func (s *PostgresConfig) Password() string {
	return s.Pswd
}
