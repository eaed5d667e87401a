package config

type TelegramConfig struct {
	ApiToken       string `yaml:"token" env:"TRACKER_TELEGRAM_TOKEN"`
	TimeoutSeconds int    `yaml:"timeout-seconds"`
}

func (t *TelegramConfig) Token() string {
	return t.ApiToken
}

func (t *TelegramConfig) Timeout() int {
	return t.TimeoutSeconds
}
