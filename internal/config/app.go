package config

type AppConfig struct {
	CurrencyCode        string `yaml:"currency" env:"TRACKER_CURRENCY"`
	DemoEmail           string `yaml:"demo-email" env:"TRACKER_DEMO_EMAIL"`
	DemoPassword        string `yaml:"demo-password" env:"TRACKER_DEMO_PASSWORD"`
	PeriodScopedBudgets bool   `yaml:"period-scoped-budgets" env:"TRACKER_PERIOD_SCOPED_BUDGETS"`
	RecentEntries       int    `yaml:"recent-entries"`
	AlertMinutes        int64  `yaml:"alert-interval-minutes" env:"TRACKER_ALERT_INTERVAL_MINUTES"`
}

func (s *AppConfig) BaseCurrency() string {
	return s.CurrencyCode
}

func (s *AppConfig) DemoCredentials() (email, password string) {
	return s.DemoEmail, s.DemoPassword
}

func (s *AppConfig) ScopeBudgetsToPeriod() bool {
	return s.PeriodScopedBudgets
}

func (s *AppConfig) RecentLimit() int {
	return s.RecentEntries
}

// AlertIntervalMinutes is how often budgets are checked for alerts, 0 disables it.
func (s *AppConfig) AlertIntervalMinutes() int64 {
	return s.AlertMinutes
}
