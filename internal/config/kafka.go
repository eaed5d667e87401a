package config

type KafkaConfig struct {
	BrokerList []string `yaml:"brokers" env:"TRACKER_KAFKA_BROKERS" envSeparator:","`
	EventTopic string   `yaml:"changes-topic"`
}

func (s *KafkaConfig) Brokers() []string {
	return s.BrokerList
}

func (s *KafkaConfig) ChangesTopic() string {
	if s.EventTopic == "" {
		return "tracker-changes"
	}
	return s.EventTopic
}

func (s *KafkaConfig) Enabled() bool {
	return len(s.BrokerList) > 0
}
