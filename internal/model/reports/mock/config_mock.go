package mock

import (
	"sync/atomic"
	"time"

	"github.com/gojuno/minimock/v3"
)

// ConfigMock implements the config consumed by reports.Generator.
type ConfigMock struct {
	t minimock.Tester

	funcBaseCurrency         func() string
	afterBaseCurrencyCounter uint64
	BaseCurrencyMock         mConfigMockBaseCurrency
}

func NewConfigMock(t minimock.Tester) *ConfigMock {
	m := &ConfigMock{t: t}
	if controller, ok := t.(minimock.MockController); ok {
		controller.RegisterMocker(m)
	}

	m.BaseCurrencyMock = mConfigMockBaseCurrency{mock: m}
	return m
}

type mConfigMockBaseCurrency struct {
	mock *ConfigMock
}

// Return sets up the result of BaseCurrency.
func (mmBaseCurrency *mConfigMockBaseCurrency) Return(s string) *ConfigMock {
	mmBaseCurrency.mock.funcBaseCurrency = func() string {
		return s
	}
	return mmBaseCurrency.mock
}

func (mmBaseCurrency *ConfigMock) BaseCurrency() string {
	defer atomic.AddUint64(&mmBaseCurrency.afterBaseCurrencyCounter, 1)

	if mmBaseCurrency.funcBaseCurrency == nil {
		mmBaseCurrency.t.Fatalf("Unexpected call to ConfigMock.BaseCurrency.")
		return ""
	}
	return mmBaseCurrency.funcBaseCurrency()
}

// BaseCurrencyAfterCounter returns the count of finished BaseCurrency invocations.
func (mmBaseCurrency *ConfigMock) BaseCurrencyAfterCounter() uint64 {
	return atomic.LoadUint64(&mmBaseCurrency.afterBaseCurrencyCounter)
}

// MinimockFinish checks that every mocked method was called.
func (m *ConfigMock) MinimockFinish() {
	if m.funcBaseCurrency != nil && m.BaseCurrencyAfterCounter() == 0 {
		m.t.Error("Expected call to ConfigMock.BaseCurrency")
	}
}

// MinimockWait waits for all mocked methods to be called the expected number of times.
func (m *ConfigMock) MinimockWait(timeout time.Duration) {
	timeoutCh := time.After(timeout)
	for {
		if m.funcBaseCurrency == nil || m.BaseCurrencyAfterCounter() > 0 {
			return
		}
		select {
		case <-timeoutCh:
			m.MinimockFinish()
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}
