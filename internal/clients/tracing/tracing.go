package tracing

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"
)

type config interface {
	Enabled() bool
	Service() string
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// Init installs the global tracer. With tracing disabled the opentracing
// no-op tracer stays in place and spans cost nothing.
func Init(cfg config) (io.Closer, error) {
	if !cfg.Enabled() {
		opentracing.SetGlobalTracer(opentracing.NoopTracer{})
		return noopCloser{}, nil
	}

	jcfg := jaegercfg.Configuration{
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
	}
	closer, err := jcfg.InitGlobalTracer(cfg.Service())
	if err != nil {
		return nil, errors.Wrap(err, "init jaeger tracer")
	}
	logger.Info("tracing enabled", zap.String("service", cfg.Service()))
	return closer, nil
}
