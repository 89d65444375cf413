package observability

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"github.com/samber/lo"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	once sync.Once
)

// MeterName prefixes the meters of the application, an empty name
// falls back to default.
func MeterName(name string) string {
	builder := &strings.Builder{}
	builder.WriteString("xtree/app/")
	if len(strings.TrimSpace(name)) > 0 {
		builder.WriteString(name)
	} else {
		builder.WriteString("default")
	}
	return builder.String()
}

// InitAppStats registers the runtime gauges on the global meter provider,
// so it has to run after the provider has been set. Only the first call
// has an effect.
func InitAppStats(name string) {
	once.Do(func() {
		meter := otel.Meter(
			MeterName(name),
			metric.WithInstrumentationVersion(otelruntime.Version()),
		)
		lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
			"app.core.goroutines",
			metric.WithDescription(`The application goroutines' info.`),
			metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
				gNum := runtime.NumGoroutine()
				ob.Observe(int64(gNum))
				return nil
			}),
		))
		lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
			"app.core.processes",
			metric.WithDescription(`The application processes' info.`),
			metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
				procs := runtime.GOMAXPROCS(0)
				ob.Observe(int64(procs))
				return nil
			}),
		))
		lo.Must0(otelruntime.Start())
	})
}
