package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"io"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// NewConsoleMeterProvider serves for test/dev environment. The metrics are
// printed every interval and once more on Shutdown.
func NewConsoleMeterProvider(w io.Writer, interval, timeout time.Duration, opts ...stdoutmetric.Option) (*metric.MeterProvider, error) {
	opts = append([]stdoutmetric.Option{stdoutmetric.WithWriter(w)}, opts...)
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(interval),
		metric.WithTimeout(timeout),
	)))
	otel.SetMeterProvider(mp)
	return mp, nil
}

// NewPrometheusMeterProvider serves for the product environment, the stats
// metrics are fetched from the registry, by HTTP or by WritePrometheusText.
func NewPrometheusMeterProvider(registry *promclient.Registry) (*metric.MeterProvider, error) {
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(mp)
	return mp, nil
}

// WritePrometheusText dumps the registry in the text exposition format.
func WritePrometheusText(w io.Writer, registry *promclient.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
