package metrics

import "github.com/kilianp07/haulplan/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr is where /metrics is served when set, e.g. ":9090".
	PrometheusAddr string `json:"prometheus_addr"`
}
