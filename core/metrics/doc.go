// Package metrics defines the sinks that record planning activity. Sinks
// like the Prometheus and InfluxDB ones in infra/metrics record ingestion
// and assignment runs and can be combined with NewMultiSink. NewSink returns
// a MultiSink automatically when several sinks are configured.
package metrics
