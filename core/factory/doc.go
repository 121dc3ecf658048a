// Package factory provides a small generic registry used to select pluggable
// implementations (row decoders, directory stores, history stores, metrics
// sinks) by type name from configuration.
package factory
