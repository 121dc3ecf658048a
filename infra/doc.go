// Package infra contains the adapters behind the core interfaces: row
// readers, directory and history stores, metrics sinks, the MQTT notifier,
// logging and error monitoring. These packages depend on core, never the
// reverse.
package infra
