// Package metrics provides observability hooks for archive generation.
//
// The package follows the Null Object pattern: all components default to
// NoopRecorder so metrics collection needs no nil checks in call sites.
// A PrometheusRecorder can be injected instead when the CLI is started
// with a metrics listen address, which matters for long multi-set runs.
package metrics
