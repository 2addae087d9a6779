// Package operations orchestrates the fleet analytics pipeline as an
// ordered sequence of stages: source acquisition, integration, scoring,
// aggregation, validation, and export. Each stage reads and writes the
// shared OperationState; the manager runs them in order, records
// per-stage outcomes, emits OpenTelemetry spans, and aborts on the
// first failure so no partial report set is left behind unannounced.
package operations
