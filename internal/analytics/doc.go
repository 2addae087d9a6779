// Package analytics derives the bounded performance and risk scores from
// the integrated fact table and aggregates them per vessel.
//
// # Components
//
//   - deriver.go: per-record scoring (seven derived fields with fixed
//     weights, explicit defaults, and clamped ranges)
//   - scaling.go: percentile and clamping helpers
//   - aggregate.go: per-vessel reduction and the composite risk score
//
// Scoring is a two-pass operation: the fuel efficiency score normalizes
// against the 95th percentile of all positive NM-per-liter values, so the
// full fact table must be scanned before any row can be scored. All
// formulas are total functions; missing inputs take their documented
// defaults and nothing here returns an error.
package analytics
