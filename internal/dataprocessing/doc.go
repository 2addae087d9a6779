// Package dataprocessing loads the five fleet source tables and merges
// them into the integrated fact table.
//
// The merge keeps navigation as the timeline driver: every deduplicated
// (vessel, timestamp) navigation row becomes exactly one fact row, with
// environment attached by truncated hour (backward-filled across gaps),
// fuel and maintenance attached by (vessel, calendar date), and the
// static vessel specification attached by vessel. Joins are implemented
// as first-match lookups, so one-to-many matches can never fan the fact
// table out.
package dataprocessing
