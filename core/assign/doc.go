// Package assign fills unassigned schedule entries with trucks from the
// driver directory.
//
// The engine is a greedy matcher. Truck types are processed independently
// in the order they first appear in the schedule, and within a truck type
// entries are filled in list order from a pool ranked by priority tier.
// Each truck is used at most once per run. Earlier truck types can consume
// trucks a later type would have needed; no global optimum is sought.
package assign
