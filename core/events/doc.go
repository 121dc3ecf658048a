// Package events defines the planning events emitted on the event bus.
//
// Available event types:
//   - IngestEvent: a row source was normalized into a schedule
//   - RunEvent: a planning run finished, carrying every AssignmentEvent
//     of the run
package events
