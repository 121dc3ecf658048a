package metrics

import (
	"context"

	"github.com/kilianp07/haulplan/core/events"
	coremetrics "github.com/kilianp07/haulplan/core/metrics"
	"github.com/kilianp07/haulplan/infra/logger"
	"github.com/kilianp07/haulplan/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// ingest and run events. It stops when the context is canceled or the bus
// is closed.
func StartEventCollector(ctx context.Context, bus *eventbus.Bus[events.Event], sink coremetrics.Sink) {
	if bus == nil || sink == nil {
		return
	}
	log := logger.New("metrics-collector")
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		eventbus.Consume(ctx, sub, func(ev events.Event) {
			if err := Record(sink, ev); err != nil {
				log.Warnf("record %s event: %v", ev.Kind(), err)
			}
		})
	}()
}

// Record converts a bus event into a sink call. Events the sink cannot
// record are ignored.
func Record(sink coremetrics.Sink, ev events.Event) error {
	switch e := ev.(type) {
	case events.IngestEvent:
		return sink.RecordIngest(coremetrics.IngestEvent{
			RunID:      e.RunID,
			Source:     e.Source,
			Rows:       e.Rows,
			Entries:    e.Entries,
			Defaulted:  e.Defaulted,
			TruckTypes: e.TruckTypes,
			Time:       e.Time,
		})
	case events.RunEvent:
		rec, ok := sink.(coremetrics.AssignmentRecorder)
		if !ok {
			return nil
		}
		byType := make(map[string]coremetrics.TypeOutcome, len(e.ByType))
		for tt, c := range e.ByType {
			byType[tt] = coremetrics.TypeOutcome{Assigned: c.Assigned, Unassigned: c.Unassigned}
		}
		return rec.RecordAssignment(coremetrics.AssignmentEvent{
			RunID:      e.RunID,
			Assigned:   e.Assigned,
			Unassigned: e.Unassigned,
			ByType:     byType,
			Time:       e.Time,
		})
	}
	return nil
}
