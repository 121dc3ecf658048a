package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/haulplan/config"
	"github.com/kilianp07/haulplan/core/assign"
	"github.com/kilianp07/haulplan/core/events"
	"github.com/kilianp07/haulplan/core/fleet"
	corehistory "github.com/kilianp07/haulplan/core/history"
	"github.com/kilianp07/haulplan/core/ingest"
	coremetrics "github.com/kilianp07/haulplan/core/metrics"
	"github.com/kilianp07/haulplan/core/model"
	coremon "github.com/kilianp07/haulplan/core/monitoring"
	"github.com/kilianp07/haulplan/core/notify"
	"github.com/kilianp07/haulplan/core/pit"
	"github.com/kilianp07/haulplan/core/report"
	"github.com/kilianp07/haulplan/core/source"
	"github.com/kilianp07/haulplan/infra/directory"
	infrahistory "github.com/kilianp07/haulplan/infra/history"
	"github.com/kilianp07/haulplan/infra/logger"
	"github.com/kilianp07/haulplan/infra/metrics"
	"github.com/kilianp07/haulplan/infra/mqtt"
	_ "github.com/kilianp07/haulplan/infra/source" // row readers
	"github.com/kilianp07/haulplan/internal/eventbus"
)

// ErrNoInput is returned by Plan when the request carries no rows.
var ErrNoInput = errors.New("plan: no input")

// PlanRequest describes one schedule to ingest.
type PlanRequest struct {
	// Source names the input, typically a file name. It is recorded in the
	// history and used to guess Format.
	Source string
	// Format selects the row reader. Empty means guess from Source.
	Format string
	Reader io.Reader
	// Assign runs the engine against the driver directory after ingestion.
	Assign bool
}

// PlanResult is the outcome of Plan.
type PlanResult struct {
	RunID    string              `json:"runId"`
	Schedule *model.ScheduleData `json:"schedule"`
	Stats    ingest.Stats        `json:"stats"`
	Result   *assign.Result      `json:"result,omitempty"`
	Summary  report.Summary      `json:"summary"`
}

// Service wires ingestion, assignment and their side effects.
type Service struct {
	cfg       *config.Config
	directory fleet.DirectoryStore
	pipeline  *ingest.Pipeline
	engine    *assign.Engine
	sink      coremetrics.Sink
	history   corehistory.Store
	notifier  notify.Notifier
	bus       *eventbus.Bus[events.Event]
	log       logger.Logger
	now       func() time.Time
	closeOnce sync.Once
}

// Option overrides a collaborator built from the configuration.
type Option func(*Service)

// WithDirectory sets the driver directory store.
func WithDirectory(st fleet.DirectoryStore) Option {
	return func(s *Service) { s.directory = st }
}

// WithHistory sets the run history store.
func WithHistory(st corehistory.Store) Option {
	return func(s *Service) { s.history = st }
}

// WithSink sets the metrics sink.
func WithSink(sink coremetrics.Sink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithNotifier sets the assignment notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// New creates a Service from the configuration. Collaborators not supplied
// through opts are built from cfg.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logg := logger.New("service")
	classifier := fleet.NewClassifier(cfg.Fleet.Classifier())
	svc := &Service{
		cfg:      cfg,
		pipeline: ingest.New(cfg.Ingest, pit.NewResolver(cfg.Pits), classifier, logger.New("ingest")),
		engine:   assign.NewEngine(classifier, logger.New("assign")),
		bus:      eventbus.New[events.Event](0),
		log:      logg,
		now:      time.Now,
	}
	for _, o := range opts {
		o(svc)
	}

	var err error
	if svc.directory == nil {
		if svc.directory, err = directory.New(cfg.Directory); err != nil {
			return nil, fmt.Errorf("directory store: %w", err)
		}
	}
	if svc.history == nil {
		if svc.history, err = infrahistory.New(cfg.History); err != nil {
			return nil, fmt.Errorf("history store: %w", err)
		}
	}
	if svc.sink == nil {
		if svc.sink, err = coremetrics.NewSink(cfg.Metrics.Sinks); err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
	}
	if svc.notifier == nil {
		svc.notifier = notify.Nop{}
		if cfg.Notify.Enabled() {
			n, err := mqtt.NewNotifier(cfg.Notify)
			if err != nil {
				return nil, fmt.Errorf("mqtt notifier: %w", err)
			}
			svc.notifier = n
		}
	}
	return svc, nil
}

// Directory returns the configured driver directory store.
func (s *Service) Directory() fleet.DirectoryStore { return s.directory }

// History returns the run history store.
func (s *Service) History() corehistory.Store { return s.history }

// Events returns the bus carrying ingest, assignment and run events.
func (s *Service) Events() *eventbus.Bus[events.Event] { return s.bus }

// LoadDirectory reads the driver directory and indexes it.
func (s *Service) LoadDirectory(ctx context.Context) (*fleet.Directory, error) {
	entries, err := s.directory.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}
	return fleet.NewDirectory(entries, s.cfg.Fleet.SlingerBases...), nil
}

// Plan ingests the request's rows and, when asked, assigns trucks. Metrics,
// history and notifications are side effects: their failures are logged and
// reported to the monitor but do not fail the plan.
func (s *Service) Plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	if req.Reader == nil {
		return nil, ErrNoInput
	}
	format := req.Format
	if format == "" {
		format = source.FormatFromPath(req.Source)
	}
	src, err := source.FromReader(format, req.Reader)
	if err != nil {
		return nil, err
	}
	data, stats, err := s.pipeline.IngestFrom(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", req.Source, err)
	}

	res := &PlanResult{RunID: uuid.NewString(), Schedule: data, Stats: stats}
	dropped := s.bus.Dropped()
	defer s.reportDropped(res.RunID, dropped)
	s.publishIngest(res, req.Source)

	if req.Assign {
		dir, err := s.LoadDirectory(ctx)
		if err != nil {
			return nil, err
		}
		out, err := s.engine.Assign(data, dir)
		if err != nil {
			return nil, err
		}
		res.Result = &out
		s.publishAssignments(res, req.Source)
		s.recordRun(ctx, res, req.Source)
	}
	res.Summary = report.Summarize(data)
	return res, nil
}

func (s *Service) publishIngest(res *PlanResult, src string) {
	types := make(map[string]int)
	for _, tt := range res.Schedule.TruckTypes() {
		types[tt] = len(res.Schedule.Indices(tt))
	}
	s.bus.Publish(events.IngestEvent{
		RunID:      res.RunID,
		Source:     src,
		Rows:       res.Stats.Rows,
		Entries:    res.Stats.Entries,
		Defaulted:  res.Stats.Defaulted,
		TruckTypes: types,
		Time:       s.now(),
	})
}

func (s *Service) publishAssignments(res *PlanResult, src string) {
	pos := make(map[string]int, res.Schedule.Len())
	for i, e := range res.Schedule.Entries() {
		pos[e.ID] = i
	}
	placements := make([]events.AssignmentEvent, 0, len(res.Result.Assignments))
	for _, a := range res.Result.Assignments {
		ev := events.AssignmentEvent{RunID: res.RunID, Assignment: a}
		if i, ok := pos[a.EntryID]; ok {
			ev.Entry = res.Schedule.At(i)
		}
		placements = append(placements, ev)
	}
	byType := make(map[string]events.TypeCount, len(res.Result.ByType))
	for tt, r := range res.Result.ByType {
		byType[tt] = events.TypeCount{Assigned: r.Assigned, Unassigned: r.Unassigned}
	}
	s.bus.Publish(events.RunEvent{
		RunID:      res.RunID,
		Source:     src,
		Time:       s.now(),
		Assigned:   res.Result.Assigned,
		Unassigned: res.Result.Unassigned,
		ByType:     byType,
		Placements: placements,
	})
}

// reportDropped logs and captures events the bus could not deliver since
// the given Dropped reading. A dropped run event means lost notices.
func (s *Service) reportDropped(runID string, before uint64) {
	lost := s.bus.Dropped() - before
	if lost == 0 {
		return
	}
	err := fmt.Errorf("event bus dropped %d events during run %s", lost, runID)
	s.log.Errorf("%v", err)
	coremon.CaptureException(err, map[string]string{"module": "eventbus", "run_id": runID})
}

func (s *Service) recordRun(ctx context.Context, res *PlanResult, src string) {
	byType := make(map[string]corehistory.TypeCount, len(res.Result.ByType))
	for tt, r := range res.Result.ByType {
		byType[tt] = corehistory.TypeCount{Assigned: r.Assigned, Unassigned: r.Unassigned}
	}
	rec := corehistory.RunRecord{
		ID:          res.RunID,
		Timestamp:   s.now().UTC(),
		Source:      src,
		Entries:     res.Schedule.Len(),
		Assigned:    res.Result.Assigned,
		Unassigned:  res.Result.Unassigned,
		ByType:      byType,
		Assignments: res.Result.Assignments,
	}
	if err := s.history.Append(ctx, rec); err != nil {
		s.log.Errorf("history append: %v", err)
		coremon.CaptureException(err, map[string]string{"module": "history", "run_id": res.RunID})
	}
}

// Start subscribes the metrics collector and the notification forwarder to
// the event bus and returns a channel closed once both have stopped. It
// serves /metrics when a Prometheus address is configured.
func (s *Service) Start(ctx context.Context) <-chan struct{} {
	metrics.StartEventCollector(ctx, s.bus, s.sink)

	sub := s.bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer s.bus.Unsubscribe(sub)
		eventbus.Consume(ctx, sub, func(ev events.Event) {
			run, ok := ev.(events.RunEvent)
			if !ok {
				return
			}
			for _, a := range run.Placements {
				if ctx.Err() != nil {
					return
				}
				s.notify(ctx, a)
			}
		})
	}()

	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr, nil); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	return done
}

// Run starts the background workers and blocks until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	defer coremon.Recover()
	done := s.Start(ctx)
	<-ctx.Done()
	<-done
	return nil
}

func (s *Service) notify(ctx context.Context, ev events.AssignmentEvent) {
	notice := notify.NewNotice(ev.RunID, ev.Assignment, ev.Entry)
	if err := s.notifier.NotifyAssignment(ctx, notice); err != nil {
		s.log.Warnf("notify truck %s: %v", notice.Truck, err)
		coremon.CaptureException(err, map[string]string{"module": "notify", "truck": notice.Truck})
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	var errs []error
	s.closeOnce.Do(func() {
		s.bus.Close()
		if n, ok := s.notifier.(*mqtt.Notifier); ok {
			n.Disconnect()
		}
		if c, ok := s.sink.(interface{ Close() }); ok {
			c.Close()
		}
		if c, ok := s.directory.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
		errs = append(errs, s.history.Close())
	})
	return errors.Join(errs...)
}
