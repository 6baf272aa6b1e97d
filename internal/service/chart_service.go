package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/alexanderramin/orgscope/internal/hierarchy"
	"github.com/alexanderramin/orgscope/internal/repository"
)

type chartService struct {
	employees repository.EmployeeRepo
	views     repository.ViewStateRepo
	observer  UseCaseObserver

	buildMu sync.Mutex

	mu      sync.RWMutex
	current *Snapshot
	subs    map[int]func(*Snapshot)
	nextSub int
}

func NewChartService(
	employees repository.EmployeeRepo,
	views repository.ViewStateRepo,
	observers ...UseCaseObserver,
) ChartService {
	return &chartService{
		employees: employees,
		views:     views,
		observer:  useCaseObserverOrNoop(observers),
		subs:      make(map[int]func(*Snapshot)),
	}
}

// Rebuild loads the roster, builds and aggregates a fresh tree, then
// publishes it to every subscriber. Rebuilds are serialized.
func (s *chartService) Rebuild(ctx context.Context) (snap *Snapshot, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "rebuild-chart", fields)(&err)

	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	roster, err := s.employees.ListRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}

	tree := hierarchy.Build(roster)
	hierarchy.Aggregate(tree)

	s.mu.Lock()
	version := 1
	if s.current != nil {
		version = s.current.Version + 1
	}
	snap = &Snapshot{
		Tree:      tree,
		Version:   version,
		BuiltAt:   time.Now().UTC(),
		Headcount: tree.RealCount(),
		Shadowed:  tree.Shadowed(),
		Orphans:   len(tree.Orphans()),
	}
	s.current = snap
	subs := make([]func(*Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	fields["version"] = snap.Version
	fields["headcount"] = snap.Headcount
	if snap.Shadowed > 0 {
		fields["shadowed"] = snap.Shadowed
	}
	if snap.Orphans > 0 {
		fields["orphans"] = snap.Orphans
	}

	for _, fn := range subs {
		fn(snap)
	}
	return snap, nil
}

// Current returns the latest snapshot, or nil before the first Rebuild.
func (s *chartService) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn to receive every future snapshot. fn runs on the
// goroutine that called Rebuild.
func (s *chartService) Subscribe(fn func(*Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Stats summarizes the current snapshot, building one if needed.
func (s *chartService) Stats(ctx context.Context) (*hierarchy.Summary, error) {
	snap := s.Current()
	if snap == nil {
		var err error
		if snap, err = s.Rebuild(ctx); err != nil {
			return nil, err
		}
	}
	summary := hierarchy.Summarize(snap.Tree)
	return &summary, nil
}

// LoadViewState returns the saved view state. found is false when nothing
// has been saved yet.
func (s *chartService) LoadViewState(ctx context.Context) (*domain.ViewState, bool, error) {
	v, err := s.views.Get(ctx, domain.DefaultViewStateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

func (s *chartService) SaveViewState(ctx context.Context, v *domain.ViewState) error {
	if v.ID == "" {
		v.ID = domain.DefaultViewStateID
	}
	v.UpdatedAt = time.Now().UTC()
	if err := s.views.Upsert(ctx, v); err != nil {
		return fmt.Errorf("saving view state: %w", err)
	}
	return nil
}
