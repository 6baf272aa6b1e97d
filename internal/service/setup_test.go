package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/orgscope/internal/db"
	"github.com/alexanderramin/orgscope/internal/repository"
	"github.com/alexanderramin/orgscope/internal/testutil"
)

type testEnv struct {
	db        *sql.DB
	employees repository.EmployeeRepo
	views     repository.ViewStateRepo
	uow       db.UnitOfWork
	observer  *recordingObserver
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:        database,
		employees: repository.NewSQLiteEmployeeRepo(database),
		views:     repository.NewSQLiteViewStateRepo(database),
		uow:       testutil.NewTestUoW(database),
		observer:  &recordingObserver{},
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.events) == 0 {
		return UseCaseEvent{}
	}
	return o.events[len(o.events)-1]
}
