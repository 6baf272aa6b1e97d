package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/orgscope/internal/repository"
	"github.com/alexanderramin/orgscope/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRoster(t *testing.T, env *testEnv) {
	t.Helper()
	require.NoError(t, env.employees.ReplaceAll(context.Background(), testutil.Roster()))
}

func TestEmployeeService_AddGeneratesID(t *testing.T) {
	env := setupEnv(t)
	svc := NewEmployeeService(env.employees, env.uow, env.observer)
	ctx := context.Background()

	emp := testutil.NewTestEmployee("Ada", testutil.WithID(""))
	require.NoError(t, svc.Add(ctx, emp))
	assert.Len(t, emp.ID, 36)

	got, err := svc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)

	ev := env.observer.last()
	assert.Equal(t, "add-employee", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, emp.ID, ev.Fields["employee_id"])
}

func TestEmployeeService_AddRejectsUnknownManager(t *testing.T) {
	env := setupEnv(t)
	svc := NewEmployeeService(env.employees, env.uow, env.observer)

	err := svc.Add(context.Background(), testutil.NewTestEmployee("Ada", testutil.WithManager("ghost")))
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.False(t, env.observer.last().Success)
}

func TestEmployeeService_AddRejectsInvalid(t *testing.T) {
	env := setupEnv(t)
	svc := NewEmployeeService(env.employees, env.uow)

	err := svc.Add(context.Background(), testutil.NewTestEmployee("Ada", testutil.WithLevel(12)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level 12")
}

func TestEmployeeService_UpdateRefusesCycle(t *testing.T) {
	env := setupEnv(t)
	seedRoster(t, env)
	svc := NewEmployeeService(env.employees, env.uow)
	ctx := context.Background()

	vp, err := svc.Get(ctx, "vp-eng")
	require.NoError(t, err)
	vp.ManagerID = "eng-1"
	assert.ErrorIs(t, svc.Update(ctx, vp), ErrManagerCycle)

	vp.ManagerID = "vp-ops"
	require.NoError(t, svc.Update(ctx, vp))
	got, err := svc.Get(ctx, "vp-eng")
	require.NoError(t, err)
	assert.Equal(t, "vp-ops", got.ManagerID)

	vp.ManagerID = "ghost"
	assert.ErrorIs(t, svc.Update(ctx, vp), repository.ErrNotFound)
}

func TestEmployeeService_RemoveReassignsReports(t *testing.T) {
	env := setupEnv(t)
	seedRoster(t, env)
	svc := NewEmployeeService(env.employees, env.uow, env.observer)
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, "vp-eng", true))

	for _, id := range []string{"eng-1", "eng-2"} {
		e, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "ceo", e.ManagerID)
	}
	assert.Equal(t, 2, env.observer.last().Fields["reassigned"])
}

func TestEmployeeService_RemoveReassignsShadowedReports(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	roster := testutil.Roster()
	require.NoError(t, env.employees.ReplaceAll(ctx, append(roster, roster[2])))
	svc := NewEmployeeService(env.employees, env.uow, env.observer)

	require.NoError(t, svc.Remove(ctx, "vp-eng", true))
	assert.Equal(t, 3, env.observer.last().Fields["reassigned"], "eng-1, eng-2 and the earlier eng-1 record")

	all, err := env.employees.ListRoster(ctx)
	require.NoError(t, err)
	for _, e := range all {
		if e.ID == "eng-1" {
			assert.Equal(t, "ceo", e.ManagerID)
		}
	}
}

func TestEmployeeService_RemoveLeavesReportsDangling(t *testing.T) {
	env := setupEnv(t)
	seedRoster(t, env)
	svc := NewEmployeeService(env.employees, env.uow)
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, "vp-ops", false))
	e, err := svc.Get(ctx, "ops-1")
	require.NoError(t, err)
	assert.Equal(t, "vp-ops", e.ManagerID, "dangling manager makes ops-1 a root on the next build")

	assert.ErrorIs(t, svc.Remove(ctx, "vp-ops", false), repository.ErrNotFound)
}
