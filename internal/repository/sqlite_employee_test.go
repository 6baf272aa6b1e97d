package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/alexanderramin/orgscope/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(emps []domain.Employee) []string {
	var out []string
	for _, e := range emps {
		out = append(out, e.ID)
	}
	return out
}

func TestEmployeeRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEmployeeRepo(db)
	ctx := context.Background()

	emp := testutil.NewTestEmployee("Ada", testutil.WithLevel(3), testutil.WithJobTitle("Director"))
	emp.Salary = decimal.RequireFromString("123456.78")
	emp.Email = "ada@example.com"
	require.NoError(t, repo.Create(ctx, emp))

	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, "Director", got.JobTitle)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.True(t, emp.Salary.Equal(got.Salary))
	assert.True(t, emp.CreatedAt.Equal(got.CreatedAt))
}

func TestEmployeeRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteEmployeeRepo(testutil.NewTestDB(t))
	_, err := repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmployeeRepo_CreateDuplicateFails(t *testing.T) {
	repo := NewSQLiteEmployeeRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	emp := testutil.NewTestEmployee("Ada")
	require.NoError(t, repo.Create(ctx, emp))
	assert.Error(t, repo.Create(ctx, emp))
}

func TestEmployeeRepo_ListKeepsRosterOrder(t *testing.T) {
	repo := NewSQLiteEmployeeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"zed", "amy", "mia"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestEmployee(name, testutil.WithID(name))))
	}

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"zed", "amy", "mia"}, ids(got))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestEmployeeRepo_UpsertKeepsPosition(t *testing.T) {
	repo := NewSQLiteEmployeeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestEmployee("A", testutil.WithID("a"))
	b := testutil.NewTestEmployee("B", testutil.WithID("b"))
	require.NoError(t, repo.Upsert(ctx, a))
	require.NoError(t, repo.Upsert(ctx, b))

	a.Name = "A2"
	a.ManagerID = "b"
	require.NoError(t, repo.Upsert(ctx, a))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(got))
	assert.Equal(t, "A2", got[0].Name)
	assert.Equal(t, "b", got[0].ManagerID)
}

func TestEmployeeRepo_Delete(t *testing.T) {
	repo := NewSQLiteEmployeeRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	emp := testutil.NewTestEmployee("Ada")
	require.NoError(t, repo.Create(ctx, emp))

	require.NoError(t, repo.Delete(ctx, emp.ID))
	_, err := repo.GetByID(ctx, emp.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, emp.ID), ErrNotFound)
}

func TestEmployeeRepo_ReplaceAll(t *testing.T) {
	repo := NewSQLiteEmployeeRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testutil.NewTestEmployee("Old", testutil.WithID("old"))))

	roster := testutil.Roster()
	dup := roster[1]
	dup.Name = "Victor Again"
	roster = append(roster, dup)
	require.NoError(t, repo.ReplaceAll(ctx, roster))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ceo", "eng-1", "eng-2", "vp-ops", "ops-1", "vp-eng"}, ids(got))
	assert.Equal(t, "Victor Again", got[5].Name)

	all, err := repo.ListRoster(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ceo", "vp-eng", "eng-1", "eng-2", "vp-ops", "ops-1", "vp-eng"}, ids(all))
	assert.Equal(t, "Victor", all[1].Name, "earlier duplicate keeps its position")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	e, err := repo.GetByID(ctx, "vp-eng")
	require.NoError(t, err)
	assert.Equal(t, "Victor Again", e.Name)

	_, err = repo.GetByID(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmployeeRepo_ReplaceAllClearsShadowedRecords(t *testing.T) {
	repo := NewSQLiteEmployeeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	roster := testutil.Roster()
	require.NoError(t, repo.ReplaceAll(ctx, append(roster, roster[0])))
	require.NoError(t, repo.ReplaceAll(ctx, roster))

	all, err := repo.ListRoster(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestEmployeeRepo_ShadowedRecordsFollowTheirID(t *testing.T) {
	repo := NewSQLiteEmployeeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	old := testutil.NewTestEmployee("Old Eve", testutil.WithID("eve"), testutil.WithManager("mgr"))
	require.NoError(t, repo.ReplaceAll(ctx, []domain.Employee{
		*testutil.NewTestEmployee("Mgr", testutil.WithID("mgr")),
		*old,
		*testutil.NewTestEmployee("Eve", testutil.WithID("eve")),
	}))
	require.NoError(t, repo.CreateShadowed(ctx, testutil.NewTestEmployee("Older Eve", testutil.WithID("eve"))))

	all, err := repo.ListRoster(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mgr", "eve", "eve", "eve"}, ids(all))
	assert.Equal(t, "Older Eve", all[3].Name, "appended at the end")

	moved, err := repo.ReassignShadowedReports(ctx, "mgr", "")
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	require.NoError(t, repo.Delete(ctx, "eve"))
	all, err = repo.ListRoster(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mgr"}, ids(all), "delete drops shadowed copies too")
}
