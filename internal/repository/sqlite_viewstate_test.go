package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/alexanderramin/orgscope/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewStateRepo_NotFoundBeforeFirstSave(t *testing.T) {
	repo := NewSQLiteViewStateRepo(testutil.NewTestDB(t))
	_, err := repo.Get(context.Background(), domain.DefaultViewStateID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestViewStateRepo_UpsertRoundTrip(t *testing.T) {
	repo := NewSQLiteViewStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	v := &domain.ViewState{
		ID:            domain.DefaultViewStateID,
		ExpandedIDs:   []string{"ceo", "vp-eng"},
		VisibleLayers: []int{1, 2, 6},
		Zoom:          1.5,
		HighlightedID: "eng-1",
	}
	require.NoError(t, repo.Upsert(ctx, v))
	assert.False(t, v.UpdatedAt.IsZero())

	got, err := repo.Get(ctx, domain.DefaultViewStateID)
	require.NoError(t, err)
	assert.Equal(t, v.ExpandedIDs, got.ExpandedIDs)
	assert.Equal(t, v.VisibleLayers, got.VisibleLayers)
	assert.Equal(t, 1.5, got.Zoom)
	assert.Equal(t, "eng-1", got.HighlightedID)

	v.ExpandedIDs = nil
	v.VisibleLayers = []int{}
	require.NoError(t, repo.Upsert(ctx, v))
	got, err = repo.Get(ctx, domain.DefaultViewStateID)
	require.NoError(t, err)
	assert.Empty(t, got.ExpandedIDs)
	assert.Empty(t, got.VisibleLayers)
}
