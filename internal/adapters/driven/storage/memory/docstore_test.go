package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
)

func TestDocumentStore_UpsertAssignsSequentialIDs(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	result, err := store.UpsertDocuments(ctx, domain.UpsertRequest{
		Items: []domain.UpsertItem{{Text: "a"}, {Text: "b"}},
	})

	require.NoError(t, err)
	require.NotNil(t, result.Inserted)
	assert.Equal(t, 2, *result.Inserted)
	assert.Equal(t, []int64{1, 2}, result.IDs)
}

func TestDocumentStore_UpsertEmpty(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.UpsertDocuments(context.Background(), domain.UpsertRequest{})

	assert.ErrorIs(t, err, domain.ErrEmptyUpsert)
}

func TestDocumentStore_UpsertOverwrite(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	store.Seed("old-1", "old-2")

	_, err := store.UpsertDocuments(ctx, domain.UpsertRequest{
		Items:     []domain.UpsertItem{{Text: "new"}},
		Overwrite: true,
	})
	require.NoError(t, err)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.NumEntities)
}

func TestDocumentStore_ListDocuments_Windowing(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	store.Seed("d1", "d2", "d3", "d4", "d5")

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []int64
	}{
		{"first page", 0, 2, []int64{1, 2}},
		{"middle page", 2, 2, []int64{3, 4}},
		{"short last page", 4, 2, []int64{5}},
		{"past the end", 10, 2, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := store.ListDocuments(ctx, tt.offset, tt.limit)
			require.NoError(t, err)
			ids := make([]int64, 0, len(docs))
			for _, d := range docs {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestDocumentStore_ListDocuments_InvalidPaging(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	_, err := store.ListDocuments(ctx, -1, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidPaging)

	_, err = store.ListDocuments(ctx, 0, 201)
	assert.ErrorIs(t, err, domain.ErrInvalidPaging)
}

func TestDocumentStore_GetAndDelete(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	ids := store.Seed("keep", "drop")

	doc, err := store.GetDocument(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "keep", doc.Text)

	require.NoError(t, store.DeleteDocument(ctx, ids[1]))

	_, err = store.GetDocument(ctx, ids[1])
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.DeleteDocument(ctx, ids[1])
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_DeleteAll(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	store.Seed("a", "b", "c")

	result, err := store.DeleteAllDocuments(ctx)

	require.NoError(t, err)
	require.NotNil(t, result.Deleted)
	assert.Equal(t, 3, *result.Deleted)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.NumEntities)
	assert.Equal(t, CollectionName, stats.Collection)

	// ids keep increasing after a wipe
	assert.Equal(t, []int64{4}, store.Seed("d"))
}

func TestDocumentStore_Search_RanksByTermShare(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	store.Seed("Go channels and goroutines", "channels only", "unrelated text")

	hits, err := store.Search(ctx, "channels goroutines", 5)

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, int64(1), hits[0].ID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	assert.Equal(t, int64(2), hits[1].ID)
	assert.InDelta(t, 0.5, hits[1].Score, 1e-9)
}

func TestDocumentStore_Search_TopK(t *testing.T) {
	store := NewDocumentStore()
	store.Seed("x1", "x2", "x3", "x4")

	hits, err := store.Search(context.Background(), "x", 2)

	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestDocumentStore_Search_BlankQuery(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.Search(context.Background(), "   ", 3)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentStore_Ask(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	store.Seed("milvus stores vectors", "bananas are yellow")

	answer, err := store.Ask(ctx, "vectors", 3)
	require.NoError(t, err)
	require.Len(t, answer.Contexts, 1)
	assert.Contains(t, answer.Answer, "milvus stores vectors")
	assert.Equal(t, CollectionName, answer.Model)

	answer, err = store.Ask(ctx, "nothing-matches", 3)
	require.NoError(t, err)
	assert.Empty(t, answer.Contexts)
	assert.NotEmpty(t, answer.Answer)
}
