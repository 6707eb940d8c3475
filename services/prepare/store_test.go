package prepare

import (
	"context"
	"testing"
	"time"

	"syllabus-harvester/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "prepare",
		DbSchema: Schema,
	})
	defer cleanup()
	store := NewStore(res.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	rows := normalizedRows(t)
	require.NoError(t, store.Import(ctx, rows))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	got, err := store.ByCourseTitle(ctx, "日本語初級")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "みんなの日本語", got[0].TextbookTitle)
	require.Equal(t, []string{"文学部"}, got[0].Faculties)
	require.Equal(t, []string{"general-education"}, got[0].Tags)

	// a second import replaces instead of appending
	require.NoError(t, store.Import(ctx, rows[:1]))
	count, err = store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
