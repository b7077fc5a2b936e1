package snapshots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"skolexport/lib/scrapers/skola24"
	"skolexport/lib/telemetry"
	"skolexport/lib/timezone"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (Store, func()) {
	cleanup := telemetry.SetupForTesting(t, "services/snapshots")

	db, err := Open(":memory:")
	require.NoError(t, err)

	return NewStore(db), func() {
		db.Close()
		cleanup()
	}
}

func weekLessons(week int, courses ...string) []skola24.Lesson {
	start := time.Date(2024, 2, 5, 8, 0, 0, 0, timezone.Location)
	var lessons []skola24.Lesson
	for i, course := range courses {
		lessons = append(lessons, skola24.Lesson{
			Course:  course,
			Teacher: fmt.Sprintf("teacher-%d", i),
			Start:   start.Add(time.Duration(i) * time.Hour),
			End:     start.Add(time.Duration(i+1) * time.Hour),
			Color:   "#fff",
		})
	}
	return lessons
}

func TestStorePushPull(t *testing.T) {
	store, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	pushed := weekLessons(10, "Math", "Chemistry")
	err := store.Push(ctx, 2024, []skola24.WeekResult{
		{Week: 10, Lessons: pushed},
		{Week: 11, Lessons: nil},
	})
	require.NoError(t, err)

	got, err := store.Pull(ctx, 2024, 10)
	require.NoError(t, err)
	if diff := cmp.Diff(pushed, got); diff != "" {
		t.Fatalf("unexpected lessons (-want +got):\n%s", diff)
	}

	got, err = store.Pull(ctx, 2024, 11)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestStorePushReplaces(t *testing.T) {
	store, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Push(ctx, 2024, []skola24.WeekResult{
		{Week: 10, Lessons: weekLessons(10, "Math")},
	})
	require.NoError(t, err)

	err = store.Push(ctx, 2024, []skola24.WeekResult{
		{Week: 10, Lessons: weekLessons(10, "Biology")},
	})
	require.NoError(t, err)

	got, err := store.Pull(ctx, 2024, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Biology", got[0].Course)
}

func TestStoreKeepsSnapshotOfFailedWeek(t *testing.T) {
	store, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Push(ctx, 2024, []skola24.WeekResult{
		{Week: 10, Lessons: weekLessons(10, "Math")},
	})
	require.NoError(t, err)

	err = store.Push(ctx, 2024, []skola24.WeekResult{
		{Week: 10, Err: fmt.Errorf("fetch failed")},
	})
	require.NoError(t, err)

	got, err := store.Pull(ctx, 2024, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Math", got[0].Course)
}

func TestDiff(t *testing.T) {
	stored := weekLessons(10, "Math", "Chemistry")
	fresh := weekLessons(10, "Math", "Biology")

	d := Diff(10, stored, fresh)
	require.False(t, d.Empty())
	require.Len(t, d.Added, 1)
	require.Equal(t, "Biology", d.Added[0].Course)
	require.Len(t, d.Removed, 1)
	require.Equal(t, "Chemistry", d.Removed[0].Course)

	require.True(t, Diff(10, stored, stored).Empty())
}
