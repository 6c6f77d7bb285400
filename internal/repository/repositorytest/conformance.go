// Package repositorytest holds the behaviour every repository.Repository
// implementation must share.
package repositorytest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/datetime"
	apperrors "task-tracker/internal/errors"
	"task-tracker/internal/repository"
)

// Factory returns an empty repository. The suite closes it.
type Factory func(t *testing.T) repository.Repository

func ts(t *testing.T, y int, m time.Month, d, h, mi int) datetime.Timestamp {
	t.Helper()
	v, err := datetime.NewTimestamp(y, m, d, h, mi)
	require.NoError(t, err)
	return v
}

// Run exercises the full contract against repositories built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Run("create and get round trip", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()
		ctx := context.Background()

		event := &repository.Task{
			Kind:        "E",
			Description: "project meeting",
			Priority:    3,
			From:        ts(t, 2024, time.December, 20, 14, 0),
			To:          ts(t, 2024, time.December, 20, 16, 0),
		}
		require.NoError(t, repo.CreateTask(ctx, event))
		assert.Greater(t, event.ID, int64(0))

		got, err := repo.GetTask(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, event, got)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()
		ctx := context.Background()

		for _, desc := range []string{"zebra", "apple", "mango"} {
			require.NoError(t, repo.CreateTask(ctx, &repository.Task{Kind: "T", Description: desc}))
		}

		tasks, err := repo.ListTasks(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "zebra", tasks[0].Description)
		assert.Equal(t, "apple", tasks[1].Description)
		assert.Equal(t, "mango", tasks[2].Description)
	})

	t.Run("empty list", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		tasks, err := repo.ListTasks(context.Background())
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("update", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()
		ctx := context.Background()

		task := &repository.Task{Kind: "D", Description: "return book", By: ts(t, 2024, time.December, 15, 18, 0)}
		require.NoError(t, repo.CreateTask(ctx, task))

		task.Done = true
		task.Priority = 1
		task.By = ts(t, 2024, time.December, 16, 9, 30)
		require.NoError(t, repo.UpdateTask(ctx, task))

		got, err := repo.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.True(t, got.Done)
		assert.Equal(t, 1, got.Priority)
		assert.Equal(t, task.By, got.By)
	})

	t.Run("missing ids are not found", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()
		ctx := context.Background()

		_, err := repo.GetTask(ctx, 999)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))

		err = repo.UpdateTask(ctx, &repository.Task{ID: 999, Kind: "T", Description: "x"})
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))

		err = repo.DeleteTask(ctx, 999)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()
		ctx := context.Background()

		a := &repository.Task{Kind: "T", Description: "a"}
		b := &repository.Task{Kind: "T", Description: "b"}
		require.NoError(t, repo.CreateTask(ctx, a))
		require.NoError(t, repo.CreateTask(ctx, b))

		require.NoError(t, repo.DeleteTask(ctx, a.ID))

		tasks, err := repo.ListTasks(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "b", tasks[0].Description)
	})

	t.Run("delete all", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()
		ctx := context.Background()

		require.NoError(t, repo.CreateTask(ctx, &repository.Task{Kind: "T", Description: "a"}))
		require.NoError(t, repo.CreateTask(ctx, &repository.Task{Kind: "T", Description: "b"}))
		require.NoError(t, repo.DeleteAllTasks(ctx))

		tasks, err := repo.ListTasks(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)

		c := &repository.Task{Kind: "T", Description: "c"}
		require.NoError(t, repo.CreateTask(ctx, c))
		tasks, err = repo.ListTasks(ctx)
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})

	t.Run("search", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()
		ctx := context.Background()

		seed := []*repository.Task{
			{Kind: "T", Description: "Buy milk", Priority: 0},
			{Kind: "D", Description: "Submit report", Done: true, Priority: 2, By: ts(t, 2024, time.December, 15, 18, 0)},
			{Kind: "E", Description: "Team MEETING", Priority: 3,
				From: ts(t, 2024, time.December, 20, 14, 0), To: ts(t, 2024, time.December, 20, 16, 0)},
			{Kind: "T", Description: "100% effort_plan", Priority: 1},
		}
		for _, task := range seed {
			require.NoError(t, repo.CreateTask(ctx, task))
		}

		str := func(s string) *string { return &s }
		boolean := func(b bool) *bool { return &b }
		num := func(n int) *int { return &n }

		tests := []struct {
			name string
			opts repository.SearchOptions
			want []string
		}{
			{"no filter", repository.SearchOptions{}, []string{"Buy milk", "Submit report", "Team MEETING", "100% effort_plan"}},
			{"keyword case insensitive", repository.SearchOptions{Keyword: str("meeting")}, []string{"Team MEETING"}},
			{"keyword with like metacharacters", repository.SearchOptions{Keyword: str("0% e")}, []string{"100% effort_plan"}},
			{"underscore is literal", repository.SearchOptions{Keyword: str("t_p")}, []string{"100% effort_plan"}},
			{"kind", repository.SearchOptions{Kind: str("T")}, []string{"Buy milk", "100% effort_plan"}},
			{"done", repository.SearchOptions{Done: boolean(true)}, []string{"Submit report"}},
			{"min priority", repository.SearchOptions{MinPriority: num(2)}, []string{"Submit report", "Team MEETING"}},
			{"combined", repository.SearchOptions{Kind: str("T"), MinPriority: num(1)}, []string{"100% effort_plan"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tasks, err := repo.SearchTasks(ctx, tt.opts)
				require.NoError(t, err)
				got := make([]string, 0, len(tasks))
				for _, task := range tasks {
					got = append(got, task.Description)
				}
				assert.Equal(t, tt.want, got)
			})
		}
	})
}
