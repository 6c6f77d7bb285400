package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/domain"
	"task-tracker/internal/errors"
)

func TestSuggestionService_EmptyList(t *testing.T) {
	c := setupContainer(t)

	got, err := c.SuggestionService.Suggestions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Start by adding your first task: 'tk todo <description>'",
		"Set a deadline: 'tk deadline Submit report --by \"tomorrow 5pm\"'",
		"Plan an event: 'tk event Team meeting --from \"today 2pm\" --to \"today 3pm\"'",
	}, got)
}

func TestSuggestionService_UrgentFirstAndCapped(t *testing.T) {
	c := setupContainer(t)
	ctx := context.Background()
	_, err := c.TaskService.AddDeadline(ctx, "pay rent", "yesterday", noPriority)
	require.NoError(t, err)
	_, err = c.TaskService.AddDeadline(ctx, "file taxes", "15/12/2024 1700", noPriority)
	require.NoError(t, err)
	_, err = c.TaskService.AddTodo(ctx, "prepare slides", priority(domain.PriorityHigh))
	require.NoError(t, err)

	got, err := c.SuggestionService.Suggestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"You have 2 overdue tasks! Consider reviewing your priorities.",
		"Focus on your 1 high-priority task first!",
		"Break down large tasks into smaller, manageable steps",
	}, got)
}

func TestSuggestionService_TimeOfDay(t *testing.T) {
	tests := []struct {
		name string
		hour int
		want string
	}{
		{"morning", 8, "Good morning! Plan your day with 'tk schedule today'"},
		{"afternoon", 14, "Check your afternoon schedule with 'tk schedule today'"},
		{"evening", 20, "Review today's accomplishments and plan for tomorrow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := time.Date(2024, time.December, 18, tt.hour, 0, 0, 0, time.Local)
			c := NewServiceContainer(setupRepo(t), testParser(at), nil)
			ctx := context.Background()
			_, err := c.TaskService.AddTodo(ctx, "read book", noPriority)
			require.NoError(t, err)
			_, err = c.TaskService.Mark(ctx, 1)
			require.NoError(t, err)

			got, err := c.SuggestionService.Suggestions(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{
				"Great progress! Keep it up!",
				"Consider adding some stretch goals",
				tt.want,
			}, got)
		})
	}
}

func TestSuggestionService_FreeSlots(t *testing.T) {
	c := setupContainer(t)
	ctx := context.Background()
	_, err := c.TaskService.AddDeadline(ctx, "pay rent", "20/12/2024 0830", noPriority)
	require.NoError(t, err)
	_, err = c.TaskService.AddEvent(ctx, "team sync", "20/12/2024 1430", "20/12/2024 1530", noPriority)
	require.NoError(t, err)
	_, err = c.TaskService.AddDeadline(ctx, "return book", "20/12/2024", noPriority)
	require.NoError(t, err)

	got, err := c.SuggestionService.FreeSlots(ctx, "20/12/2024")
	require.NoError(t, err)
	assert.Equal(t, []string{"Late morning (10:00-12:00) is available for important tasks"}, got)

	got, err = c.SuggestionService.FreeSlots(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 3, "nothing is scheduled today")

	_, err = c.SuggestionService.FreeSlots(ctx, "someday")
	assert.True(t, errors.HasCode(err, errors.CodeUnsupportedFormat))
}

func TestSuggestionService_Improvements(t *testing.T) {
	svc := NewSuggestionService(nil, testParser(testNow))

	tests := []struct {
		description string
		want        []string
	}{
		{
			description: "call mum",
			want: []string{
				"Consider adding more details to make the task clearer",
				"Consider setting a deadline: 'tk deadline call mum --by <date>'",
				"This looks like an event! Try: 'tk event call mum --from <start> --to <end>'",
			},
		},
		{
			description: "finish the quarterly report due friday",
			want:        []string{},
		},
		{
			description: "maybe learn the guitar by summer",
			want:        []string{"Try to be more specific about when you'll do this task"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Improvements(tt.description))
		})
	}
}

func TestSuggestionService_StorageFailure(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListTasks", mock.Anything).Return(nil, errors.NewStorageError("list tasks", assert.AnError))

	svc := NewSuggestionService(repo, testParser(testNow))
	_, err := svc.Suggestions(context.Background())
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))

	_, err = svc.FreeSlots(context.Background(), "today")
	assert.Error(t, err)
	repo.AssertExpectations(t)
}
