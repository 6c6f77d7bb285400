package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/api"
	"task-tracker/internal/datetime"
	"task-tracker/internal/domain"
	apperrors "task-tracker/internal/errors"
	"task-tracker/internal/export"
	"task-tracker/internal/services"
)

func deadlineAt(t *testing.T, y, d, h int) domain.Deadline {
	t.Helper()
	by, err := datetime.NewTimestamp(y, 12, d, h, 0)
	require.NoError(t, err)
	return domain.Deadline{By: by}
}

func TestAddCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("todo joins arguments", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		line := taskLine(1, "read book", domain.Todo{})
		mockAPI.On("AddTodo", ctx, "read book", "").
			Return(&services.TaskChange{Task: line, Count: 1}, nil)

		err := NewTodoCommand(app).Execute(ctx, []string{"read", "book"})

		require.NoError(t, err)
		assert.Equal(t, "Got it. I've added this task:\n[T][ ] read book\nNow you have 1 tasks in the list.\n", out.String())
	})

	t.Run("deadline reads the /by clause", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		line := taskLine(2, "return book", deadlineAt(t, 2024, 19, 18))
		mockAPI.On("AddDeadline", ctx, "return book", "tomorrow 6pm", "").
			Return(&services.TaskChange{Task: line, Count: 2}, nil)

		err := NewDeadlineCommand(app).Execute(ctx, []string{"return", "book", "/by", "tomorrow", "6pm"})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "[D][ ] return book (by: Dec 19 2024, 18:00)")
		assert.Contains(t, out.String(), "Now you have 2 tasks in the list.")
	})

	t.Run("deadline flag wins over clause parsing", func(t *testing.T) {
		app, mockAPI, _ := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("AddDeadline", ctx, "pay /by cheque", "friday", "high").
			Return(&services.TaskChange{Task: taskLine(1, "pay /by cheque", deadlineAt(t, 2024, 20, 0)), Count: 1}, nil)

		cmd := NewDeadlineCommand(app)
		cmd.By = "friday"
		cmd.Priority = "high"
		require.NoError(t, cmd.Execute(ctx, []string{"pay /by cheque"}))
	})

	t.Run("event reads /from and /to clauses", func(t *testing.T) {
		app, mockAPI, _ := setupTestAppWithMockBusinessAPI(t, "")
		ev := domain.Event{From: deadlineAt(t, 2024, 20, 19).By, To: deadlineAt(t, 2024, 20, 23).By}
		mockAPI.On("AddEvent", ctx, "party", "20/12/2024 1900", "20/12/2024 2300", "").
			Return(&services.TaskChange{Task: taskLine(1, "party", ev), Count: 1}, nil)

		err := NewEventCommand(app).Execute(ctx, []string{"party", "/from", "20/12/2024", "1900", "/to", "20/12/2024", "2300"})
		require.NoError(t, err)
	})

	t.Run("errors become user messages", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("AddDeadline", ctx, "return book", "", "").
			Return(nil, apperrors.NewEmptyInputError())

		err := NewDeadlineCommand(app).Execute(ctx, []string{"return", "book"})

		require.Error(t, err)
		assert.Equal(t, apperrors.NewEmptyInputError().Message, err.Error())
		assert.Empty(t, out.String())
	})
}

func TestSplitClause(t *testing.T) {
	tests := []struct {
		text, marker  string
		before, after string
	}{
		{"return book /by tomorrow", "/by", "return book", "tomorrow"},
		{"return book", "/by", "return book", ""},
		{"x /by", "/by", "x", ""},
		{"/from a /to b", "/from", "", "a /to b"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			before, after := splitClause(tt.text, tt.marker)
			assert.Equal(t, tt.before, before)
			assert.Equal(t, tt.after, after)
		})
	}
}

func TestParseIndex(t *testing.T) {
	index, err := parseIndex("mark", []string{"3"})
	require.NoError(t, err)
	assert.Equal(t, 3, index)

	_, err = parseIndex("mark", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
	assert.Equal(t, "Please specify which task to mark!", apperrors.GetUserMessage(err))

	_, err = parseIndex("mark", []string{"two"})
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
	assert.Equal(t, "Task number must be a valid number!", apperrors.GetUserMessage(err))
	assert.EqualError(t, NewErrorHandler().HandleSimple(err), "Task number must be a valid number!")
}

func TestMarkCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("mark", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		line := taskLine(2, "read book", domain.Todo{})
		line.Task.Done = true
		mockAPI.On("MarkTask", ctx, 2).Return(&line, nil)

		require.NoError(t, NewMarkCommand(app).Execute(ctx, []string{"2"}))
		assert.Equal(t, "Nice! I've marked this task as done:\n[T][X] read book\n", out.String())
	})

	t.Run("unmark", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		line := taskLine(1, "read book", domain.Todo{})
		mockAPI.On("UnmarkTask", ctx, 1).Return(&line, nil)

		require.NoError(t, NewUnmarkCommand(app).Execute(ctx, []string{"1"}))
		assert.Equal(t, "OK, I've marked this task as not done yet:\n[T][ ] read book\n", out.String())
	})

	t.Run("out of range", func(t *testing.T) {
		app, mockAPI, _ := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("MarkTask", ctx, 9).Return(nil, apperrors.NewIndexOutOfRangeError(9, 2))

		err := NewMarkCommand(app).Execute(ctx, []string{"9"})
		assert.EqualError(t, err, "Task index 9 is out of range! You have 2 tasks.")
	})

	t.Run("not a number", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockBusinessAPI(t, "")
		err := NewUnmarkCommand(app).Execute(ctx, []string{"first"})
		assert.EqualError(t, err, "Task number must be a valid number!")
	})
}

func TestPriorityCommand_Execute(t *testing.T) {
	ctx := context.Background()
	app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
	line := taskLine(1, "read book", domain.Todo{})
	line.Task.Priority = domain.PriorityHigh
	mockAPI.On("SetPriority", ctx, 1, "high").Return(&line, nil)

	require.NoError(t, NewPriorityCommand(app).Execute(ctx, []string{"1", "high"}))
	assert.Equal(t, "Priority set to HIGH:\n[T][ ] read book {HIGH}\n", out.String())

	err := NewPriorityCommand(app).Execute(ctx, []string{"1"})
	assert.EqualError(t, err, "Please specify a priority: high, medium, low or none.")
}

func TestDeleteCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("by number", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("DeleteTask", ctx, 1).
			Return(&services.TaskChange{Task: taskLine(1, "read book", domain.Todo{}), Count: 0}, nil)

		require.NoError(t, NewDeleteCommand(app).Execute(ctx, []string{"1"}))
		assert.Equal(t, "Noted. I've removed this task:\n[T][ ] read book\nNow you have 0 tasks in the list.\n", out.String())
	})

	t.Run("interactive selection", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "2\n")
		mockAPI.On("ListTasks", ctx).Return([]services.TaskLine{
			taskLine(1, "read book", domain.Todo{}),
			taskLine(2, "write essay", domain.Todo{}),
		}, nil)
		mockAPI.On("DeleteTask", ctx, 2).
			Return(&services.TaskChange{Task: taskLine(2, "write essay", domain.Todo{}), Count: 1}, nil)

		require.NoError(t, NewDeleteCommand(app).Execute(ctx, nil))
		assert.Contains(t, out.String(), "Select a task to delete:\n1. [T][ ] read book\n2. [T][ ] write essay\n")
		assert.Contains(t, out.String(), "Noted. I've removed this task:\n[T][ ] write essay\n")
	})

	t.Run("interactive cancel", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "q\n")
		mockAPI.On("ListTasks", ctx).Return([]services.TaskLine{taskLine(1, "read book", domain.Todo{})}, nil)

		require.NoError(t, NewDeleteCommand(app).Execute(ctx, nil))
		assert.Contains(t, out.String(), "Delete cancelled.")
	})

	t.Run("interactive with empty list", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("ListTasks", ctx).Return([]services.TaskLine{}, nil)

		require.NoError(t, NewDeleteCommand(app).Execute(ctx, nil))
		assert.Equal(t, "No tasks found to delete.\n", out.String())
	})
}

func TestClearCommand_Execute(t *testing.T) {
	ctx := context.Background()
	two := []services.TaskLine{taskLine(1, "a", domain.Todo{}), taskLine(2, "b", domain.Todo{})}

	t.Run("confirmed", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "y\n")
		mockAPI.On("ListTasks", ctx).Return(two, nil)
		mockAPI.On("ClearTasks", ctx).Return(2, nil)

		require.NoError(t, NewClearCommand(app).Execute(ctx, nil))
		assert.Equal(t, "Delete all 2 tasks? [y/N]: Noted. I've removed all 2 tasks.\n", out.String())
	})

	t.Run("declined", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "n\n")
		mockAPI.On("ListTasks", ctx).Return(two, nil)

		require.NoError(t, NewClearCommand(app).Execute(ctx, nil))
		assert.Contains(t, out.String(), "Clear cancelled.")
		mockAPI.AssertNotCalled(t, "ClearTasks", mock.Anything)
	})

	t.Run("yes flag skips the prompt", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("ListTasks", ctx).Return(two, nil)
		mockAPI.On("ClearTasks", ctx).Return(2, nil)

		cmd := NewClearCommand(app)
		cmd.Yes = true
		require.NoError(t, cmd.Execute(ctx, nil))
		assert.Equal(t, "Noted. I've removed all 2 tasks.\n", out.String())
	})

	t.Run("already empty", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("ListTasks", ctx).Return([]services.TaskLine{}, nil)

		require.NoError(t, NewClearCommand(app).Execute(ctx, nil))
		assert.Equal(t, "Your task list is already empty.\n", out.String())
	})
}

func TestListAndFindCommands(t *testing.T) {
	ctx := context.Background()
	done := taskLine(2, "write essay", domain.Todo{})
	done.Task.Done = true
	lines := []services.TaskLine{taskLine(1, "read book", domain.Todo{}), done}

	t.Run("list", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("ListTasks", ctx).Return(lines, nil)

		require.NoError(t, NewListCommand(app).Execute(ctx, nil))
		assert.Equal(t, "Here are the tasks in your list:\n1. [T][ ] read book\n2. [T][X] write essay\n", out.String())
	})

	t.Run("empty list", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("ListTasks", ctx).Return([]services.TaskLine{}, nil)

		require.NoError(t, NewListCommand(app).Execute(ctx, nil))
		assert.Equal(t, "Your task list is empty.\n", out.String())
	})

	t.Run("find by keyword", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("FindTasks", ctx, "essay").Return([]services.TaskLine{done}, nil)

		require.NoError(t, NewFindCommand(app).Execute(ctx, []string{"essay"}))
		assert.Equal(t, "Here are the matching tasks in your list:\n2. [T][X] write essay\n", out.String())
	})

	t.Run("find with filters", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("SearchTasks", ctx, api.SearchRequest{Kind: "deadline", Status: "pending"}).
			Return([]services.TaskLine{}, nil)

		cmd := NewFindCommand(app)
		cmd.Kind, cmd.Status = "deadline", "pending"
		require.NoError(t, cmd.Execute(ctx, nil))
		assert.Equal(t, "No matching tasks found.\n", out.String())
	})

	t.Run("find needs a keyword", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockBusinessAPI(t, "")
		err := NewFindCommand(app).Execute(ctx, nil)
		assert.EqualError(t, err, "Please specify what to search for!")
	})
}

func TestOnAndScheduleCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("on with tasks", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("TasksOn", ctx, "today").Return(&services.DayView{
			Label: "Dec 18 2024",
			Lines: []string{"3. [D][ ] submit form (by: Dec 18 2024, 17:00)"},
		}, nil)

		require.NoError(t, NewOnCommand(app).Execute(ctx, []string{"today"}))
		assert.Equal(t, "Tasks on Dec 18 2024:\n3. [D][ ] submit form (by: Dec 18 2024, 17:00)\n", out.String())
	})

	t.Run("on without tasks", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("TasksOn", ctx, "next friday").Return(&services.DayView{Label: "Dec 27 2024"}, nil)

		require.NoError(t, NewOnCommand(app).Execute(ctx, []string{"next", "friday"}))
		assert.Equal(t, "Tasks on Dec 27 2024:\nNo tasks found on this date.\n", out.String())
	})

	t.Run("on with a bad date", func(t *testing.T) {
		app, mockAPI, _ := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("TasksOn", ctx, "someday").Return(nil, apperrors.NewUnsupportedFormatError("someday"))

		err := NewOnCommand(app).Execute(ctx, []string{"someday"})
		assert.Error(t, err)
	})

	t.Run("schedule with free slots", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("Schedule", ctx, "today").Return(&services.DayView{
			Label: "Dec 18 2024",
			Lines: []string{"No tasks scheduled for this date."},
		}, nil)
		mockAPI.On("GetFreeSlots", ctx, "today").Return([]string{"Afternoon is open"}, nil)

		cmd := NewScheduleCommand(app)
		cmd.Free = true
		require.NoError(t, cmd.Execute(ctx, []string{"today"}))
		assert.Equal(t, "No tasks scheduled for this date.\n\nFree time:\n  - Afternoon is open\n", out.String())
	})
}

func TestTipsCommand_Execute(t *testing.T) {
	ctx := context.Background()
	app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
	mockAPI.On("GetStatistics", ctx).Return(&api.Statistics{Total: 3, Done: 1, Pending: 2, Overdue: 1}, nil)
	mockAPI.On("GetSuggestions", ctx).Return([]string{"You have 1 overdue task! Consider reviewing your priorities."}, nil)
	mockAPI.On("GetImprovements", "call bob").Return([]string{"Consider adding more details to make the task clearer"})

	cmd := NewTipsCommand(app)
	cmd.For = "call bob"
	require.NoError(t, cmd.Execute(ctx, nil))
	assert.Equal(t, "You have 3 tasks: 1 done, 2 pending, 1 overdue.\n"+
		"Suggestions:\n"+
		"  - You have 1 overdue task! Consider reviewing your priorities.\n"+
		"Ways to improve 'call bob':\n"+
		"  - Consider adding more details to make the task clearer\n", out.String())
}

func TestExportCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("default format to output", func(t *testing.T) {
		app, mockAPI, _ := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("Export", ctx, export.FormatCSV, app.out).Return(2, nil)

		require.NoError(t, NewExportCommand(app).Execute(ctx, nil))
	})

	t.Run("positional format", func(t *testing.T) {
		app, mockAPI, _ := setupTestAppWithMockBusinessAPI(t, "")
		mockAPI.On("Export", ctx, export.FormatYAML, app.out).Return(0, nil)

		require.NoError(t, NewExportCommand(app).Execute(ctx, []string{"yml"}))
	})

	t.Run("to file", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t, "")
		path := filepath.Join(t.TempDir(), "tasks.json")
		mockAPI.On("Export", ctx, export.FormatJSON, mock.AnythingOfType("*os.File")).
			Run(func(args mock.Arguments) {
				w := args.Get(2).(*os.File)
				_, _ = w.WriteString("[]\n")
			}).
			Return(0, nil)

		cmd := NewExportCommand(app)
		cmd.Format, cmd.Output = "json", path
		require.NoError(t, cmd.Execute(ctx, nil))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
		assert.Equal(t, "Exported 0 tasks to "+path+".\n", out.String())
	})

	t.Run("xlsx needs a file", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockBusinessAPI(t, "")
		cmd := NewExportCommand(app)
		cmd.Format = "xlsx"
		err := cmd.Execute(ctx, nil)
		assert.ErrorContains(t, err, "xlsx export needs --output")
	})

	t.Run("unknown format", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockBusinessAPI(t, "")
		err := NewExportCommand(app).Execute(ctx, []string{"pdf"})
		assert.ErrorContains(t, err, "unsupported format")
	})
}

func TestApp_Wrap(t *testing.T) {
	out := &bytes.Buffer{}
	cfg := testConfig()
	cfg.Display.Width = 20
	app := NewApp(&mockBusinessAPI{}, cfg, WithOutput(out))

	app.println("the quick brown fox jumps over the lazy dog")
	assert.Equal(t, "the quick brown fox\njumps over the lazy\ndog\n", out.String())
}
