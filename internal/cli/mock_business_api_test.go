package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/api"
	"task-tracker/internal/clock"
	"task-tracker/internal/config"
	"task-tracker/internal/datetime"
	"task-tracker/internal/domain"
	"task-tracker/internal/export"
	"task-tracker/internal/repository/sqlite"
	"task-tracker/internal/services"
)

// mockBusinessAPI is a testify mock of api.BusinessAPI
type mockBusinessAPI struct {
	mock.Mock
}

var _ api.BusinessAPI = (*mockBusinessAPI)(nil)

func (m *mockBusinessAPI) change(args mock.Arguments) (*services.TaskChange, error) {
	c, _ := args.Get(0).(*services.TaskChange)
	return c, args.Error(1)
}

func (m *mockBusinessAPI) line(args mock.Arguments) (*services.TaskLine, error) {
	l, _ := args.Get(0).(*services.TaskLine)
	return l, args.Error(1)
}

func (m *mockBusinessAPI) lines(args mock.Arguments) ([]services.TaskLine, error) {
	l, _ := args.Get(0).([]services.TaskLine)
	return l, args.Error(1)
}

func (m *mockBusinessAPI) view(args mock.Arguments) (*services.DayView, error) {
	v, _ := args.Get(0).(*services.DayView)
	return v, args.Error(1)
}

func (m *mockBusinessAPI) texts(args mock.Arguments) ([]string, error) {
	s, _ := args.Get(0).([]string)
	return s, args.Error(1)
}

func (m *mockBusinessAPI) AddTodo(ctx context.Context, description, priority string) (*services.TaskChange, error) {
	return m.change(m.Called(ctx, description, priority))
}

func (m *mockBusinessAPI) AddDeadline(ctx context.Context, description, by, priority string) (*services.TaskChange, error) {
	return m.change(m.Called(ctx, description, by, priority))
}

func (m *mockBusinessAPI) AddEvent(ctx context.Context, description, from, to, priority string) (*services.TaskChange, error) {
	return m.change(m.Called(ctx, description, from, to, priority))
}

func (m *mockBusinessAPI) MarkTask(ctx context.Context, index int) (*services.TaskLine, error) {
	return m.line(m.Called(ctx, index))
}

func (m *mockBusinessAPI) UnmarkTask(ctx context.Context, index int) (*services.TaskLine, error) {
	return m.line(m.Called(ctx, index))
}

func (m *mockBusinessAPI) SetPriority(ctx context.Context, index int, priority string) (*services.TaskLine, error) {
	return m.line(m.Called(ctx, index, priority))
}

func (m *mockBusinessAPI) DeleteTask(ctx context.Context, index int) (*services.TaskChange, error) {
	return m.change(m.Called(ctx, index))
}

func (m *mockBusinessAPI) ClearTasks(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockBusinessAPI) ListTasks(ctx context.Context) ([]services.TaskLine, error) {
	return m.lines(m.Called(ctx))
}

func (m *mockBusinessAPI) GetTask(ctx context.Context, index int) (*services.TaskLine, error) {
	return m.line(m.Called(ctx, index))
}

func (m *mockBusinessAPI) FindTasks(ctx context.Context, keyword string) ([]services.TaskLine, error) {
	return m.lines(m.Called(ctx, keyword))
}

func (m *mockBusinessAPI) SearchTasks(ctx context.Context, req api.SearchRequest) ([]services.TaskLine, error) {
	return m.lines(m.Called(ctx, req))
}

func (m *mockBusinessAPI) TasksOn(ctx context.Context, dateText string) (*services.DayView, error) {
	return m.view(m.Called(ctx, dateText))
}

func (m *mockBusinessAPI) Schedule(ctx context.Context, dateText string) (*services.DayView, error) {
	return m.view(m.Called(ctx, dateText))
}

func (m *mockBusinessAPI) GetSuggestions(ctx context.Context) ([]string, error) {
	return m.texts(m.Called(ctx))
}

func (m *mockBusinessAPI) GetFreeSlots(ctx context.Context, dateText string) ([]string, error) {
	return m.texts(m.Called(ctx, dateText))
}

func (m *mockBusinessAPI) GetImprovements(description string) []string {
	s, _ := m.Called(description).Get(0).([]string)
	return s
}

func (m *mockBusinessAPI) GetStatistics(ctx context.Context) (*api.Statistics, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*api.Statistics)
	return s, args.Error(1)
}

func (m *mockBusinessAPI) Export(ctx context.Context, format export.Format, w io.Writer) (int, error) {
	args := m.Called(ctx, format, w)
	return args.Int(0), args.Error(1)
}

// testConfig is the default configuration with plain, unwrapped output.
func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Display.Color = config.ColorNever
	cfg.Display.Width = 200
	return cfg
}

// setupTestAppWithMockBusinessAPI creates a test app with a mock BusinessAPI
// whose output is captured in the returned buffer.
func setupTestAppWithMockBusinessAPI(t *testing.T, input string) (*App, *mockBusinessAPI, *bytes.Buffer) {
	t.Helper()
	mockAPI := &mockBusinessAPI{}
	t.Cleanup(func() { mockAPI.AssertExpectations(t) })

	out := &bytes.Buffer{}
	app := NewApp(mockAPI, testConfig(), WithOutput(out), WithInput(strings.NewReader(input)))
	return app, mockAPI, out
}

// Wednesday Dec 18 2024, 14:30.
var testNow = time.Date(2024, time.December, 18, 14, 30, 0, 0, time.Local)

// setupTestAppWithRealAPI wires the real services over an in-memory database.
func setupTestAppWithRealAPI(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	parser := datetime.NewParser(clock.Fixed{At: testNow})
	businessAPI := api.NewBusinessAPI(services.NewServiceContainer(repo, parser, nil), parser)

	out := &bytes.Buffer{}
	app := NewApp(businessAPI, testConfig(), WithOutput(out), WithInput(strings.NewReader(input)))
	return app, out
}

func taskLine(index int, description string, when domain.TimeSpec) services.TaskLine {
	return services.TaskLine{Index: index, Task: domain.NewTask(description, when)}
}
