package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/clock"
	"task-tracker/internal/datetime"
	"task-tracker/internal/domain"
	"task-tracker/internal/repository"
	"task-tracker/internal/repository/sqlite"
)

// Wednesday Dec 18 2024, 14:30.
var testNow = time.Date(2024, time.December, 18, 14, 30, 0, 0, time.Local)

func testParser(at time.Time) *datetime.Parser {
	return datetime.NewParser(clock.Fixed{At: at})
}

func setupRepo(t *testing.T) repository.Repository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupContainer(t *testing.T) *ServiceContainer {
	t.Helper()
	return NewServiceContainer(setupRepo(t), testParser(testNow), nil)
}

func priority(p domain.Priority) AddOptions {
	return AddOptions{Priority: &p}
}

var noPriority = priority(domain.PriorityNone)

// mockRepository is a testify mock of repository.Repository.
type mockRepository struct {
	mock.Mock
}

var _ repository.Repository = (*mockRepository)(nil)

func (m *mockRepository) CreateTask(ctx context.Context, task *repository.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockRepository) GetTask(ctx context.Context, id int64) (*repository.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*repository.Task)
	return task, args.Error(1)
}

func (m *mockRepository) ListTasks(ctx context.Context) ([]*repository.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]*repository.Task)
	return tasks, args.Error(1)
}

func (m *mockRepository) SearchTasks(ctx context.Context, opts repository.SearchOptions) ([]*repository.Task, error) {
	args := m.Called(ctx, opts)
	tasks, _ := args.Get(0).([]*repository.Task)
	return tasks, args.Error(1)
}

func (m *mockRepository) UpdateTask(ctx context.Context, task *repository.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockRepository) DeleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) DeleteAllTasks(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockRepository) Close() error {
	return m.Called().Error(0)
}
