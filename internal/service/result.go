package service

import (
	"context"
	"fmt"
	"time"

	"todocli/internal/model"
)

// TaskStore is the persistence surface the services depend on. It is
// implemented by repository.TaskRepository; tests substitute fakes.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, taskID uint) (*model.Task, error)
	List(ctx context.Context, filter model.Filter, sort model.SortOption) ([]model.Task, error)
	Update(ctx context.Context, taskID uint, update model.TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, taskID uint) (bool, error)
	Search(ctx context.Context, query string) ([]model.Task, error)
	History(ctx context.Context, rootID uint) ([]model.Task, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// ReminderStore is the slice of the store the reminder check needs.
type ReminderStore interface {
	DueSoon(ctx context.Context, now time.Time, window time.Duration) ([]model.Task, error)
	MarkReminderSent(ctx context.Context, taskID uint) error
}

// Result is the uniform envelope returned by every service operation.
type Result struct {
	Success bool
	Message string
	Task    *model.Task
	Tasks   []model.Task
}

func failure(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// SpawnStatus tags the outcome of the recurrence spawn step of a toggle.
type SpawnStatus int

const (
	// SpawnNotAttempted means no successor was due: the task is not
	// recurring or the transition was completed -> pending.
	SpawnNotAttempted SpawnStatus = iota
	// SpawnCreated means a successor task was created.
	SpawnCreated
	// SpawnFailed means successor creation failed. The toggle itself still
	// succeeded; Err carries the cause.
	SpawnFailed
)

// SpawnOutcome reports what the recurrence step did during a toggle.
type SpawnOutcome struct {
	Status    SpawnStatus
	Successor *model.Task
	Err       error
}

// ToggleResult is the envelope for completion toggles, extended with the
// spawn outcome so callers can observe soft spawn failures.
type ToggleResult struct {
	Result
	Spawn SpawnOutcome
}
