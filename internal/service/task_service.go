package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"todocli/internal/model"
)

const maxTitleLength = 255

// TaskService wraps task-related business logic: validation, existence
// checks and translation of store errors into result envelopes.
type TaskService struct {
	store TaskStore
	log   zerolog.Logger
}

func NewTaskService(store TaskStore, log zerolog.Logger) *TaskService {
	return &TaskService{store: store, log: log}
}

// Create validates and persists a new task.
func (s *TaskService) Create(ctx context.Context, task model.Task) Result {
	task.Title = strings.TrimSpace(task.Title)
	task.Description = strings.TrimSpace(task.Description)
	task.Category = strings.TrimSpace(task.Category)

	if task.Title == "" {
		return failure("Task title cannot be empty.")
	}
	if utf8.RuneCountInString(task.Title) > maxTitleLength {
		return failure("Task title cannot exceed %d characters.", maxTitleLength)
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.RecurrenceInterval == "" {
		task.RecurrenceInterval = model.RecurrenceNone
	}
	task.IsCompleted = false

	if err := s.store.Create(ctx, &task); err != nil {
		s.log.Error().Err(err).Msg("create task failed")
		return failure("Failed to create task: %v", err)
	}

	return Result{
		Success: true,
		Message: "Task '" + task.Title + "' created successfully.",
		Task:    &task,
	}
}

// List retrieves tasks matching the filter in the requested order.
func (s *TaskService) List(ctx context.Context, filter model.Filter, sort model.SortOption) Result {
	tasks, err := s.store.List(ctx, filter, sort)
	if err != nil {
		s.log.Error().Err(err).Msg("list tasks failed")
		return failure("Failed to retrieve tasks: %v", err)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Retrieved %d tasks.", len(tasks)),
		Tasks:   tasks,
	}
}

// Update applies a partial update after verifying the task exists.
func (s *TaskService) Update(ctx context.Context, taskID uint, update model.TaskUpdate) Result {
	existing, err := s.store.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failure("Task with ID %d not found.", taskID)
		}
		s.log.Error().Err(err).Uint("task_id", taskID).Msg("update lookup failed")
		return failure("Failed to update task: %v", err)
	}

	if update.IsEmpty() {
		return Result{Success: true, Message: "No changes requested.", Task: existing}
	}

	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		if trimmed == "" {
			return failure("Task title cannot be empty.")
		}
		if utf8.RuneCountInString(trimmed) > maxTitleLength {
			return failure("Task title cannot exceed %d characters.", maxTitleLength)
		}
		update.Title = &trimmed
	}
	if update.Description != nil {
		trimmed := strings.TrimSpace(*update.Description)
		update.Description = &trimmed
	}
	if update.Category != nil {
		trimmed := strings.TrimSpace(*update.Category)
		update.Category = &trimmed
	}

	updated, err := s.store.Update(ctx, taskID, update)
	if err != nil {
		s.log.Error().Err(err).Uint("task_id", taskID).Msg("update task failed")
		return failure("Failed to update task: %v", err)
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Task %d updated successfully.", taskID),
		Task:    updated,
	}
}

// Delete removes a task after verifying it exists.
func (s *TaskService) Delete(ctx context.Context, taskID uint) Result {
	if _, err := s.store.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failure("Task with ID %d not found.", taskID)
		}
		s.log.Error().Err(err).Uint("task_id", taskID).Msg("delete lookup failed")
		return failure("Failed to delete task: %v", err)
	}

	deleted, err := s.store.Delete(ctx, taskID)
	if err != nil {
		s.log.Error().Err(err).Uint("task_id", taskID).Msg("delete task failed")
		return failure("Failed to delete task: %v", err)
	}
	if !deleted {
		return failure("Failed to delete task %d.", taskID)
	}

	return Result{Success: true, Message: fmt.Sprintf("Task %d deleted successfully.", taskID)}
}

// Search finds tasks whose title or description contains the query.
func (s *TaskService) Search(ctx context.Context, query string) Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return failure("Search query cannot be empty.")
	}

	tasks, err := s.store.Search(ctx, query)
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("search tasks failed")
		return failure("Search failed: %v", err)
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Found %d tasks matching '%s'.", len(tasks), query),
		Tasks:   tasks,
	}
}

// History returns a recurring task's series: the root plus its direct
// successors, oldest first. A missing root with no children is not found.
func (s *TaskService) History(ctx context.Context, rootID uint) Result {
	tasks, err := s.store.History(ctx, rootID)
	if err != nil {
		s.log.Error().Err(err).Uint("root_id", rootID).Msg("task history failed")
		return failure("Failed to retrieve history: %v", err)
	}
	if len(tasks) == 0 {
		return failure("No history found for task %d.", rootID)
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Found %d instances in series.", len(tasks)),
		Tasks:   tasks,
	}
}

// Categories lists the distinct categories currently in use.
func (s *TaskService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list categories failed")
		return nil, err
	}
	return categories, nil
}
