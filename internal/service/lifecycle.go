package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todocli/internal/model"
	"todocli/internal/recurrence"
)

// ToggleCompletion flips a task between pending and completed. When the flip
// is pending -> completed and the task recurs, a successor task is created
// and linked to this one via ParentTaskID.
//
// The status update and the successor creation are two independent writes:
// once the status change is committed the toggle reports success even if the
// spawn fails. The spawn outcome is carried on the result so callers can see
// the difference without reading logs.
func (s *TaskService) ToggleCompletion(ctx context.Context, taskID uint) ToggleResult {
	existing, err := s.store.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ToggleResult{Result: failure("Task with ID %d not found.", taskID)}
		}
		s.log.Error().Err(err).Uint("task_id", taskID).Msg("toggle lookup failed")
		return ToggleResult{Result: failure("Failed to toggle status: %v", err)}
	}

	// Strict toggle: the new status is always the negation of the current one.
	completing := !existing.IsCompleted
	newStatus := model.StatusPending
	if completing {
		newStatus = model.StatusCompleted
	}

	updated, err := s.store.Update(ctx, taskID, model.TaskUpdate{Status: &newStatus})
	if err != nil {
		s.log.Error().Err(err).Uint("task_id", taskID).Msg("toggle update failed")
		return ToggleResult{Result: failure("Failed to toggle status: %v", err)}
	}

	var spawn SpawnOutcome
	if completing && updated.RecurrenceInterval != model.RecurrenceNone {
		spawn = s.spawnSuccessor(ctx, updated)
	}

	message := fmt.Sprintf("Task %d marked as %s.", taskID, newStatus)
	if spawn.Status == SpawnCreated {
		message += fmt.Sprintf(" New recurring instance created: %d.", spawn.Successor.ID)
	}

	return ToggleResult{
		Result: Result{Success: true, Message: message, Task: updated},
		Spawn:  spawn,
	}
}

// spawnSuccessor creates the next instance of a recurring task. The successor
// copies the completed task's attributes; only the due date moves forward. A
// completed task without a due date still spawns, just with no due date.
func (s *TaskService) spawnSuccessor(ctx context.Context, completed *model.Task) SpawnOutcome {
	var nextDue *time.Time
	if completed.DueDate != nil {
		if next, ok := recurrence.NextDue(*completed.DueDate, completed.RecurrenceInterval); ok {
			nextDue = &next
		}
	}

	parentID := completed.ID
	successor := model.Task{
		Title:              completed.Title,
		Description:        completed.Description,
		Priority:           completed.Priority,
		Category:           completed.Category,
		DueDate:            nextDue,
		RecurrenceInterval: completed.RecurrenceInterval,
		ParentTaskID:       &parentID,
	}

	if err := s.store.Create(ctx, &successor); err != nil {
		s.log.Warn().Err(err).Uint("parent_id", completed.ID).
			Msg("failed to create recurring task instance")
		return SpawnOutcome{Status: SpawnFailed, Err: err}
	}

	s.log.Info().Uint("task_id", successor.ID).Uint("parent_id", completed.ID).
		Msg("created recurring task instance")
	return SpawnOutcome{Status: SpawnCreated, Successor: &successor}
}
