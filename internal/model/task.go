package model

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the importance level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities for sorting: high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// ParsePriority converts user input into a Priority.
func ParsePriority(raw string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(raw))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("unknown priority %q (expected low, medium or high)", raw)
	}
}

// RecurrenceInterval is the cadence at which a completed task respawns.
type RecurrenceInterval string

const (
	RecurrenceNone    RecurrenceInterval = "none"
	RecurrenceDaily   RecurrenceInterval = "daily"
	RecurrenceWeekly  RecurrenceInterval = "weekly"
	RecurrenceMonthly RecurrenceInterval = "monthly"
)

// ParseRecurrence converts user input into a RecurrenceInterval.
func ParseRecurrence(raw string) (RecurrenceInterval, error) {
	switch RecurrenceInterval(strings.ToLower(strings.TrimSpace(raw))) {
	case RecurrenceNone:
		return RecurrenceNone, nil
	case RecurrenceDaily:
		return RecurrenceDaily, nil
	case RecurrenceWeekly:
		return RecurrenceWeekly, nil
	case RecurrenceMonthly:
		return RecurrenceMonthly, nil
	default:
		return "", fmt.Errorf("unknown recurrence %q (expected none, daily, weekly or monthly)", raw)
	}
}

// TaskStatus is the logical completion state. Storage keeps a boolean
// is_completed column; everything above the repository speaks in statuses.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

// ParseStatus converts user input into a TaskStatus.
func ParseStatus(raw string) (TaskStatus, error) {
	switch TaskStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("unknown status %q (expected pending or completed)", raw)
	}
}

// Task represents a single item in the tracker. ParentTaskID links a task
// spawned by the recurrence engine to the completed task that produced it.
type Task struct {
	ID                 uint `gorm:"primaryKey"`
	Title              string
	Description        string
	Priority           Priority           `gorm:"type:text;default:medium;index"`
	Category           string             `gorm:"index"`
	DueDate            *time.Time         `gorm:"column:due_date;index"`
	IsCompleted        bool               `gorm:"column:is_completed;default:false;index"`
	RecurrenceInterval RecurrenceInterval `gorm:"column:recurrence_interval;type:text;default:none"`
	ParentTaskID       *uint              `gorm:"column:parent_task_id;index"`
	ReminderSent       bool               `gorm:"default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Task) TableName() string { return "tasks" }

// Status maps the stored completion flag onto the two-state enumeration.
func (t *Task) Status() TaskStatus {
	if t.IsCompleted {
		return StatusCompleted
	}
	return StatusPending
}

// TaskUpdate carries a partial update; nil fields are left untouched.
// Setting DueDate resets ReminderSent unless ReminderSent is set explicitly.
type TaskUpdate struct {
	Title              *string
	Description        *string
	Priority           *Priority
	Category           *string
	DueDate            *time.Time
	Status             *TaskStatus
	RecurrenceInterval *RecurrenceInterval
	ReminderSent       *bool
}

// IsEmpty reports whether the update would change nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Priority == nil &&
		u.Category == nil && u.DueDate == nil && u.Status == nil &&
		u.RecurrenceInterval == nil && u.ReminderSent == nil
}

// SortOption selects the ordering of a task listing.
type SortOption string

const (
	SortByDate     SortOption = "date"
	SortByAlpha    SortOption = "alpha"
	SortByPriority SortOption = "priority"
)

// ParseSort converts user input into a SortOption, defaulting to date.
func ParseSort(raw string) (SortOption, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return SortByDate, nil
	}
	switch SortOption(trimmed) {
	case SortByDate:
		return SortByDate, nil
	case SortByAlpha:
		return SortByAlpha, nil
	case SortByPriority:
		return SortByPriority, nil
	default:
		return "", fmt.Errorf("unknown sort %q (expected date, alpha or priority)", raw)
	}
}

// Filter narrows a task listing. Nil/empty fields match everything.
type Filter struct {
	Status             *TaskStatus
	Category           string
	Priority           *Priority
	ParentTaskID       *uint
	RecurrenceInterval *RecurrenceInterval
	DueBefore          *time.Time
	DueAfter           *time.Time
}
