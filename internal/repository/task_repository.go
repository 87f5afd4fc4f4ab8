package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todocli/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return nil, fmt.Errorf("find task %d: %w", taskID, err)
	}
	return &task, nil
}

// List returns tasks matching the filter in the requested order.
func (r *TaskRepository) List(ctx context.Context, filter model.Filter, sort model.SortOption) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{})

	if filter.Status != nil {
		q = q.Where("is_completed = ?", *filter.Status == model.StatusCompleted)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Priority != nil {
		q = q.Where("priority = ?", *filter.Priority)
	}
	if filter.ParentTaskID != nil {
		q = q.Where("parent_task_id = ?", *filter.ParentTaskID)
	}
	if filter.RecurrenceInterval != nil {
		q = q.Where("recurrence_interval = ?", *filter.RecurrenceInterval)
	}
	if filter.DueBefore != nil {
		q = q.Where("due_date <= ?", *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		q = q.Where("due_date >= ?", *filter.DueAfter)
	}

	switch sort {
	case model.SortByPriority:
		q = q.Order(`CASE priority
			WHEN 'high' THEN 1
			WHEN 'medium' THEN 2
			WHEN 'low' THEN 3
			ELSE 4 END`).Order("created_at DESC")
	case model.SortByAlpha:
		q = q.Order("title ASC")
	default:
		q = q.Order("due_date ASC NULLS LAST").Order("created_at DESC")
	}

	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies a partial update and returns the refreshed row. Supplying a
// due date resets reminder_sent unless the update sets it explicitly.
func (r *TaskRepository) Update(ctx context.Context, taskID uint, update model.TaskUpdate) (*model.Task, error) {
	fields := map[string]any{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Priority != nil {
		fields["priority"] = *update.Priority
	}
	if update.Category != nil {
		fields["category"] = *update.Category
	}
	if update.DueDate != nil {
		fields["due_date"] = *update.DueDate
		fields["reminder_sent"] = false
	}
	if update.Status != nil {
		fields["is_completed"] = *update.Status == model.StatusCompleted
	}
	if update.RecurrenceInterval != nil {
		fields["recurrence_interval"] = *update.RecurrenceInterval
	}
	if update.ReminderSent != nil {
		fields["reminder_sent"] = *update.ReminderSent
	}

	if len(fields) == 0 {
		return r.FindByID(ctx, taskID)
	}

	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("update task %d: %w", taskID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("update task %d: %w", taskID, gorm.ErrRecordNotFound)
	}

	return r.FindByID(ctx, taskID)
}

// Delete removes a task and reports whether a row was actually deleted.
func (r *TaskRepository) Delete(ctx context.Context, taskID uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, taskID)
	if res.Error != nil {
		return false, fmt.Errorf("delete task %d: %w", taskID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Search matches the query as a case-insensitive substring of title or
// description, newest first.
func (r *TaskRepository) Search(ctx context.Context, query string) ([]model.Task, error) {
	pattern := "%" + query + "%"

	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("title LIKE ? OR description LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	return tasks, nil
}

// History returns the root task plus its direct children, oldest first. The
// lookup is deliberately one hop deep: a successor of a successor carries the
// intermediate task's id as parent, not the root's, and is not included.
func (r *TaskRepository) History(ctx context.Context, rootID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("id = ? OR parent_task_id = ?", rootID, rootID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("task history %d: %w", rootID, err)
	}
	return tasks, nil
}

// DueSoon returns pending, un-reminded tasks due between now and the end of
// the reminder window.
func (r *TaskRepository) DueSoon(ctx context.Context, now time.Time, window time.Duration) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("is_completed = ? AND reminder_sent = ?", false, false).
		Where("due_date IS NOT NULL AND due_date >= ? AND due_date <= ?", now, now.Add(window)).
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("due tasks: %w", err)
	}
	return tasks, nil
}

// MarkReminderSent flags a task as already notified.
func (r *TaskRepository) MarkReminderSent(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("reminder_sent", true).Error; err != nil {
		return fmt.Errorf("mark reminder sent %d: %w", taskID, err)
	}
	return nil
}

// ListCategories returns the distinct non-empty categories in use.
func (r *TaskRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
