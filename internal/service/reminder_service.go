package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"todocli/internal/model"
	"todocli/internal/notify"
)

// ReminderService finds tasks that are about to be due and pushes a
// notification for them. Delivery is fire-and-forget: a failed send is
// logged and the tasks are still marked so they are not re-notified.
type ReminderService struct {
	store    ReminderStore
	notifier notify.Notifier
	window   time.Duration
	log      zerolog.Logger
}

func NewReminderService(store ReminderStore, notifier notify.Notifier, window time.Duration, log zerolog.Logger) *ReminderService {
	if window <= 0 {
		window = 30 * time.Minute
	}
	return &ReminderService{store: store, notifier: notifier, window: window, log: log}
}

// CheckDueTasks notifies about pending tasks due within the reminder window
// that have not been notified yet, and returns how many were covered.
func (s *ReminderService) CheckDueTasks(ctx context.Context, now time.Time) (int, error) {
	tasks, err := s.store.DueSoon(ctx, now, s.window)
	if err != nil {
		return 0, fmt.Errorf("check due tasks: %w", err)
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	title, message := summarizeDue(tasks)
	if err := s.notifier.Send(title, message); err != nil {
		s.log.Warn().Err(err).Msg("notification delivery failed")
	}

	for _, task := range tasks {
		if err := s.store.MarkReminderSent(ctx, task.ID); err != nil {
			s.log.Warn().Err(err).Uint("task_id", task.ID).Msg("failed to mark reminder sent")
		}
	}

	s.log.Info().Int("count", len(tasks)).Msg("notified about upcoming tasks")
	return len(tasks), nil
}

func summarizeDue(tasks []model.Task) (title, message string) {
	if len(tasks) == 1 {
		task := tasks[0]
		return "Task Due Soon",
			fmt.Sprintf("'%s' is due at %s", task.Title, task.DueDate.Format("15:04"))
	}
	return fmt.Sprintf("%d Tasks Due Soon", len(tasks)),
		fmt.Sprintf("You have %d tasks due soon.", len(tasks))
}
