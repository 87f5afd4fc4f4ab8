package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"todocli/internal/model"
	"todocli/internal/service"
)

// runMenu drives the interactive loop: one numbered action per iteration
// until the user exits or stdin closes.
func (a *App) runMenu(ctx context.Context) error {
	fmt.Fprintln(a.out, "todocli — personal task tracker")

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(a.out, `
Main Menu:
 1. Add a new task
 2. List tasks
 3. Search tasks
 4. Update a task
 5. Toggle completion
 6. View history of a recurring task
 7. Delete a task
 0. Exit
`)

		choice, err := a.prompt("Choose an action [2]")
		if err != nil {
			return nil // stdin closed
		}
		if choice == "" {
			choice = "2"
		}

		switch choice {
		case "1":
			err = a.addInteractive(ctx)
		case "2":
			err = a.listInteractive(ctx)
		case "3":
			err = a.searchInteractive(ctx)
		case "4":
			err = a.updateInteractive(ctx)
		case "5":
			err = a.toggleInteractive(ctx)
		case "6":
			err = a.historyInteractive(ctx)
		case "7":
			err = a.deleteInteractive(ctx)
		case "0":
			fmt.Fprintln(a.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintf(a.out, "Unknown choice %q.\n", choice)
			continue
		}

		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}
}

func (a *App) addInteractive(ctx context.Context) error {
	title, err := a.prompt("Task title")
	if err != nil {
		return err
	}

	description, _ := a.prompt("Description (optional)")
	category, _ := a.prompt("Category (optional)")

	priorityRaw, _ := a.prompt("Priority (low/medium/high) [medium]")
	if priorityRaw == "" {
		priorityRaw = "medium"
	}
	priority, err := model.ParsePriority(priorityRaw)
	if err != nil {
		return err
	}

	dueDate, err := a.promptDueDate("Due date (e.g. 'tomorrow 9am', blank for none)")
	if err != nil {
		return err
	}

	recurRaw, _ := a.prompt("Recurrence (none/daily/weekly/monthly) [none]")
	if recurRaw == "" {
		recurRaw = "none"
	}
	interval, err := model.ParseRecurrence(recurRaw)
	if err != nil {
		return err
	}

	return a.report(a.tasks.Create(ctx, model.Task{
		Title:              title,
		Description:        description,
		Priority:           priority,
		Category:           category,
		DueDate:            dueDate,
		RecurrenceInterval: interval,
	}))
}

func (a *App) listInteractive(ctx context.Context) error {
	var filter model.Filter

	statusRaw, _ := a.prompt("Filter by status (pending/completed/all) [all]")
	if statusRaw != "" && statusRaw != "all" {
		status, err := model.ParseStatus(statusRaw)
		if err != nil {
			return err
		}
		filter.Status = &status
	}

	priorityRaw, _ := a.prompt("Filter by priority (low/medium/high/all) [all]")
	if priorityRaw != "" && priorityRaw != "all" {
		priority, err := model.ParsePriority(priorityRaw)
		if err != nil {
			return err
		}
		filter.Priority = &priority
	}

	sortRaw, _ := a.prompt("Sort by (date/alpha/priority) [date]")
	sort, err := model.ParseSort(sortRaw)
	if err != nil {
		return err
	}

	return a.report(a.tasks.List(ctx, filter, sort))
}

func (a *App) searchInteractive(ctx context.Context) error {
	query, err := a.prompt("Search keyword")
	if err != nil {
		return err
	}
	return a.report(a.tasks.Search(ctx, query))
}

func (a *App) updateInteractive(ctx context.Context) error {
	taskID, err := a.promptTaskID("Task ID to update")
	if err != nil {
		return err
	}

	var update model.TaskUpdate
	if value, _ := a.prompt("New title (blank to keep)"); value != "" {
		update.Title = &value
	}
	if value, _ := a.prompt("New description (blank to keep)"); value != "" {
		update.Description = &value
	}
	if value, _ := a.prompt("New category (blank to keep)"); value != "" {
		update.Category = &value
	}
	if value, _ := a.prompt("New priority (low/medium/high, blank to keep)"); value != "" {
		priority, err := model.ParsePriority(value)
		if err != nil {
			return err
		}
		update.Priority = &priority
	}
	if value, _ := a.prompt("New due date (blank to keep)"); value != "" {
		dueDate, err := ParseDueDate(value, time.Now())
		if err != nil {
			return err
		}
		update.DueDate = dueDate
	}
	if value, _ := a.prompt("New recurrence (none/daily/weekly/monthly, blank to keep)"); value != "" {
		interval, err := model.ParseRecurrence(value)
		if err != nil {
			return err
		}
		update.RecurrenceInterval = &interval
	}

	return a.report(a.tasks.Update(ctx, taskID, update))
}

func (a *App) toggleInteractive(ctx context.Context) error {
	taskID, err := a.promptTaskID("Task ID to toggle")
	if err != nil {
		return err
	}

	res := a.tasks.ToggleCompletion(ctx, taskID)
	if err := a.report(res.Result); err != nil {
		return err
	}
	if res.Spawn.Status == service.SpawnFailed {
		fmt.Fprintln(a.out, "Warning: could not create the next recurring instance.")
	}
	return nil
}

func (a *App) historyInteractive(ctx context.Context) error {
	taskID, err := a.promptTaskID("Original task ID")
	if err != nil {
		return err
	}
	return a.report(a.tasks.History(ctx, taskID))
}

func (a *App) deleteInteractive(ctx context.Context) error {
	taskID, err := a.promptTaskID("Task ID to delete")
	if err != nil {
		return err
	}

	confirm, _ := a.prompt(fmt.Sprintf("Delete task %d? (y/N)", taskID))
	if !strings.EqualFold(confirm, "y") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	return a.report(a.tasks.Delete(ctx, taskID))
}

// prompt reads one trimmed line. io.EOF means stdin closed.
func (a *App) prompt(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}

func (a *App) promptTaskID(label string) (uint, error) {
	raw, err := a.prompt(label)
	if err != nil {
		return 0, err
	}
	return parseTaskID(raw)
}

func (a *App) promptDueDate(label string) (*time.Time, error) {
	raw, err := a.prompt(label)
	if err != nil {
		return nil, err
	}
	return ParseDueDate(raw, time.Now())
}
