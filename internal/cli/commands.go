package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"todocli/internal/model"
	"todocli/internal/service"
)

func (a *App) newAddCmd() *cobra.Command {
	var (
		description string
		priority    string
		category    string
		due         string
		recur       string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.addInteractive(cmd.Context())
			}

			prio, err := model.ParsePriority(priority)
			if err != nil {
				return err
			}
			interval, err := model.ParseRecurrence(recur)
			if err != nil {
				return err
			}
			dueDate, err := ParseDueDate(due, time.Now())
			if err != nil {
				return err
			}

			return a.report(a.tasks.Create(cmd.Context(), model.Task{
				Title:              args[0],
				Description:        description,
				Priority:           prio,
				Category:           category,
				DueDate:            dueDate,
				RecurrenceInterval: interval,
			}))
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "task description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "priority (low, medium, high)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "task category")
	cmd.Flags().StringVar(&due, "due", "", "due date, natural language or YYYY-MM-DD [HH:MM]")
	cmd.Flags().StringVarP(&recur, "recurrence", "r", "none", "recurrence (none, daily, weekly, monthly)")

	return cmd
}

func (a *App) newListCmd() *cobra.Command {
	var (
		status   string
		priority string
		category string
		sortBy   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with optional filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter model.Filter
			if status != "" && status != "all" {
				parsed, err := model.ParseStatus(status)
				if err != nil {
					return err
				}
				filter.Status = &parsed
			}
			if priority != "" && priority != "all" {
				parsed, err := model.ParsePriority(priority)
				if err != nil {
					return err
				}
				filter.Priority = &parsed
			}
			filter.Category = category

			sort, err := model.ParseSort(sortBy)
			if err != nil {
				return err
			}

			return a.report(a.tasks.List(cmd.Context(), filter, sort))
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "all", "filter by status (pending, completed, all)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "all", "filter by priority (low, medium, high, all)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	cmd.Flags().StringVar(&sortBy, "sort", "date", "sort order (date, alpha, priority)")

	return cmd
}

func (a *App) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search tasks by title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.report(a.tasks.Search(cmd.Context(), args[0]))
		},
	}
}

func (a *App) newUpdateCmd() *cobra.Command {
	var (
		title       string
		description string
		priority    string
		category    string
		due         string
		recur       string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an existing task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			var update model.TaskUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("desc") {
				update.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				parsed, err := model.ParsePriority(priority)
				if err != nil {
					return err
				}
				update.Priority = &parsed
			}
			if cmd.Flags().Changed("category") {
				update.Category = &category
			}
			if cmd.Flags().Changed("due") {
				dueDate, err := ParseDueDate(due, time.Now())
				if err != nil {
					return err
				}
				update.DueDate = dueDate
			}
			if cmd.Flags().Changed("recurrence") {
				parsed, err := model.ParseRecurrence(recur)
				if err != nil {
					return err
				}
				update.RecurrenceInterval = &parsed
			}

			return a.report(a.tasks.Update(cmd.Context(), taskID, update))
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "desc", "d", "", "new description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority (low, medium, high)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVar(&due, "due", "", "new due date, natural language or YYYY-MM-DD [HH:MM]")
	cmd.Flags().StringVarP(&recur, "recurrence", "r", "", "new recurrence (none, daily, weekly, monthly)")

	return cmd
}

func (a *App) newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"toggle", "done"},
		Short:   "Toggle a task between pending and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			res := a.tasks.ToggleCompletion(cmd.Context(), taskID)
			if err := a.report(res.Result); err != nil {
				return err
			}
			if res.Spawn.Status == service.SpawnFailed {
				fmt.Fprintln(a.out, "Warning: could not create the next recurring instance.")
			}
			return nil
		},
	}
}

func (a *App) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return a.report(a.tasks.Delete(cmd.Context(), taskID))
		},
	}
}

func (a *App) newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show a recurring task and its direct successors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return a.report(a.tasks.History(cmd.Context(), taskID))
		},
	}
}

func (a *App) newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := a.tasks.Categories(cmd.Context())
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				fmt.Fprintln(a.out, "No categories yet.")
				return nil
			}
			for _, category := range categories {
				fmt.Fprintln(a.out, category)
			}
			return nil
		},
	}
}

func parseTaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return uint(id), nil
}
