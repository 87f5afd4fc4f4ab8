package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"todocli/internal/model"
)

// renderTasks prints tasks as an aligned table.
func renderTasks(w io.Writer, tasks []model.Task) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tST\tPRI\tTITLE\tCATEGORY\tDUE\tRECUR\tPARENT")
	for i := range tasks {
		task := &tasks[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			task.ID,
			statusIcon(task),
			task.Priority,
			task.Title,
			orDash(task.Category),
			formatDue(task),
			string(task.RecurrenceInterval),
			formatParent(task),
		)
	}
	tw.Flush()
}

func statusIcon(task *model.Task) string {
	if task.IsCompleted {
		return "✓"
	}
	return "○"
}

func formatDue(task *model.Task) string {
	if task.DueDate == nil {
		return "-"
	}
	return task.DueDate.Format("2006-01-02 15:04")
}

func formatParent(task *model.Task) string {
	if task.ParentTaskID == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *task.ParentTaskID)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
