// Package cli is the terminal surface: cobra subcommands for one-shot use
// and a numbered menu when run without arguments. All business outcomes
// arrive as service result envelopes; this package only renders them.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"todocli/internal/service"
)

// App bundles the services and streams the commands operate on.
type App struct {
	tasks *service.TaskService
	log   zerolog.Logger
	out   io.Writer
	in    *bufio.Reader
}

func New(tasks *service.TaskService, log zerolog.Logger) *App {
	return &App{
		tasks: tasks,
		log:   log,
		out:   os.Stdout,
		in:    bufio.NewReader(os.Stdin),
	}
}

// RootCommand builds the command tree. Invoked bare, the root runs the
// interactive menu loop.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "todocli",
		Short:         "Personal task tracker with recurring tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMenu(cmd.Context())
		},
	}

	root.AddCommand(
		a.newAddCmd(),
		a.newListCmd(),
		a.newSearchCmd(),
		a.newUpdateCmd(),
		a.newCompleteCmd(),
		a.newDeleteCmd(),
		a.newHistoryCmd(),
		a.newCategoriesCmd(),
	)

	return root
}

// report renders a result envelope. Failures become command errors so the
// process exits nonzero.
func (a *App) report(res service.Result) error {
	if !res.Success {
		return errors.New(res.Message)
	}

	fmt.Fprintln(a.out, res.Message)
	if len(res.Tasks) > 0 {
		renderTasks(a.out, res.Tasks)
	}
	return nil
}
