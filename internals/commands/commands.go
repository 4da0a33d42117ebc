// Package commands wraps cobra commands with rich error output.
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type Command struct {
	*cobra.Command
	runner Runner
}

type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

// New wires a runner into a cobra command. Errors returned by the
// runner are rendered in an error box and terminate the program.
func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		err := run.RunE(cmd, args)
		if err == nil {
			return
		}

		var asCliErr *CliError
		if errors.As(err, &asCliErr) {
			fmt.Println(asCliErr.RichError() + "\n")
		} else {
			fmt.Println(ErrorBox(err.Error(), ""))
		}
		os.Exit(1)
	}

	return build
}
