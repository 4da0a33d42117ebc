package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supdate/supdate/internals/commands"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "update",
		Args:  cobra.ExactArgs(0),
		Short: "Rebuilds the package index from the published packages",
	}, &updateRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type updateRunner struct{}

func (u *updateRunner) RunE(cmd *cobra.Command, args []string) error {
	builder, err := newRelease()
	if err != nil {
		return err
	}

	path, err := builder.UpdateIndex()
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}
