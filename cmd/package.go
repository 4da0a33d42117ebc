package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supdate/supdate/internals/commands"
	"github.com/supdate/supdate/internals/release"
)

func init() {
	runner := &packageRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "package <name>",
		Args:  cobra.ExactArgs(1),
		Short: "Packages a modpack instance and refreshes the index",
		Long: `
Builds the launch profile for the named instance, collects its mods,
config and scripts into a distributable package and refreshes the
package index.
`,
	}, runner)

	cmd.Flags().StringVar(&runner.version, "version", "", "loader version to build with (detected when omitted)")
	cmd.Flags().BoolVar(&runner.forceBuild, "force-build", false, "rebuild the launch profile even when cached")

	rootCmd.AddCommand(cmd.Command)
}

type packageRunner struct {
	version    string
	forceBuild bool
}

func (p *packageRunner) RunE(cmd *cobra.Command, args []string) error {
	builder, err := newRelease()
	if err != nil {
		return err
	}

	path, err := builder.BuildPackage(cmd.Context(), args[0], p.version, p.forceBuild)
	if err != nil {
		return richPackageError(err)
	}

	fmt.Println(path)
	return nil
}

// richPackageError upgrades the known build failures to CLI errors with
// a hint on how to fix them
func richPackageError(err error) error {
	var missing *release.ErrMissingInstance
	if errors.As(err, &missing) {
		return &commands.CliError{
			Text: err.Error(),
			Code: "missing-instance",
			Suggestions: []string{
				fmt.Sprintf("create %s and put the instance files there", missing.Path),
				"pass --instances if your instances live somewhere else",
			},
		}
	}

	var malformed *release.ErrMalformedExclusions
	if errors.As(err, &malformed) {
		return &commands.CliError{
			Text: err.Error(),
			Code: "malformed-exclusions",
			Help: `exclude.json has to be a JSON object with a list valued "exclude" key`,
		}
	}

	return err
}
