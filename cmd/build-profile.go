package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/supdate/supdate/internals/commands"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "build-profile <version>",
		Args:  cobra.ExactArgs(1),
		Short: "Builds a forge or fabric launch profile",
		Long: `
Builds the launch profile for the given loader version without
packaging anything. Useful to warm the profile cache or to debug a
loader build.
`,
	}, &buildProfileRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type buildProfileRunner struct{}

func (b *buildProfileRunner) RunE(cmd *cobra.Command, args []string) error {
	prov, err := newProvider()
	if err != nil {
		return err
	}

	path, _, err := prov.AutoProfile(cmd.Context(), viper.GetString("instances"), args[0], true)
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}
