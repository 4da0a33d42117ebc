package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/supdate/supdate/internals/cmdlog"
	"github.com/supdate/supdate/internals/fabric"
	"github.com/supdate/supdate/internals/forge"
	"github.com/supdate/supdate/internals/provider"
	"github.com/supdate/supdate/internals/release"
)

// Version is set by the build
var Version = "dev"

var logger *cmdlog.Logger = cmdlog.New()

var (
	cfgFile       string
	disableColors bool
)

var rootCmd = &cobra.Command{
	Version: Version,
	Use:     "supdate",
	Short:   "Modpack distribution builder",
	Long:    "Builds launcher profiles and distributable modpack packages from local instances",

	Example: `
  supdate package my-pack
  supdate build-profile 1.12.2-14.23.5.2860
  supdate update`,
}

var completionCmd = &cobra.Command{
	Use:   "completion",
	Args:  cobra.MaximumNArgs(1),
	Short: "Output shell completion code for bash",
	Run: func(cmd *cobra.Command, args []string) {
		rootCmd.GenBashCompletion(os.Stdout)
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(completionCmd)

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&disableColors, "no-color", false, "disable color output")
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./.supdate.toml)")
	flags.String("instances", "./instances/", "directory holding the modpack instances")
	flags.String("forge", "./forge/", "working directory for forge installer output")
	flags.String("packages", "./web/packages/", "directory the packages are published to")
	flags.String("libraries", "./web/libraries/", "directory the libraries are published to")
	flags.String("packages-url", "https://packages.myang2.com/", "public url of the packages directory")
	flags.String("libraries-url", "https://libraries.myang2.com/", "public url of the libraries directory")
	flags.String("provider", "forge", "loader to build profiles with (forge or fabric)")

	viper.BindPFlags(flags)
}

// initConfig reads in the config file and matching env variables
func initConfig() {
	if disableColors || os.Getenv("CI") != "" {
		color.Disable()
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search ".supdate" in the working directory and home.
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".supdate")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("supdate")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logger.Log("using config file: " + viper.ConfigFileUsed())
	}
}

// newProvider assembles the configured loader provider
func newProvider() (provider.Provider, error) {
	forgeProvider := forge.NewProvider(
		viper.GetString("forge"),
		viper.GetString("libraries"),
		viper.GetString("libraries-url"),
	)
	forgeProvider.Logger = logger

	fabricProvider := fabric.NewProvider()
	fabricProvider.Logger = logger

	store := provider.NewStore(forgeProvider, fabricProvider)
	return store.Get(viper.GetString("provider"))
}

// newRelease assembles the release builder around the configured
// provider and directory layout
func newRelease() (*release.Builder, error) {
	prov, err := newProvider()
	if err != nil {
		return nil, err
	}

	builder := release.NewBuilder(
		viper.GetString("instances"),
		viper.GetString("packages"),
		viper.GetString("packages-url"),
		prov,
	)
	builder.Logger = logger
	return builder, nil
}
