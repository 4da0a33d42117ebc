package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supdate/supdate/internals/commands"
	"github.com/supdate/supdate/internals/release"
)

func TestInitConfigReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".supdate.toml")
	require.NoError(t, os.WriteFile(path, []byte("packages-url = \"https://packages.test/\"\n"), 0644))

	cfgFile = path
	defer func() { cfgFile = "" }()

	initConfig()
	assert.Equal(t, path, viper.ConfigFileUsed())
	assert.Equal(t, "https://packages.test/", viper.GetString("packages-url"))
}

func TestInitConfigEnvOverride(t *testing.T) {
	t.Setenv("SUPDATE_LIBRARIES_URL", "https://libraries.test/")

	initConfig()
	assert.Equal(t, "https://libraries.test/", viper.GetString("libraries-url"))
}

func TestRichPackageError(t *testing.T) {
	t.Run("missing instance gets suggestions", func(t *testing.T) {
		err := richPackageError(&release.ErrMissingInstance{Name: "demo", Path: "instances/demo"})

		var cliErr *commands.CliError
		require.ErrorAs(t, err, &cliErr)
		require.NotEmpty(t, cliErr.Suggestions)
		assert.Contains(t, cliErr.Suggestions[0], "instances/demo")
	})

	t.Run("malformed exclusions get help text", func(t *testing.T) {
		err := richPackageError(&release.ErrMalformedExclusions{
			Path: "instances/demo/exclude.json",
			Err:  errors.New("unexpected end of JSON input"),
		})

		var cliErr *commands.CliError
		require.ErrorAs(t, err, &cliErr)
		assert.NotEmpty(t, cliErr.Help)
	})

	t.Run("anything else passes through", func(t *testing.T) {
		plain := errors.New("network down")
		assert.Equal(t, plain, richPackageError(plain))
	})
}
