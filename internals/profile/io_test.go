package profile

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProfile = `{
    "id": "1.19.4-forge-45.0.43",
    "time": "2023-03-27T10:00:00+00:00",
    "releaseTime": "2023-03-27T10:00:00+00:00",
    "type": "release",
    "mainClass": "cpw.mods.bootstraplauncher.BootstrapLauncher",
    "inheritsFrom": "1.19.4",
    "arguments": {
        "game": ["--launchTarget", "forgeclient"],
        "jvm": ["-p", "${library_directory}"]
    },
    "libraries": [
        {
            "name": "net.minecraftforge:forge:1.19.4-45.0.43",
            "serverreq": true
        },
        {
            "name": "org.ow2.asm:asm:9.5",
            "downloads": {
                "artifact": {
                    "size": 121863,
                    "sha1": "dc6ea1875f4d64fbc85e1691c95b96a3d8569c90",
                    "path": "org/ow2/asm/asm/9.5/asm-9.5.jar",
                    "url": "https://maven.minecraftforge.net/org/ow2/asm/asm/9.5/asm-9.5.jar"
                }
            }
        }
    ]
}`

func TestReadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/forge.json", []byte(sampleProfile), 0644))

	p, err := ReadFile(fs, "/forge.json")
	require.NoError(t, err)

	assert.Equal(t, "1.19.4-forge-45.0.43", p.ID)
	assert.Equal(t, "1.19.4", p.InheritsFrom)
	require.Len(t, p.Libraries, 2)
	assert.True(t, p.Libraries[0].Required())
	assert.Equal(t, int64(121863), p.Libraries[1].Downloads.Artifact.Size)
	// minecraftArguments is derived from arguments.game on read
	assert.Equal(t, "--launchTarget forgeclient", p.MinecraftArguments)
}

func TestReadFileRejectsDuplicateLibraries(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := `{"id":"x","libraries":[{"name":"g:a:1"},{"name":"g:a:1"}]}`
	require.NoError(t, afero.WriteFile(fs, "/p.json", []byte(doc), 0644))

	_, err := ReadFile(fs, "/p.json")
	assert.Error(t, err)
}

func TestWriteOmitsDefaults(t *testing.T) {
	p := &Profile{ID: "1.19.4", Type: "release"}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "id")
	assert.Contains(t, doc, "type")
	assert.NotContains(t, doc, "inheritsFrom")
	assert.NotContains(t, doc, "libraries")
	assert.NotContains(t, doc, "minecraftArguments")
	assert.NotContains(t, doc, "downloads")
}

func TestArgumentsRoundTripMixedEntries(t *testing.T) {
	doc := `{"game":["--demo",{"rules":[{"action":"allow","features":{"is_demo_user":true}}],"value":"--demo"}]}`

	var args Arguments
	require.NoError(t, json.Unmarshal([]byte(doc), &args))
	require.Len(t, args.Game, 2)

	_, isString := args.Game[0].AsString()
	assert.True(t, isString)
	_, isString = args.Game[1].AsString()
	assert.False(t, isString)

	// only string entries contribute to the joined form
	assert.Equal(t, "--demo", (&args).JoinGame())

	out, err := json.Marshal(&args)
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(out))
}
