package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseProfile() *Profile {
	return &Profile{
		ID:          "1.19.4",
		Time:        "2023-03-14T12:56:18+00:00",
		ReleaseTime: "2023-03-14T12:56:18+00:00",
		Type:        "release",
		MainClass:   "net.minecraft.client.main.Main",
		Assets:      "3",
		Libraries: []*Library{
			{Name: "com.mojang:logging:1.1.1"},
			{Name: "commons-io:commons-io:2.11.0"},
		},
	}
}

func TestMergeEmptyOverlay(t *testing.T) {
	base := baseProfile()
	base.InheritsFrom = "something"

	merged := Merge(base, &Profile{})

	// equal to the base except inheritsFrom is cleared
	assert.Equal(t, base.ID, merged.ID)
	assert.Equal(t, base.MainClass, merged.MainClass)
	assert.Equal(t, base.Assets, merged.Assets)
	require.Len(t, merged.Libraries, 2)
	assert.Equal(t, base.Libraries[0].Name, merged.Libraries[0].Name)
	assert.Empty(t, merged.InheritsFrom)

	// base untouched
	assert.Equal(t, "something", base.InheritsFrom)
}

func TestMergeOverlayWinsOnLibraryCollision(t *testing.T) {
	base := &Profile{
		ID: "1.19.4",
		Libraries: []*Library{
			{Name: "g:a:1.0", Downloads: &Downloads{Artifact: &ArtifactDownload{Sha1: "base"}}},
		},
	}
	overlay := &Profile{
		Libraries: []*Library{
			{Name: "g:a:1.0", Downloads: &Downloads{Artifact: &ArtifactDownload{Sha1: "overlay"}}},
		},
	}

	merged := Merge(base, overlay)

	require.Len(t, merged.Libraries, 1)
	assert.Equal(t, "overlay", merged.Libraries[0].Downloads.Artifact.Sha1)
}

func TestMergeLibraryOrder(t *testing.T) {
	base := &Profile{
		Libraries: []*Library{
			{Name: "base:only:1"},
			{Name: "shared:lib:1"},
			{Name: "base:other:1"},
		},
	}
	overlay := &Profile{
		Libraries: []*Library{
			{Name: "overlay:first:1"},
			{Name: "shared:lib:1"},
		},
	}

	merged := Merge(base, overlay)

	names := make([]string, 0, len(merged.Libraries))
	for _, library := range merged.Libraries {
		names = append(names, library.Name)
	}
	// overlay order first, base-only entries appended after
	assert.Equal(t, []string{"overlay:first:1", "shared:lib:1", "base:only:1", "base:other:1"}, names)
}

func TestMergeArguments(t *testing.T) {
	base := &Profile{
		Arguments: &Arguments{Game: []Argument{
			StringArgument("--username"),
			StringArgument("${auth_player_name}"),
		}},
	}
	overlay := &Profile{
		Arguments: &Arguments{Game: []Argument{
			StringArgument("--launchTarget"),
			StringArgument("forgeclient"),
		}},
	}

	merged := Merge(base, overlay)

	require.NotNil(t, merged.Arguments)
	assert.Len(t, merged.Arguments.Game, 4)
	// minecraftArguments is recomputed from the merged game list
	assert.Equal(t, "--username ${auth_player_name} --launchTarget forgeclient", merged.MinecraftArguments)
}

func TestMergeRawMinecraftArguments(t *testing.T) {
	base := &Profile{MinecraftArguments: "--username ${auth_player_name}"}
	overlay := &Profile{MinecraftArguments: "--tweakClass cpw.mods.fml.common.launcher.FMLTweaker"}

	merged := Merge(base, overlay)
	assert.Equal(t,
		"--username ${auth_player_name} --tweakClass cpw.mods.fml.common.launcher.FMLTweaker",
		merged.MinecraftArguments,
	)
}

func TestMergeScalarsAndMaps(t *testing.T) {
	base := &Profile{
		ID:        "1.12.2",
		MainClass: "net.minecraft.client.main.Main",
		Downloads: map[string]JarDownload{
			"client": {URL: "https://example.com/base-client.jar"},
			"server": {URL: "https://example.com/base-server.jar"},
		},
	}
	overlay := &Profile{
		MainClass: "net.minecraft.launchwrapper.Launch",
		Downloads: map[string]JarDownload{
			"client": {URL: "https://example.com/overlay-client.jar"},
		},
	}

	merged := Merge(base, overlay)

	assert.Equal(t, "1.12.2", merged.ID)
	assert.Equal(t, "net.minecraft.launchwrapper.Launch", merged.MainClass)
	assert.Equal(t, "https://example.com/overlay-client.jar", merged.Downloads["client"].URL)
	assert.Equal(t, "https://example.com/base-server.jar", merged.Downloads["server"].URL)
}

func TestValidateRejectsDuplicates(t *testing.T) {
	p := &Profile{
		ID: "x",
		Libraries: []*Library{
			{Name: "g:a:1.0"},
			{Name: "g:a:1.0"},
		},
	}
	assert.Error(t, p.Validate())
}

func TestValidateRejectsMalformedNames(t *testing.T) {
	p := &Profile{
		ID:        "x",
		Libraries: []*Library{{Name: "not-a-coordinate"}},
	}
	assert.Error(t, p.Validate())
}
