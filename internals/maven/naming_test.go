package maven

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormFor(t *testing.T) {
	t.Run("legacy 1.7 era repeats the game version", func(t *testing.T) {
		form := FormFor("1.7.10")
		assert.Equal(t, "forge-1.7.10-10.13.4.1614-1.7.10", form.Render("1.7.10", "10.13.4.1614"))
	})

	t.Run("1.19 era drops the forge prefix from the standard name", func(t *testing.T) {
		form := FormFor("1.19.4")
		assert.Equal(t, "1.19.4-45.0.43", form.Render("1.19.4", "45.0.43"))
		assert.Equal(t, "forge-1.19.4-45.0.43-installer", form.RenderFull("1.19.4", "45.0.43", "installer"))
	})

	t.Run("everything else uses the default form", func(t *testing.T) {
		assert.Equal(t, DefaultForm, FormFor("1.12.2"))
		assert.Equal(t, DefaultForm, FormFor("1.20.1"))
	})

	t.Run("unparsable version falls back to the default form", func(t *testing.T) {
		assert.Equal(t, DefaultForm, FormFor("22w13oneblockatatime"))
	})
}

func TestFormRenderLeavesUnknownPlaceholders(t *testing.T) {
	form := Form{Standard: "forge-{mc}-{forge}", Full: "forge-{mc}-{forge}-{type}"}
	// Render does not touch {type}; unused placeholders stay as-is
	assert.Equal(t, "forge-1.12.2-14.23.5.2860", form.Render("1.12.2", "14.23.5.2860"))
	assert.Equal(t, "forge-1.12.2-14.23.5.2860-universal", form.RenderFull("1.12.2", "14.23.5.2860", "universal"))
}
