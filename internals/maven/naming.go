package maven

import "strings"

// Form is a pair of filename templates for loader build artifacts.
// Standard carries no build-type suffix, Full has a `{type}` placeholder
// for the installer/universal/server/client variants.
type Form struct {
	Standard string
	Full     string
}

// DefaultForm is the naming scheme used by every version not covered by
// a specific range below
var DefaultForm = Form{
	Standard: "forge-{mc}-{forge}",
	Full:     "forge-{mc}-{forge}-{type}",
}

type formRule struct {
	versions Range
	form     Form
}

// Naming conventions changed twice over the years. First matching range
// wins, the table order is significant.
var formTable = []formRule{
	{
		versions: MustParseRange("[1.7, 1.7.10]"),
		form: Form{
			Standard: "forge-{mc}-{forge}-{mc}",
			Full:     "forge-{mc}-{forge}-{mc}-{type}",
		},
	},
	{
		versions: MustParseRange("[1.19, 1.19.4]"),
		form: Form{
			Standard: "{mc}-{forge}",
			Full:     DefaultForm.Full,
		},
	},
}

// FormFor resolves the naming form for a game version
func FormFor(gameVersion string) Form {
	for _, rule := range formTable {
		if rule.versions.ContainsString(gameVersion) {
			return rule.form
		}
	}
	return DefaultForm
}

// Render substitutes the `{mc}` and `{forge}` placeholders of a template.
// Substitution is literal, leftover placeholders are not an error.
func (f Form) Render(gameVersion string, forgeVersion string) string {
	return strings.NewReplacer(
		"{mc}", gameVersion,
		"{forge}", forgeVersion,
	).Replace(f.Standard)
}

// RenderFull substitutes `{mc}`, `{forge}` and `{type}` in the full template
func (f Form) RenderFull(gameVersion string, forgeVersion string, buildType string) string {
	return strings.NewReplacer(
		"{mc}", gameVersion,
		"{forge}", forgeVersion,
		"{type}", buildType,
	).Replace(f.Full)
}
