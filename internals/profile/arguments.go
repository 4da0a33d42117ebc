package profile

import (
	"encoding/json"
	"strings"
)

// Arguments is the post-1.13 argument layout
type Arguments struct {
	Game []Argument `json:"game,omitempty"`
	JVM  []Argument `json:"jvm,omitempty"`
}

// Argument is a single game/jvm argument. Entries are either plain
// strings or rule objects, both round-trip untouched.
type Argument struct {
	raw json.RawMessage
}

// StringArgument wraps a plain string argument
func StringArgument(s string) Argument {
	raw, _ := json.Marshal(s)
	return Argument{raw: raw}
}

// AsString returns the value and true for plain string arguments
func (a Argument) AsString() (string, bool) {
	var s string
	if err := json.Unmarshal(a.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func (a Argument) MarshalJSON() ([]byte, error) {
	return a.raw, nil
}

func (a *Argument) UnmarshalJSON(data []byte) error {
	a.raw = append(a.raw[:0], data...)
	return nil
}

// JoinGame joins the string-valued game arguments with spaces, which is
// the legacy `minecraftArguments` form of the same list
func (a *Arguments) JoinGame() string {
	parts := make([]string, 0, len(a.Game))
	for _, arg := range a.Game {
		if s, ok := arg.AsString(); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func (a *Arguments) clone() *Arguments {
	if a == nil {
		return nil
	}
	dup := &Arguments{
		Game: append([]Argument(nil), a.Game...),
		JVM:  append([]Argument(nil), a.JVM...),
	}
	return dup
}
