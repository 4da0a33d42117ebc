package commands

import (
	"os"
	"runtime"
)

var emojiSupport = true

func init() {
	// everything that is not windows usually has emoji support
	if runtime.GOOS != "windows" {
		return
	}

	// raw cmd or powershell set SESSIONNAME, windows terminal does not
	if os.Getenv("SESSIONNAME") != "" {
		emojiSupport = false
	}
}

// Emoji returns the given string if the current terminal (probably)
// supports it
func Emoji(e string) string {
	if emojiSupport {
		return e
	}
	return ""
}
