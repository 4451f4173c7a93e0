package output

import (
	"os"
	"strings"
)

// Symbols are the glyphs used in human-readable output
type Symbols struct {
	Success string
	Error   string
	Warning string
	Pending string
	Bullet  string
	Dash    string
	Rule    string
	Line    string
}

// UnicodeSymbols suit modern terminals
var UnicodeSymbols = Symbols{
	Success: "✓",
	Error:   "✗",
	Warning: "⚠",
	Pending: "○",
	Bullet:  "•",
	Dash:    "—",
	Rule:    "━",
	Line:    "─",
}

// ASCIISymbols are the fallback for limited terminals
var ASCIISymbols = Symbols{
	Success: "[OK]",
	Error:   "[ERR]",
	Warning: "[!]",
	Pending: "[ ]",
	Bullet:  "*",
	Dash:    "-",
	Rule:    "=",
	Line:    "-",
}

// GetSymbols picks a symbol set from the locale and TERM
func GetSymbols() Symbols {
	if supportsUnicode() {
		return UnicodeSymbols
	}
	return ASCIISymbols
}

func supportsUnicode() bool {
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		val := strings.ToLower(os.Getenv(env))
		if strings.Contains(val, "utf-8") || strings.Contains(val, "utf8") {
			return true
		}
	}

	term := os.Getenv("TERM")
	for _, t := range []string{"xterm", "rxvt", "screen", "tmux", "linux", "konsole", "gnome", "alacritty", "kitty", "wezterm"} {
		if strings.Contains(term, t) {
			return true
		}
	}
	return false
}
