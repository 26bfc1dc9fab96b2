package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Banner is printed above the credential guide
const Banner = `
  ┌─────────────────────────────────────┐
  │  unsplash-dl  ·  image downloader   │
  └─────────────────────────────────────┘
`

var (
	mu           sync.Mutex
	out          io.Writer = os.Stdout
	errOut       io.Writer = os.Stderr
	quiet        bool
	colorEnabled = true
)

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

// colorize returns a function that wraps text with ANSI color codes
// while color output is enabled
func colorize(colorString string) func(string) string {
	return func(text string) string {
		mu.Lock()
		enabled := colorEnabled
		mu.Unlock()
		if !enabled {
			return text
		}
		return fmt.Sprintf(colorString, text)
	}
}

// SetOutput redirects regular and error output. Nil keeps the current writer.
func SetOutput(stdout, stderr io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if stdout != nil {
		out = stdout
	}
	if stderr != nil {
		errOut = stderr
	}
}

// SetQuiet suppresses everything except errors
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// IsQuiet reports whether quiet mode is on
func IsQuiet() bool {
	mu.Lock()
	defer mu.Unlock()
	return quiet
}

// SetColor enables or disables ANSI colors
func SetColor(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	colorEnabled = enabled
}

func printOut(s string) {
	mu.Lock()
	w, q := out, quiet
	mu.Unlock()
	if q {
		return
	}
	fmt.Fprint(w, s)
}

// PrintBanner prints the banner with color
func PrintBanner() {
	printOut(Cyan(Banner))
}

// PrintError prints an error message in red to the error output.
// Errors are printed even in quiet mode.
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	mu.Lock()
	w := errOut
	mu.Unlock()
	fmt.Fprintln(w, Red(msg))
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	printOut(Green(msg) + "\n")
}

// PrintInfo prints a label and value pair
func PrintInfo(label string, value string) {
	printOut(fmt.Sprintf("%s: %s\n", Cyan(label), Yellow(value)))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	printOut(Yellow(msg) + "\n")
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	printOut(Magenta(msg) + "\n")
}
