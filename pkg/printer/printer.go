// Package printer provides colored console output for the Scribe CLI.
package printer

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a success message in green.
func Success(format string, a ...any) {
	green.Printf("✓ "+format+"\n", a...)
}

// Info prints an informational message in the default color.
func Info(format string, a ...any) {
	fmt.Printf(format+"\n", a...)
}

// Detail prints a secondary informational message in cyan.
func Detail(format string, a ...any) {
	cyan.Printf(format+"\n", a...)
}

// Warning prints a warning message in yellow.
func Warning(format string, a ...any) {
	yellow.Printf("! "+format+"\n", a...)
}

// Error prints an error title in red to stderr and returns a matching
// error for Cobra to propagate without reprinting.
func Error(title string, err error) error {
	red.Fprintf(os.Stderr, "%s\n", title)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return fmt.Errorf("%s: %w", title, err)
	}
	return fmt.Errorf("%s", title)
}
