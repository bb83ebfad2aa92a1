package main

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	green = color.New(color.FgGreen)
	cyan  = color.New(color.FgCyan, color.Bold)
	faint = color.New(color.Faint)
)

// success prints a confirmation in green with a checkmark prefix.
func success(format string, a ...any) {
	green.Printf("✓ %s\n", fmt.Sprintf(format, a...))
}
