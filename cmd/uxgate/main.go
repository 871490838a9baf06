// uxgate - Mobile UX Handoff Validation Gate
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/uxgate

package main

import (
	"os"

	"github.com/ariel-frischer/uxgate/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
