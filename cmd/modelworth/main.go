// Modelworth CLI entry point
//
// Modelworth (mw) joins LLM leaderboard rows with provider pricing catalogs
// and scores models by capability per dollar.
package main

import "github.com/jbctechsolutions/modelworth/internal/presentation/cli/commands"

func main() {
	commands.Execute()
}
