// Command levelforge asks a local language model for new logic-gate puzzle
// levels, validates what it returns and writes accepted levels for the game.
//
// Running it without a subcommand generates the next level once:
//
//	levelforge                       # level 9 into ../src/levels
//	levelforge --level 10 --prior NOT,AND,OR
//	levelforge validate ../src/levels/level9.js
//	levelforge worker                # serve the Temporal workflow
//	levelforge submit --level 10 --wait
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
