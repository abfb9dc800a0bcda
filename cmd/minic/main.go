// Command minic is the command line entry point: it parses flags, then
// hands off to the driver package.
//
// Grounded on the teacher's main.go main(): parse args, run the
// pipeline, report failure. The teacher's output-writer goroutine and
// WaitGroup exist only to serve its concurrent backend (spec.md §5
// rules that out for this core), so they have no analogue here.
package main

import (
	"fmt"
	"os"

	"minic/driver"
	"minic/internal/cliopt"
)

func main() {
	opt, err := cliopt.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("Command line argument error: %s\n", err)
		os.Exit(1)
	}

	if err := driver.Run(opt, os.Stdout); err != nil {
		os.Exit(1)
	}
}
