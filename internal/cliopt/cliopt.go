// Package cliopt hand-parses command line arguments the way the
// teacher's util.ParseArgs does: a manual walk of os.Args with
// text/tabwriter for the help text, rather than a flags package. CLI
// argument handling is out of scope for the core compiler, but the
// teacher never reaches for a flags library for this shape of CLI
// either, so neither do we.
package cliopt

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// Options holds the parsed command line.
type Options struct {
	Src     string // Path to the source file to compile.
	Out     string // Path to the linked output executable. Defaults to "out".
	Verbose bool   // Print driver progress to stdout.
	Clean   bool   // Delete the intermediate .bc and .o artifacts after linking.
}

const appVersion = "minic 1.0"

// Parse parses args (typically os.Args[1:]). The source path is always
// the final positional argument. With no flags, a run matches spec.md
// §6.2's documented artifact contract exactly: out.bc, out.o, and out
// are all left behind in the current working directory.
func Parse(args []string) (Options, error) {
	opt := Options{Out: "out"}
	if len(args) == 0 {
		return opt, fmt.Errorf("no source file given")
	}

	for i1 := 0; i1 < len(args)-1; i1++ {
		switch args[i1] {
		case "-h", "-help", "--help":
			printHelp()
			os.Exit(0)
		case "-v", "-version", "--version":
			fmt.Println(appVersion)
			os.Exit(0)
		case "-verbose", "-vb":
			opt.Verbose = true
		case "-S":
			opt.Clean = true
		case "-o", "-out":
			if i1+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i1])
			}
			if strings.HasPrefix(args[i1+1], "-") {
				return opt, fmt.Errorf("expected path to output file, got new flag %s", args[i1+1])
			}
			opt.Out = args[i1+1]
			i1++
		default:
			return opt, fmt.Errorf("unexpected flag: %s", args[i1])
		}
	}
	opt.Src = args[len(args)-1]
	if strings.HasPrefix(opt.Src, "-") {
		return opt, fmt.Errorf("expected path to source file, got flag %s", opt.Src)
	}
	return opt, nil
}

func printHelp() {
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "-h, -help\tPrints this help message and exits.")
	_, _ = fmt.Fprintln(w, "-o, -out\tPath of the linked output executable. Defaults to out.")
	_, _ = fmt.Fprintln(w, "-S\tDelete the intermediate .bc and .o artifacts after linking.")
	_, _ = fmt.Fprintln(w, "-v, -version\tPrints the compiler version and exits.")
	_, _ = fmt.Fprintln(w, "-verbose, -vb\tPrint each compilation stage to stdout as it runs.")
	_ = w.Flush()
}
