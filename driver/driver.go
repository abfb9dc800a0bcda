// Package driver runs the compilation pipeline end to end: read source,
// parse (external, see syntax.Parse), analyze, generate LLVM bitcode,
// then shell out to a native IR compiler and a system linker to produce
// an executable.
//
// Grounded on the teacher's main.go run(opt util.Options) error: the
// same read/parse/typecheck/generate staging, collapsed into a single
// sequential function since spec.md §5 rules out the teacher's
// sync.WaitGroup output writer and worker-pool codegen for this core.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"minic/codegen"
	"minic/internal/cliopt"
	"minic/sema"
	"minic/syntax"
)

// bcPath and objPath are the fixed intermediate artifact names spec.md
// §6.2/§6.3 specifies: "out.bc" and "out.o" in the current working
// directory, regardless of the final executable's name.
const (
	bcPath  = "out.bc"
	objPath = "out.o"
)

// Run executes one compilation: opt.Src is read and parsed, the result
// is type-checked, and on success lowered to opt.Out via the external
// "llc" IR-to-object compiler and "cc" system linker (spec.md §6.4).
// Verbose progress, if requested, is written to w.
//
// A semantic failure is reported the way spec.md §6.2 requires: a
// single line "Error: <reason>" is written to w, and Run returns a
// non-nil error so the caller can choose an exit code. It is not a Go
// panic or a wrapped stack trace — the fixed reason string is the
// entire diagnostic.
func Run(opt cliopt.Options, w io.Writer) error {
	src, err := os.ReadFile(opt.Src)
	if err != nil {
		return fmt.Errorf("driver: reading %s: %w", opt.Src, err)
	}

	if syntax.Parse == nil {
		return errors.New("driver: no parser registered (syntax.Parse is nil); " +
			"link in a parser generator's output before calling driver.Run")
	}
	if opt.Verbose {
		fmt.Fprintf(w, "parsing %s\n", opt.Src)
	}
	prog, err := syntax.Parse(src)
	if err != nil {
		return fmt.Errorf("driver: parse error: %w", err)
	}

	if opt.Verbose {
		fmt.Fprintln(w, "running semantic analysis")
	}
	if err := sema.Analyze(prog); err != nil {
		fmt.Fprintf(w, "Error: %s\n", err)
		return err
	}

	if opt.Verbose {
		fmt.Fprintf(w, "generating %s\n", bcPath)
	}
	moduleName := strings.TrimSuffix(filepath.Base(opt.Src), filepath.Ext(opt.Src))
	if err := codegen.Generate(prog, moduleName, bcPath); err != nil {
		return fmt.Errorf("driver: codegen: %w", err)
	}
	if opt.Clean {
		defer os.Remove(bcPath)
	}

	if opt.Verbose {
		fmt.Fprintf(w, "compiling %s -> %s\n", bcPath, objPath)
	}
	if err := run(w, "llc", "-filetype=obj", bcPath, "-o", objPath); err != nil {
		return fmt.Errorf("driver: native IR compiler: %w", err)
	}
	if opt.Clean {
		defer os.Remove(objPath)
	}

	if opt.Verbose {
		fmt.Fprintf(w, "linking %s -> %s\n", objPath, opt.Out)
	}
	if err := run(w, "cc", objPath, "-o", opt.Out); err != nil {
		return fmt.Errorf("driver: linker: %w", err)
	}
	if opt.Clean {
		os.Remove(bcPath)
		os.Remove(objPath)
	}
	return nil
}

// run shells out to an external collaborator named in spec.md §6.4. Its
// own stdout/stderr are forwarded to w so a toolchain failure is visible
// to the caller; the driver does not attempt to interpret it.
func run(w io.Writer, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = w
	cmd.Stderr = w
	return cmd.Run()
}
