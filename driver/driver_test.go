package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"minic/internal/cliopt"
	"minic/syntax"
)

// withParser registers a fake syntax.Parse for the duration of a test and
// restores whatever was there before, so tests never leak a stub parser
// into other packages' test runs.
func withParser(t *testing.T, fn func([]byte) (*syntax.Program, error)) {
	t.Helper()
	prev := syntax.Parse
	syntax.Parse = fn
	t.Cleanup(func() { syntax.Parse = prev })
}

func TestRunNoParserRegistered(t *testing.T) {
	withParser(t, nil)

	dir := t.TempDir()
	src := filepath.Join(dir, "prog.c")
	if err := os.WriteFile(src, []byte("int x;"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var buf bytes.Buffer
	err := Run(cliopt.Options{Src: src, Out: filepath.Join(dir, "a.out")}, &buf)
	if err == nil {
		t.Fatal("Run() = nil error, want failure with no parser registered")
	}
}

func TestRunSemanticFailureReportsReason(t *testing.T) {
	withParser(t, func(src []byte) (*syntax.Program, error) {
		// "int x; int x;" — a duplicate top-level declaration,
		// regardless of src's actual bytes: this fake parser always
		// hands back the same malformed program so the test can
		// target sema's reporting path without a real grammar.
		return &syntax.Program{
			Globals: []syntax.VarDecl{
				syntax.ScalarVarDecl{Type: syntax.Int, Name: "x"},
				syntax.ScalarVarDecl{Type: syntax.Int, Name: "x"},
			},
		}, nil
	})

	dir := t.TempDir()
	src := filepath.Join(dir, "prog.c")
	if err := os.WriteFile(src, []byte("int x; int x;"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var buf bytes.Buffer
	err := Run(cliopt.Options{Src: src, Out: filepath.Join(dir, "a.out")}, &buf)
	if err == nil {
		t.Fatal("Run() = nil error, want the duplicate-declaration failure")
	}
	want := "Error: Duplicate variable declaration\n"
	if buf.String() != want {
		t.Errorf("driver output = %q, want %q", buf.String(), want)
	}
}

func TestRunMissingSourceFile(t *testing.T) {
	withParser(t, func([]byte) (*syntax.Program, error) { return &syntax.Program{}, nil })

	var buf bytes.Buffer
	err := Run(cliopt.Options{Src: "/nonexistent/prog.c", Out: "a.out"}, &buf)
	if err == nil {
		t.Fatal("Run() = nil error, want failure reading a nonexistent source file")
	}
}
