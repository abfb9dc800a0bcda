package cliopt

import "testing"

func TestParseSourceOnly(t *testing.T) {
	opt, err := Parse([]string{"prog.c"})
	if err != nil {
		t.Fatalf("Parse() = %v, want nil", err)
	}
	if opt.Src != "prog.c" {
		t.Errorf("Src = %q, want prog.c", opt.Src)
	}
	if opt.Out != "out" {
		t.Errorf("Out = %q, want default out", opt.Out)
	}
	if opt.Clean {
		t.Errorf("Clean = %v, want false by default (spec.md §6.2 keeps out.bc/out.o)", opt.Clean)
	}
}

func TestParseOutAndVerboseAndClean(t *testing.T) {
	opt, err := Parse([]string{"-o", "prog", "-verbose", "-S", "prog.c"})
	if err != nil {
		t.Fatalf("Parse() = %v, want nil", err)
	}
	if opt.Out != "prog" {
		t.Errorf("Out = %q, want prog", opt.Out)
	}
	if !opt.Verbose || !opt.Clean {
		t.Errorf("Verbose = %v, Clean = %v, want both true", opt.Verbose, opt.Clean)
	}
	if opt.Src != "prog.c" {
		t.Errorf("Src = %q, want prog.c", opt.Src)
	}
}

func TestParseNoArgs(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatal("Parse(nil) = nil error, want failure")
	}
}

func TestParseMissingOutArgument(t *testing.T) {
	if _, err := Parse([]string{"-o"}); err == nil {
		t.Fatal("Parse() = nil error, want failure for -o with no argument")
	}
}

func TestParseUnknownFlag(t *testing.T) {
	if _, err := Parse([]string{"-bogus", "prog.c"}); err == nil {
		t.Fatal("Parse() = nil error, want failure for an unknown flag")
	}
}
