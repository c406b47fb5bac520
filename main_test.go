package main

import "testing"

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := parseOptions(nil)
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if opts.scale != 2 || opts.window || opts.dump || len(opts.execs) != 0 {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}

func TestParseOptions_RepeatedExec(t *testing.T) {
	opts, err := parseOptions([]string{"-exec", "clear", "-exec", "puts hi; dump", "-dump", "-scale", "3"})
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if len(opts.execs) != 2 || opts.execs[1] != "puts hi; dump" {
		t.Fatalf("execs: got %q", opts.execs)
	}
	if !opts.dump || opts.scale != 3 {
		t.Fatalf("expected dump and scale 3, got %+v", opts)
	}
}

func TestParseOptions_RejectsArguments(t *testing.T) {
	if _, err := parseOptions([]string{"stray"}); err == nil {
		t.Fatal("expected an error for a positional argument")
	}
}
