package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestShell() (*Shell, *Machine, *bytes.Buffer) {
	m := NewMachine()
	var out bytes.Buffer
	return NewShell(m, NewWriterHost(&out), &out), m, &out
}

func TestShell_Printf(t *testing.T) {
	sh, m, _ := newTestShell()
	if err := sh.Exec(context.Background(), `printf '%08x\n' 0xbeef`); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got := m.TextLines()[0]; got != "0000beef" {
		t.Errorf("line 0: got %q, want %q", got, "0000beef")
	}
	row, col := m.CursorPosition()
	if row != 1 || col != 0 {
		t.Errorf("cursor: got (%d,%d), want (1,0)", row, col)
	}
}

func TestShell_PrintfDoubleQuoted(t *testing.T) {
	sh, m, _ := newTestShell()
	if err := sh.Exec(context.Background(), `printf "%08x\n%s" 0xbeef "s:x\x41"`); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	lines := m.TextLines()
	if lines[0] != "0000beef" || lines[1] != "xA" {
		t.Errorf("lines: got %q, %q, want %q, %q", lines[0], lines[1], "0000beef", "xA")
	}
}

func TestShell_TabEscapeMovesCursor(t *testing.T) {
	sh, m, _ := newTestShell()
	if err := sh.Exec(context.Background(), `puts 'a\tb'`); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got := m.TextLines()[0]; got != "a    b" {
		t.Errorf("line 0: got %q, want %q", got, "a    b")
	}
	row, col := m.CursorPosition()
	if row != 0 || col != 6 {
		t.Errorf("cursor: got (%d,%d), want (0,6)", row, col)
	}
}

func TestShell_ShellEscapesSurvive(t *testing.T) {
	sh, m, _ := newTestShell()
	if err := sh.Exec(context.Background(), `puts "say \"hi\" \\o/"`); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got := m.TextLines()[0]; got != `say "hi" \o/` {
		t.Errorf("line 0: got %q, want %q", got, `say "hi" \o/`)
	}
}

func TestProtectEscapes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`plain`, `plain`},
		{`'a\nb'`, `'a\\nb'`},
		{`\x41`, `\\x41`},
		{`\\`, `\\\\`},
		{`"\""`, `"\""`},
		{`x\;y`, `x\;y`},
		{`tail\`, `tail\`},
	}
	for _, tt := range tests {
		if got := protectEscapes(tt.in); got != tt.want {
			t.Errorf("protectEscapes(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShell_PrintfArgumentTags(t *testing.T) {
	sh, m, _ := newTestShell()
	line := `printf '%s|%s|%lu|%lx|%u' s:42 hello w:7 0x1deadbeef 4294967295`
	if err := sh.Exec(context.Background(), line); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got := m.TextLines()[0]; got != "42|hello|7|1deadbeef|4294967295" {
		t.Errorf("line 0: got %q", got)
	}
}

func TestShell_MultipleCommands(t *testing.T) {
	sh, m, _ := newTestShell()
	if err := sh.Exec(context.Background(), `puts 'a;b'; cursor 2 3; putchar 0x41; putchar B`); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	lines := m.TextLines()
	if lines[0] != "a;b" {
		t.Errorf("line 0: got %q, want %q", lines[0], "a;b")
	}
	if lines[2] != "   AB" {
		t.Errorf("line 2: got %q, want %q", lines[2], "   AB")
	}
}

func TestShell_CursorReport(t *testing.T) {
	sh, _, out := newTestShell()
	if err := sh.Exec(context.Background(), "cursor 4 9; cursor"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if out.String() != "4 9\n" {
		t.Errorf("output: got %q, want %q", out.String(), "4 9\n")
	}
}

func TestShell_Udiv(t *testing.T) {
	sh, _, out := newTestShell()
	if err := sh.Exec(context.Background(), "udiv 18446744073709551615 10"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if out.String() != "1844674407370955161 5\n" {
		t.Errorf("output: got %q", out.String())
	}

	err := sh.Exec(context.Background(), "udiv 0xffffffffffffffff 0x300000000")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Operation != "udiv" {
		t.Errorf("unsupported divisor: got %v, want udiv CommandError", err)
	}
}

func TestShell_ClearAndReport(t *testing.T) {
	sh, m, _ := newTestShell()
	if err := sh.Exec(context.Background(), "puts junk; clear; report"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got := m.TextLines()[0]; got != "demo kernel" {
		t.Errorf("line 0: got %q, want %q", got, "demo kernel")
	}
}

func TestShell_Dump(t *testing.T) {
	sh, _, out := newTestShell()
	if err := sh.Exec(context.Background(), `puts 'one\ntwo'; dump`); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if out.String() != "one\ntwo\n" {
		t.Errorf("dump: got %q, want %q", out.String(), "one\ntwo\n")
	}
}

func TestShell_UnknownCommand(t *testing.T) {
	sh, _, _ := newTestShell()
	err := sh.Exec(context.Background(), "frobnicate")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("got %v, want ErrUnknownCommand", err)
	}
}

func TestShell_CommentsAndBlankLines(t *testing.T) {
	sh, m, _ := newTestShell()
	if err := sh.Exec(context.Background(), "  ; # puts nothing"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got := m.TextLines()[0]; got != "" {
		t.Errorf("line 0: got %q, want empty", got)
	}
}

func TestShell_RunContinuesAfterError(t *testing.T) {
	sh, m, _ := newTestShell()
	in := strings.NewReader("puts first\nbogus\nputs ' second'\n")
	if err := sh.Run(context.Background(), in); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := m.TextLines()[0]; got != "first second" {
		t.Errorf("line 0: got %q, want %q", got, "first second")
	}
}

func TestShell_Lua(t *testing.T) {
	sh, m, _ := newTestShell()
	path := filepath.Join(t.TempDir(), "hello.lua")
	if err := os.WriteFile(path, []byte(`puts("from lua")`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := sh.Exec(context.Background(), "lua "+path); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got := m.TextLines()[0]; got != "from lua" {
		t.Errorf("line 0: got %q", got)
	}
}

func TestSplitCommands(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a; b", []string{"a", " b"}},
		{`puts "x;y"; z`, []string{`puts "x;y"`, " z"}},
		{`puts 'x;y'`, []string{`puts 'x;y'`}},
		{`puts x\;y`, []string{`puts x\;y`}},
		{`puts 'a\';b'; c`, []string{`puts 'a\';b'`, " c"}},
	}
	for _, tt := range tests {
		got := splitCommands(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("splitCommands(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseShellArg(t *testing.T) {
	tests := []struct {
		in   string
		want Arg
	}{
		{"42", NarrowArg(42)},
		{"0x10", NarrowArg(16)},
		{"0b101", NarrowArg(5)},
		{"4294967296", WideArg(1 << 32)},
		{"w:1", WideArg(1)},
		{"s:7", TextArg("7")},
		{"word", TextArg("word")},
		{`tab\there`, TextArg("tab\there")},
	}
	for _, tt := range tests {
		got, err := parseShellArg(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseShellArg(%q): got %+v/%v, want %+v", tt.in, got, err, tt.want)
		}
	}
}

func TestUnescapeC(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{`plain`, "plain", false},
		{`a\nb`, "a\nb", false},
		{`\x41\x62`, "Ab", false},
		{`\\`, `\`, false},
		{`\'\"`, `'"`, false},
		{`bad\`, "", true},
		{`\x4`, "", true},
		{`\q`, "", true},
	}
	for _, tt := range tests {
		got, err := unescapeC(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("unescapeC(%q): got %q/%v, want %q (error %v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}
