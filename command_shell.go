// command_shell.go - Line-oriented command shell driving the boot console

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine

License: GPLv3 or later
*/

/*
command_shell.go - Command Shell

The shell drives the console from stdin or from -exec strings. A line holds
one or more commands separated by ';' and each command is tokenised with
POSIX shell quoting rules.

Commands:

    printf FORMAT [ARG...]   format onto the console
    puts TEXT...             write text (words joined by one space)
    putchar CODE|CHAR        write one byte
    cursor [ROW COL]         show or move the cursor
    clear                    blank the screen and home the cursor
    report                   run the boot report with the sample boot info
    udiv A B                 print A/B and A%B through the wide divider
    dump                     print the screen to the host
    lua FILE                 run a Lua kernel program
    help                     list commands

Text passed to printf, puts and s: arguments understands the C escapes
\n \t \r \b \0 \xHH and \\, in single quotes, double quotes or bare
words. A backslash before a quote, ';' or a blank is a shell escape.

printf arguments are tagged by their spelling:

    s:TEXT     text for %s
    w:NUMBER   64-bit value for %lu / %lx
    NUMBER     decimal, 0x hex, 0o/0 octal or 0b binary; values above
               0xFFFFFFFF become 64-bit
    anything else is text
*/

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/buildkite/shellwords"
)

// CommandError reports a failed shell command.
type CommandError struct {
	Operation string // Command name
	Details   string
	Err       error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("command %s failed: %s", e.Operation, e.Details)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ErrUnknownCommand is wrapped by CommandError for unrecognised commands.
var ErrUnknownCommand = errors.New("unknown command")

type shellCommand struct {
	usage string
	run   func(s *Shell, ctx context.Context, args []string) error
}

var shellCommands map[string]shellCommand

func init() {
	shellCommands = map[string]shellCommand{
		"printf":  {"printf FORMAT [ARG...]", (*Shell).cmdPrintf},
		"puts":    {"puts TEXT...", (*Shell).cmdPuts},
		"putchar": {"putchar CODE|CHAR", (*Shell).cmdPutchar},
		"cursor":  {"cursor [ROW COL]", (*Shell).cmdCursor},
		"clear":   {"clear", (*Shell).cmdClear},
		"report":  {"report", (*Shell).cmdReport},
		"udiv":    {"udiv A B", (*Shell).cmdUdiv},
		"dump":    {"dump", (*Shell).cmdDump},
		"lua":     {"lua FILE", (*Shell).cmdLua},
		"help":    {"help", (*Shell).cmdHelp},
	}
}

// Shell executes console commands against a Machine.
type Shell struct {
	machine *Machine
	host    *TerminalHost
	out     io.Writer
	scripts *ScriptRunner
}

// NewShell creates a shell. Host-side output (cursor, udiv, help, dump)
// goes to host.
func NewShell(m *Machine, host *TerminalHost, out io.Writer) *Shell {
	return &Shell{
		machine: m,
		host:    host,
		out:     out,
		scripts: NewScriptRunner(m),
	}
}

// Exec runs every command on line and stops at the first error.
func (s *Shell) Exec(ctx context.Context, line string) error {
	for _, cmd := range splitCommands(line) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.execOne(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

// Run reads commands from r until EOF. A failing line is reported on
// stderr and the shell carries on with the next one.
func (s *Shell) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Exec(ctx, scanner.Text()); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintf(os.Stderr, "shell: %v\n", err)
		}
	}
	return scanner.Err()
}

func (s *Shell) execOne(ctx context.Context, cmd string) error {
	words, err := shellwords.SplitPosix(protectEscapes(cmd))
	if err != nil {
		return &CommandError{Operation: "parse", Details: strconv.Quote(cmd), Err: err}
	}
	if len(words) == 0 || strings.HasPrefix(words[0], "#") {
		return nil
	}

	name := strings.ToLower(words[0])
	c, ok := shellCommands[name]
	if !ok {
		return &CommandError{Operation: name, Details: "try help", Err: ErrUnknownCommand}
	}
	return c.run(s, ctx, words[1:])
}

// splitCommands cuts a line at ';' outside quotes. A backslash escapes
// the next byte inside and outside quotes, as the tokeniser treats it.
func splitCommands(line string) []string {
	var cmds []string
	var quote byte
	start := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			cmds = append(cmds, line[start:i])
			start = i + 1
		}
	}
	cmds = append(cmds, line[start:])
	return cmds
}

// cEscapeLetters are the escapes unescapeC expands after tokenising.
const cEscapeLetters = "ntrb0x"

// protectEscapes doubles the backslash of every C escape (and of a
// doubled backslash) so the tokeniser strips one level and unescapeC sees
// the original. Backslashes before quotes, ';' and blanks stay shell escapes.
func protectEscapes(cmd string) string {
	if !strings.Contains(cmd, `\`) {
		return cmd
	}
	var sb strings.Builder
	sb.Grow(len(cmd) + 8)
	for i := 0; i < len(cmd); i++ {
		c := cmd[i]
		if c != '\\' || i+1 >= len(cmd) {
			sb.WriteByte(c)
			continue
		}
		next := cmd[i+1]
		switch {
		case next == '\\':
			sb.WriteString(`\\\\`)
			i++
		case strings.IndexByte(cEscapeLetters, next) >= 0:
			sb.WriteString(`\\`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func (s *Shell) cmdPrintf(_ context.Context, args []string) error {
	if len(args) == 0 {
		return &CommandError{Operation: "printf", Details: "missing format"}
	}
	format, err := unescapeC(args[0])
	if err != nil {
		return &CommandError{Operation: "printf", Details: "bad format", Err: err}
	}
	fargs := make([]Arg, 0, len(args)-1)
	for _, a := range args[1:] {
		arg, err := parseShellArg(a)
		if err != nil {
			return &CommandError{Operation: "printf", Details: fmt.Sprintf("bad argument %q", a), Err: err}
		}
		fargs = append(fargs, arg)
	}
	s.machine.Printf(format, fargs...)
	return nil
}

func (s *Shell) cmdPuts(_ context.Context, args []string) error {
	text, err := unescapeC(strings.Join(args, " "))
	if err != nil {
		return &CommandError{Operation: "puts", Details: "bad text", Err: err}
	}
	s.machine.PutString(text)
	return nil
}

func (s *Shell) cmdPutchar(_ context.Context, args []string) error {
	if len(args) != 1 {
		return &CommandError{Operation: "putchar", Details: "expected one argument"}
	}
	if v, err := strconv.ParseUint(args[0], 0, 8); err == nil {
		s.machine.PutChar(byte(v))
		return nil
	}
	text, err := unescapeC(args[0])
	if err != nil || len(text) != 1 {
		return &CommandError{Operation: "putchar", Details: fmt.Sprintf("not a byte: %q", args[0]), Err: err}
	}
	s.machine.PutChar(text[0])
	return nil
}

func (s *Shell) cmdCursor(_ context.Context, args []string) error {
	switch len(args) {
	case 0:
		row, col := s.machine.CursorPosition()
		fmt.Fprintf(s.out, "%d %d\n", row, col)
		return nil
	case 2:
		row, err := strconv.Atoi(args[0])
		if err != nil {
			return &CommandError{Operation: "cursor", Details: "bad row", Err: err}
		}
		col, err := strconv.Atoi(args[1])
		if err != nil {
			return &CommandError{Operation: "cursor", Details: "bad column", Err: err}
		}
		s.machine.SetCursor(row, col)
		return nil
	}
	return &CommandError{Operation: "cursor", Details: "expected no arguments or ROW COL"}
}

func (s *Shell) cmdClear(_ context.Context, _ []string) error {
	s.machine.Clear()
	return nil
}

func (s *Shell) cmdReport(_ context.Context, _ []string) error {
	s.machine.Do(func(c *Console) { RunBootReport(c, SampleBootInfo()) })
	return nil
}

func (s *Shell) cmdUdiv(_ context.Context, args []string) error {
	if len(args) != 2 {
		return &CommandError{Operation: "udiv", Details: "expected A B"}
	}
	a, err := strconv.ParseUint(args[0], 0, 64)
	if err != nil {
		return &CommandError{Operation: "udiv", Details: "bad dividend", Err: err}
	}
	b, err := strconv.ParseUint(args[1], 0, 64)
	if err != nil {
		return &CommandError{Operation: "udiv", Details: "bad divisor", Err: err}
	}
	q, r, ok := udivmod64(a, b)
	if !ok {
		return &CommandError{Operation: "udiv", Details: fmt.Sprintf("divisor %#x is not supported", b)}
	}
	qs, _ := FormatUint(q, 10)
	rs, _ := FormatUint(r, 10)
	fmt.Fprintf(s.out, "%s %s\n", qs, rs)
	return nil
}

func (s *Shell) cmdDump(_ context.Context, _ []string) error {
	if err := s.host.Dump(s.machine.TextLines()); err != nil {
		return &CommandError{Operation: "dump", Details: "host write", Err: err}
	}
	return nil
}

func (s *Shell) cmdLua(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return &CommandError{Operation: "lua", Details: "expected FILE"}
	}
	if err := s.scripts.RunFile(ctx, args[0]); err != nil {
		return &CommandError{Operation: "lua", Details: args[0], Err: err}
	}
	return nil
}

func (s *Shell) cmdHelp(_ context.Context, _ []string) error {
	for _, name := range []string{"printf", "puts", "putchar", "cursor", "clear", "report", "udiv", "dump", "lua", "help"} {
		fmt.Fprintf(s.out, "  %s\n", shellCommands[name].usage)
	}
	return nil
}

// parseShellArg tags a printf argument by its spelling.
func parseShellArg(word string) (Arg, error) {
	switch {
	case strings.HasPrefix(word, "s:"):
		text, err := unescapeC(word[2:])
		if err != nil {
			return Arg{}, err
		}
		return TextArg(text), nil
	case strings.HasPrefix(word, "w:"):
		v, err := strconv.ParseUint(word[2:], 0, 64)
		if err != nil {
			return Arg{}, err
		}
		return WideArg(v), nil
	}

	if v, err := strconv.ParseUint(word, 0, 64); err == nil {
		if v > 0xFFFFFFFF {
			return WideArg(v), nil
		}
		return NarrowArg(uint32(v)), nil
	}
	text, err := unescapeC(word)
	if err != nil {
		return Arg{}, err
	}
	return TextArg(text), nil
}

// unescapeC expands the C escapes understood by the shell.
func unescapeC(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("trailing backslash")
		}
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case '0':
			sb.WriteByte(0)
		case '\\', '\'', '"':
			sb.WriteByte(s[i])
		case 'x':
			if i+2 >= len(s) {
				return "", fmt.Errorf("short \\x escape")
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("bad \\x escape: %w", err)
			}
			sb.WriteByte(byte(v))
			i += 2
		default:
			return "", fmt.Errorf("unknown escape \\%c", s[i])
		}
	}
	return sb.String(), nil
}
