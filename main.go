// main.go - Main entry point for the boot console

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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;50;147m▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;80;147m▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;110;147m░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;140;147m░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m\n\033[38;2;255;170;147m░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░\033[0m\n\033[38;2;255;200;147m ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░\033[0m\n\033[38;2;255;230;147m ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░\033[0m\n\033[38;2;255;255;147m ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░\033[0m")
	fmt.Println("\nBoot Console: an 80x25 VGA text console and its freestanding printf runtime.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

// execList collects repeated -exec flags.
type execList []string

func (e *execList) String() string {
	return strings.Join(*e, "; ")
}

func (e *execList) Set(v string) error {
	*e = append(*e, v)
	return nil
}

type options struct {
	execs      execList
	script     string
	demo       bool
	window     bool
	fullscreen bool
	dump       bool
	scale      int
	quiet      bool
	features   bool
}

func parseOptions(args []string) (*options, error) {
	opts := &options{}

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.Var(&opts.execs, "exec", "Run shell commands (repeatable, ';' separated)")
	flagSet.StringVar(&opts.script, "script", "", "Run a Lua kernel program")
	flagSet.BoolVar(&opts.demo, "demo", false, "Print the boot report")
	flagSet.BoolVar(&opts.window, "window", false, "Show the screen in a window")
	flagSet.BoolVar(&opts.fullscreen, "fullscreen", false, "Start the window fullscreen")
	flagSet.BoolVar(&opts.dump, "dump", false, "Print the screen to stdout before exiting")
	flagSet.IntVar(&opts.scale, "scale", 2, "Window scale factor (1-4)")
	flagSet.BoolVar(&opts.quiet, "quiet", false, "Do not print the banner")
	flagSet.BoolVar(&opts.features, "features", false, "List compiled features and exit")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./bootconsole [-exec \"cmd; cmd\"] [-script file.lua] [-demo] [-window] [-dump] [-scale n]")
		fmt.Println("With no -exec, -script or -demo the shell reads commands from stdin.")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	if flagSet.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", flagSet.Arg(0))
	}
	return opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if opts.features {
		printFeatures()
		return
	}
	if !opts.quiet {
		boilerPlate()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	machine := NewMachine()
	host := NewTerminalHost(os.Stdout)
	shell := NewShell(machine, host, os.Stdout)

	var output VideoOutput
	if opts.window {
		output, err = startWindow(ctx, machine, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize video: %v\n", err)
			os.Exit(1)
		}
		defer output.Close()
	}

	batch := opts.demo || len(opts.execs) > 0 || opts.script != ""
	if opts.demo {
		machine.Do(func(c *Console) { RunBootReport(c, SampleBootInfo()) })
	}
	for _, line := range opts.execs {
		if err := shell.Exec(ctx, line); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if opts.script != "" {
		if err := shell.scripts.RunFile(ctx, opts.script); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	switch {
	case output != nil:
		if !batch {
			go func() {
				if err := shell.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
					fmt.Fprintf(os.Stderr, "shell: %v\n", err)
				}
			}()
		}
		waitForWindow(ctx, output)
	case !batch:
		if err := shell.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if opts.dump {
		if err := host.Dump(machine.TextLines()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// startWindow opens the display backend and starts presenting VGA frames.
func startWindow(ctx context.Context, machine *Machine, opts *options) (VideoOutput, error) {
	output, err := NewVideoOutput(VIDEO_BACKEND_EBITEN)
	if err != nil {
		return nil, err
	}
	width, height := machine.VGA.GetDimensions()
	if err := output.SetDisplayConfig(DisplayConfig{
		Width:       width,
		Height:      height,
		Scale:       opts.scale,
		RefreshRate: 60,
		PixelFormat: PixelFormatRGBA,
		VSync:       true,
		Fullscreen:  opts.fullscreen,
	}); err != nil {
		return nil, err
	}

	if in, ok := output.(KeyInput); ok {
		in.SetKeyHandler(machine.HandleKey)
	}
	if cs, ok := output.(interface{ SetCopySource(func() []string) }); ok {
		cs.SetCopySource(machine.TextLines)
	}
	if cs, ok := output.(interface{ SetCursorSource(func() (int, int)) }); ok {
		cs.SetCursorSource(machine.CursorPosition)
	}

	if err := output.Start(); err != nil {
		return nil, err
	}
	go func() {
		if err := PresentFrames(output, machine.VGA, ctx.Done()); err != nil {
			fmt.Fprintf(os.Stderr, "video: %v\n", err)
		}
	}()
	return output, nil
}

// waitForWindow blocks until the window closes or ctx is cancelled.
func waitForWindow(ctx context.Context, output VideoOutput) {
	var closed <-chan struct{}
	if d, ok := output.(interface{ Done() <-chan struct{} }); ok {
		closed = d.Done()
	}
	select {
	case <-closed:
	case <-ctx.Done():
	}
}
