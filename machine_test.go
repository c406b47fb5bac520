package main

import (
	"strings"
	"sync"
	"testing"
)

func TestMachine_ConsoleWritesReachVGA(t *testing.T) {
	m := NewMachine()
	m.PutString("Hello")

	g, a := m.VGA.Cell(0, 0)
	if g != 'H' || a != CONSOLE_ATTR {
		t.Errorf("Cell(0,0): got (%q,%#x), want ('H',%#x)", g, a, CONSOLE_ATTR)
	}
	if lines := m.TextLines(); lines[0] != "Hello" {
		t.Errorf("line 0: got %q, want %q", lines[0], "Hello")
	}
	row, col := m.VGA.GetCursorPosition()
	if row != 0 || col != 5 {
		t.Errorf("CRTC cursor: got (%d,%d), want (0,5)", row, col)
	}
}

func TestMachine_StartsCleared(t *testing.T) {
	m := NewMachine()
	for row := 0; row < CONSOLE_ROWS; row++ {
		for col := 0; col < CONSOLE_COLS; col++ {
			if g, a := m.VGA.Cell(row, col); g != ' ' || a != CONSOLE_ATTR {
				t.Fatalf("Cell(%d,%d): got (%q,%#x), want blank", row, col, g, a)
			}
		}
	}
}

func TestMachine_PrintfThroughBus(t *testing.T) {
	m := NewMachine()
	n := m.Printf("%s %08x %lu\n", TextArg("id"), NarrowArg(0xbeef), WideArg(1<<63))
	if n != 3 {
		t.Errorf("consumed: got %d, want 3", n)
	}
	if got := m.TextLines()[0]; got != "id 0000beef 9223372036854775808" {
		t.Errorf("line 0: got %q", got)
	}
	row, col := m.CursorPosition()
	if row != 1 || col != 0 {
		t.Errorf("cursor: got (%d,%d), want (1,0)", row, col)
	}
}

func TestMachine_ScrollThroughBus(t *testing.T) {
	m := NewMachine()
	for i := 0; i < CONSOLE_ROWS; i++ {
		m.Printf("%u\n", NarrowArg(uint32(i)))
	}
	lines := m.TextLines()
	if lines[0] != "1" || lines[CONSOLE_LAST_ROW-1] != "24" || lines[CONSOLE_LAST_ROW] != "" {
		t.Errorf("after scroll: first %q, row 23 %q, row 24 %q", lines[0], lines[23], lines[24])
	}
}

func TestMachine_SetCursorClamps(t *testing.T) {
	m := NewMachine()
	m.SetCursor(99, -3)
	row, col := m.CursorPosition()
	if row != CONSOLE_LAST_ROW || col != 0 {
		t.Errorf("got (%d,%d), want (24,0)", row, col)
	}
}

func TestMachine_HandleKeyBackspace(t *testing.T) {
	m := NewMachine()
	for _, b := range []byte("ab\bc") {
		m.HandleKey(b)
	}
	if got := m.TextLines()[0]; got != "ac" {
		t.Errorf("line 0: got %q, want %q", got, "ac")
	}

	m.SetCursor(1, 0)
	m.HandleKey('\b')
	row, col := m.CursorPosition()
	if row != 0 || col != CONSOLE_COLS-1 {
		t.Errorf("backspace at column 0: got (%d,%d), want (0,79)", row, col)
	}

	m.SetCursor(0, 0)
	m.HandleKey('\b')
	if row, col := m.CursorPosition(); row != 0 || col != 0 {
		t.Errorf("backspace at home: got (%d,%d), want (0,0)", row, col)
	}
}

func TestMachine_TabToColumn80WrapsThroughCRTC(t *testing.T) {
	m := NewMachine()
	m.SetCursor(3, 76)
	m.PutChar('\t')

	// Column 80 is stored as the linear offset 3*80+80.
	if off := m.VGA.GetCursorOffset(); off != 3*CONSOLE_COLS+CONSOLE_COLS {
		t.Errorf("CRTC offset: got %d, want %d", off, 3*CONSOLE_COLS+CONSOLE_COLS)
	}
	if row, col := m.CursorPosition(); row != 4 || col != 0 {
		t.Errorf("cursor after tab: got (%d,%d), want (4,0)", row, col)
	}

	m.PutChar('X')
	if g, _ := m.VGA.Cell(4, 0); g != 'X' {
		t.Errorf("Cell(4,0): got %#x, want 'X'", g)
	}
	if row, col := m.CursorPosition(); row != 4 || col != 1 {
		t.Errorf("cursor after X: got (%d,%d), want (4,1)", row, col)
	}
}

func TestMachine_ConcurrentWriters(t *testing.T) {
	m := NewMachine()
	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func(ch byte) {
			defer wg.Done()
			for range 100 {
				m.PutString(string([]byte{ch, ch, ch, ch, '\n'}))
			}
		}(byte('a' + w))
	}
	wg.Wait()

	// Every surviving line must be one writer's whole string.
	for i, line := range m.TextLines()[:CONSOLE_LAST_ROW] {
		if len(line) != 4 || strings.Count(line, line[:1]) != 4 {
			t.Fatalf("line %d interleaved: %q", i, line)
		}
	}
}
