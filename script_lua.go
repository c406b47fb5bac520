// script_lua.go - Lua kernel programs for the boot console

/*
script_lua.go - Lua Scripting

Scripts play the part of a kernel that links against the console runtime.
Each run gets a fresh Lua state with these globals:

    printf(fmt, ...)     format onto the console, returns arguments consumed
    puts(s)              write a string
    putchar(c)           write one byte (number or one-character string)
    clear()              blank the screen and home the cursor
    cursor()             returns row, column
    setcursor(row, col)  move the cursor (clamped to the screen)
    screen()             returns the screen as a table of 25 strings
    u64(v)               64-bit value from a number or a numeric string
    udiv(a, b)           quotient through the wide divider, as u64
    umod(a, b)           remainder through the wide divider, as u64
    report([info])       run the boot report; info overrides the sample

Lua numbers are doubles, so values above 2^53 must travel as u64. An
integral number up to 0xFFFFFFFF is passed to printf as a 32-bit argument,
a larger one as a 64-bit argument, and a u64 always as a 64-bit argument.
*/

package main

import (
	"context"
	"fmt"
	"math"
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

const luaU64TypeName = "u64"

// ScriptError reports a failed Lua script.
type ScriptError struct {
	Script  string
	Details string
	Err     error
}

func (e *ScriptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("script %s failed: %s: %v", e.Script, e.Details, e.Err)
	}
	return fmt.Sprintf("script %s failed: %s", e.Script, e.Details)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// ScriptRunner executes Lua programs against a Machine.
type ScriptRunner struct {
	machine *Machine
}

func NewScriptRunner(m *Machine) *ScriptRunner {
	return &ScriptRunner{machine: m}
}

// RunFile executes the Lua file at path.
func (r *ScriptRunner) RunFile(ctx context.Context, path string) error {
	L := r.newState(ctx)
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return &ScriptError{Script: path, Details: "execution", Err: err}
	}
	return nil
}

// RunString executes src; name labels errors.
func (r *ScriptRunner) RunString(ctx context.Context, name, src string) error {
	L := r.newState(ctx)
	defer L.Close()

	if err := L.DoString(src); err != nil {
		return &ScriptError{Script: name, Details: "execution", Err: err}
	}
	return nil
}

func (r *ScriptRunner) newState(ctx context.Context) *lua.LState {
	L := lua.NewState()
	if ctx != nil {
		L.SetContext(ctx)
	}

	mt := L.NewTypeMetatable(luaU64TypeName)
	L.SetField(mt, "__tostring", L.NewFunction(luaU64String))
	L.SetField(mt, "__eq", L.NewFunction(luaU64Equal))

	funcs := map[string]lua.LGFunction{
		"printf":    r.luaPrintf,
		"puts":      r.luaPuts,
		"putchar":   r.luaPutchar,
		"clear":     r.luaClear,
		"cursor":    r.luaCursor,
		"setcursor": r.luaSetCursor,
		"screen":    r.luaScreen,
		"u64":       luaU64,
		"udiv":      luaUdiv,
		"umod":      luaUmod,
		"report":    r.luaReport,
	}
	for name, fn := range funcs {
		L.SetGlobal(name, L.NewFunction(fn))
	}
	return L
}

func (r *ScriptRunner) luaPrintf(L *lua.LState) int {
	format := L.CheckString(1)
	top := L.GetTop()
	args := make([]Arg, 0, max(top-1, 0))
	for i := 2; i <= top; i++ {
		args = append(args, luaToArg(L.Get(i)))
	}
	L.Push(lua.LNumber(r.machine.Printf(format, args...)))
	return 1
}

func (r *ScriptRunner) luaPuts(L *lua.LState) int {
	r.machine.PutString(L.CheckString(1))
	return 0
}

func (r *ScriptRunner) luaPutchar(L *lua.LState) int {
	switch v := L.CheckAny(1).(type) {
	case lua.LNumber:
		r.machine.PutChar(byte(int64(v)))
	case lua.LString:
		if len(v) != 1 {
			L.ArgError(1, "expected a single character")
			return 0
		}
		r.machine.PutChar(v[0])
	default:
		L.ArgError(1, "expected number or character")
	}
	return 0
}

func (r *ScriptRunner) luaClear(L *lua.LState) int {
	r.machine.Clear()
	return 0
}

func (r *ScriptRunner) luaCursor(L *lua.LState) int {
	row, col := r.machine.CursorPosition()
	L.Push(lua.LNumber(row))
	L.Push(lua.LNumber(col))
	return 2
}

func (r *ScriptRunner) luaSetCursor(L *lua.LState) int {
	r.machine.SetCursor(L.CheckInt(1), L.CheckInt(2))
	return 0
}

func (r *ScriptRunner) luaScreen(L *lua.LState) int {
	tbl := L.NewTable()
	for _, line := range r.machine.TextLines() {
		tbl.Append(lua.LString(line))
	}
	L.Push(tbl)
	return 1
}

// luaReport runs the boot report. An optional table may override the
// loader name, command line and memory map of the sample boot info:
//
//	report{loader="x", cmdline="y", mmap={{addr=u64(0), len=0x9fc00, type=1}}}
func (r *ScriptRunner) luaReport(L *lua.LState) int {
	info := SampleBootInfo()
	if L.GetTop() >= 1 {
		tbl := L.CheckTable(1)
		if v, ok := tbl.RawGetString("loader").(lua.LString); ok {
			info.LoaderName = string(v)
		}
		if v, ok := tbl.RawGetString("cmdline").(lua.LString); ok {
			info.CommandLine = string(v)
		}
		if mm, ok := tbl.RawGetString("mmap").(*lua.LTable); ok {
			info.MemoryMap = info.MemoryMap[:0]
			mm.ForEach(func(_, entry lua.LValue) {
				e, ok := entry.(*lua.LTable)
				if !ok {
					return
				}
				addr, _ := luaValueUint64(e.RawGetString("addr"))
				length, _ := luaValueUint64(e.RawGetString("len"))
				typ, _ := luaValueUint64(e.RawGetString("type"))
				info.MemoryMap = append(info.MemoryMap, MemoryRegion{Addr: addr, Len: length, Type: uint32(typ)})
			})
		}
	}
	r.machine.Do(func(c *Console) { RunBootReport(c, info) })
	return 0
}

func luaU64(L *lua.LState) int {
	v, ok := luaValueUint64(L.CheckAny(1))
	if !ok {
		L.ArgError(1, "expected an unsigned integer")
		return 0
	}
	L.Push(newLuaU64(L, v))
	return 1
}

func luaUdiv(L *lua.LState) int {
	a, b := checkU64Pair(L)
	L.Push(newLuaU64(L, UDiv64(a, b)))
	return 1
}

func luaUmod(L *lua.LState) int {
	a, b := checkU64Pair(L)
	L.Push(newLuaU64(L, UMod64(a, b)))
	return 1
}

func checkU64Pair(L *lua.LState) (uint64, uint64) {
	a, ok := luaValueUint64(L.CheckAny(1))
	if !ok {
		L.ArgError(1, "expected an unsigned integer")
	}
	b, ok := luaValueUint64(L.CheckAny(2))
	if !ok {
		L.ArgError(2, "expected an unsigned integer")
	}
	return a, b
}

func luaU64String(L *lua.LState) int {
	v, _ := luaValueUint64(L.CheckUserData(1))
	s, _ := FormatUint(v, 10)
	L.Push(lua.LString(s))
	return 1
}

func luaU64Equal(L *lua.LState) int {
	a, _ := luaValueUint64(L.CheckAny(1))
	b, _ := luaValueUint64(L.CheckAny(2))
	L.Push(lua.LBool(a == b))
	return 1
}

func newLuaU64(L *lua.LState, v uint64) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(luaU64TypeName))
	return ud
}

// luaValueUint64 converts numbers, numeric strings and u64 values.
func luaValueUint64(v lua.LValue) (uint64, bool) {
	switch v := v.(type) {
	case *lua.LUserData:
		u, ok := v.Value.(uint64)
		return u, ok
	case lua.LNumber:
		f := float64(v)
		if f < 0 || f >= math.MaxUint64 || f != math.Trunc(f) {
			return 0, false
		}
		return uint64(f), true
	case lua.LString:
		u, err := strconv.ParseUint(string(v), 0, 64)
		return u, err == nil
	}
	return 0, false
}

// luaToArg tags a Lua value for Printf.
func luaToArg(v lua.LValue) Arg {
	switch v := v.(type) {
	case *lua.LUserData:
		if u, ok := v.Value.(uint64); ok {
			return WideArg(u)
		}
		return TextArg(v.String())
	case lua.LNumber:
		f := math.Trunc(float64(v))
		switch {
		case f < 0 && f >= math.MinInt32:
			return NarrowArg(uint32(int32(f)))
		case f >= 0 && f <= math.MaxUint32:
			return NarrowArg(uint32(f))
		case f > math.MaxUint32 && f < math.MaxUint64:
			return WideArg(uint64(f))
		}
		return NarrowArg(0)
	case lua.LString:
		return TextArg(string(v))
	case lua.LBool:
		if v {
			return NarrowArg(1)
		}
		return NarrowArg(0)
	case *lua.LNilType:
		return TextArg("")
	}
	return TextArg(v.String())
}
