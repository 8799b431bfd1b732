package interp

import (
	"justina/cmdline"
	"justina/evalstack"
	"justina/flowctrl"
	"justina/host"
	"justina/linerange"
	"justina/parser"
	"justina/symbols"
	"justina/token"
)

// Housekeeping is the bit-flag word the host callback reads and writes at
// every suspension point (§5 "Suspension points", §6 "set_housekeeping").
// Status bits are written by the interpreter; request bits are read by it.
type Housekeeping struct {
	// Status (interpreter → host).
	Idle, Parsing, Executing, Stopped, DataInOut bool

	// Requests (host → interpreter).
	Kill, Abort, Stop, SetStandardConsole bool
}

// HousekeepingFunc is invoked at every suspension point; it may mutate hk
// in place to signal a request.
type HousekeepingFunc func(hk *Housekeeping)

// Interpreter is the single process-wide object (§9 "wrap all process-wide
// fields in one struct") tying together every component. It is built by
// New and has no Run loop; there is nothing to explicitly drop, since Go's
// GC reclaims the arenas/stacks once the Interpreter value is released.
type Interpreter struct {
	Arena *token.Arena
	Vars  *symbols.Variables
	Lines *linerange.Index
	Eval  *evalstack.Stack
	Flow  *flowctrl.Stack
	Cmd   *cmdline.Stack
	Par   *parser.Parser

	Display DisplaySettings

	hk      Housekeeping
	hkFunc  HousekeepingFunc
	foreign *ForeignRegistry
	Streams *host.StreamSet

	// pc is the token arena offset of the next token to dispatch.
	pc int

	// lastResult holds the most recent immediate-mode expression value, the
	// "last result" ring of §4.2 ("store it in the 'last result' ring").
	lastResult evalstack.Level

	// LastError is populated by a trapped execution error and readable from
	// expressions via the supplemented err() accessor (SPEC_FULL.md).
	LastError Code
}

// Config bundles the capacity constants §2 calls "compile-time constant",
// generalized per SPEC_FULL.md's AMBIENT STACK into configuration fields.
type Config struct {
	ArenaCapacity  int
	ProgramVarCap  int
	UserVarCap     int
	StaticVarCap   int
	FuncCap        int
	ForeignCap     int
	ValueStoreCap  int
	LocalValueCap  int
	MaxCallDepth   int
	MaxBreakpoints int
}

// DefaultConfig reproduces the historical fixed-constant capacities of the
// original microcontroller build.
func DefaultConfig() Config {
	return Config{
		ArenaCapacity:  16 * 1024,
		ProgramVarCap:  256,
		UserVarCap:     64,
		StaticVarCap:   64,
		FuncCap:        128,
		ForeignCap:     64,
		ValueStoreCap:  512,
		LocalValueCap:  64,
		MaxCallDepth:   64,
		MaxBreakpoints: 32,
	}
}

// New builds an idle Interpreter from cfg.
func New(cfg Config) *Interpreter {
	arena := token.NewArena(cfg.ArenaCapacity)
	vars := symbols.NewVariables(cfg.ProgramVarCap, cfg.UserVarCap, cfg.StaticVarCap, cfg.FuncCap, cfg.ForeignCap, cfg.ValueStoreCap)
	lines := linerange.NewIndex(nil)

	it := &Interpreter{
		Arena:   arena,
		Vars:    vars,
		Lines:   lines,
		Eval:    evalstack.NewStack(),
		Flow:    flowctrl.NewStack(),
		Cmd:     cmdline.NewStack(),
		Par:     parser.NewParser(arena, vars, lines, cfg.LocalValueCap),
		Display: DefaultDisplaySettings(),
		foreign: NewForeignRegistry(),
		Streams: host.NewStreamSet(),
	}
	it.hk.Idle = true
	return it
}

// SetHousekeeping installs the host's housekeeping callback (§6).
func (it *Interpreter) SetHousekeeping(fn HousekeepingFunc) { it.hkFunc = fn }

// checkHousekeeping invokes the host callback (if any) and translates a
// request bit into the corresponding event Code, per §5's cancellation
// levels (kill hardest, then abort, then stop).
func (it *Interpreter) checkHousekeeping() Code {
	if it.hkFunc != nil {
		it.hkFunc(&it.hk)
	}
	switch {
	case it.hk.Kill:
		return EventKill
	case it.hk.Abort:
		return EventAbort
	case it.hk.Stop:
		return EventStopForDebug
	default:
		return OK
	}
}

// LastResult returns the most recent immediate-mode expression value.
func (it *Interpreter) LastResult() evalstack.Level { return it.lastResult }
