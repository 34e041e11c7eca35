// Package emu wires a CPU, Bus, Timer, and optional Debugger together into
// the run loop the original source's Environment/main() drove: fetch an
// instruction, tick the timer by its cycle cost, service interrupts, repeat.
package emu

import (
	"fmt"
	"io"

	"github.com/itarato-go/gbcore/internal/bus"
	"github.com/itarato-go/gbcore/internal/cpu"
	"github.com/itarato-go/gbcore/internal/debugger"
	"github.com/itarato-go/gbcore/internal/logctx"
	"github.com/itarato-go/gbcore/internal/timer"
)

// Config contains settings that affect how a run proceeds.
type Config struct {
	Trace    bool // print PC/register trace for every instruction, gated at logctx.Debug
	StartPC  uint16
	MaxSteps int // 0 means unbounded
	Debugger bool
	DebugIn  io.Reader
	DebugOut io.Writer

	// Logger receives the per-instruction trace (Debug). A nil Logger
	// silently drops it, the same way defines.h compiles LOG_DEBUG away
	// when its level isn't defined.
	Logger *logctx.Logger
}

// Environment owns one CPU core, its bus, and its hardware timer, and
// optionally an attached interactive debugger. It is the single entry point
// cmd/gbcore drives.
type Environment struct {
	cfg Config
	bus *bus.Bus
	cpu *cpu.CPU
	tmr *timer.Timer
	dbg *debugger.Debugger

	cycle uint64
}

// New constructs an Environment over the given ROM image (up to 0x8000
// bytes; anything smaller is zero-padded).
func New(cfg Config, rom []byte) *Environment {
	b := bus.New(rom)
	c := cpu.New(b)
	c.SetPC(cfg.StartPC)

	e := &Environment{cfg: cfg, bus: b, cpu: c, tmr: &timer.Timer{}}
	if cfg.Debugger {
		e.dbg = debugger.New(cfg.DebugIn, cfg.DebugOut, e)
	}
	return e
}

// Reset zeroes the bus's RAM and the CPU/timer state, leaving the loaded ROM
// image untouched, matching Environment::reset in the original source.
func (e *Environment) Reset() {
	e.bus.Reset()
	e.cpu = cpu.New(e.bus)
	e.tmr.Reset()
	e.cycle = 0
}

// DumpRegisters implements debugger.Dumper.
func (e *Environment) DumpRegisters() string {
	c := e.cpu
	return fmt.Sprintf("PC=%04X SP=%04X A=%02X F=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X IME=%t",
		c.PC, c.SP, c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.IME)
}

// PeekMemory implements debugger.Dumper.
func (e *Environment) PeekMemory(addr uint16) byte { return e.bus.Read(addr) }

// Run drives the fetch/tick/interrupt loop until MaxSteps instructions have
// executed (0 meaning unbounded), a fault occurs, or the debugger quits. It
// returns the *cpu.FaultError produced by an unrecognized opcode, if any.
func (e *Environment) Run() error {
	for i := 0; e.cfg.MaxSteps == 0 || i < e.cfg.MaxSteps; i++ {
		if e.dbg != nil {
			op := e.bus.Read(e.cpu.PC)
			stop := i == 0 || e.dbg.ShouldStop(e.cycle, op, e.cpu.PC)
			for stop {
				if e.dbg.Prompt() {
					break
				}
				if e.dbg.Quit() {
					return nil
				}
			}
			if e.dbg.Quit() {
				return nil
			}
		}

		if e.cfg.Trace {
			e.cfg.Logger.Debugf("PC=%04X %s", e.cpu.PC, e.DumpRegisters())
		}

		cycles, err := e.cpu.Step()
		if err != nil {
			return err
		}
		e.tmr.Tick(cycles, e.bus)
		e.cycle += uint64(cycles)

		if ic := e.cpu.HandleInterrupts(); ic > 0 {
			e.tmr.Tick(ic, e.bus)
			e.cycle += uint64(ic)
		}

		if e.dbg != nil && e.dbg.PendingDump() {
			fmt.Fprintln(e.cfg.DebugOut, e.DumpRegisters())
		}
	}
	return nil
}

// CPU exposes the underlying core for callers that need direct register
// access (tests, the debugger's own tests).
func (e *Environment) CPU() *cpu.CPU { return e.cpu }

// Bus exposes the underlying bus.
func (e *Environment) Bus() *bus.Bus { return e.bus }
