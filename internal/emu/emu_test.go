package emu

import (
	"strings"
	"testing"
)

func TestRunExecutesNOPsUpToMaxSteps(t *testing.T) {
	rom := make([]byte, 0x8000)
	e := New(Config{MaxSteps: 3}, rom)
	if err := e.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if e.CPU().PC != 3 {
		t.Fatalf("PC = %d, want 3 after three NOPs", e.CPU().PC)
	}
}

func TestRunSurfacesFaultFromUnknownOpcode(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0] = 0xD3
	e := New(Config{MaxSteps: 10}, rom)
	err := e.Run()
	if err == nil {
		t.Fatalf("Run() error = nil, want fault")
	}
}

func TestResetClearsCyclesAndRAMButKeepsROM(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x10] = 0xAB
	e := New(Config{}, rom)
	e.Bus().Write(0xC000, 0x42)
	e.Reset()
	if got := e.Bus().Read(0xC000); got != 0 {
		t.Fatalf("RAM after Reset = %#02x, want 0", got)
	}
	if got := e.Bus().Read(0x10); got != 0xAB {
		t.Fatalf("ROM after Reset = %#02x, want 0xAB preserved", got)
	}
}

func TestRunWithDebuggerQuitStopsImmediately(t *testing.T) {
	rom := make([]byte, 0x8000)
	var out strings.Builder
	e := New(Config{
		Debugger: true,
		DebugIn:  strings.NewReader("sbs\nq\n"),
		DebugOut: &out,
		MaxSteps: 100,
	}, rom)
	if err := e.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if e.CPU().PC != 0 {
		t.Fatalf("PC = %d, want 0 (quit before any instruction executed)", e.CPU().PC)
	}
}
