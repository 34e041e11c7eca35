package debugger

import (
	"strings"
	"testing"
)

type fakeDumper struct {
	mem [0x10000]byte
}

func (f *fakeDumper) DumpRegisters() string       { return "A=00 F=00" }
func (f *fakeDumper) PeekMemory(addr uint16) byte { return f.mem[addr] }

func TestShouldStopOnCycleBreakpoint(t *testing.T) {
	d := New(strings.NewReader(""), &strings.Builder{}, &fakeDumper{})
	d.condCycleStop = 100
	d.cycleStopSet = true
	if d.ShouldStop(99, 0, 0) {
		t.Fatalf("ShouldStop(99) = true, want false")
	}
	if !d.ShouldStop(100, 0, 0) {
		t.Fatalf("ShouldStop(100) = false, want true")
	}
}

func TestPromptSetsCycleBreakpoint(t *testing.T) {
	var out strings.Builder
	d := New(strings.NewReader("c 42\n"), &out, &fakeDumper{})
	resume := d.Prompt()
	if resume {
		t.Fatalf("Prompt() resume = true, want false (cycle command stays in loop)")
	}
	if d.condCycleStop != 42 {
		t.Fatalf("condCycleStop = %d, want 42", d.condCycleStop)
	}
}

func TestPromptTogglesStepByStep(t *testing.T) {
	var out strings.Builder
	d := New(strings.NewReader("sbs\n"), &out, &fakeDumper{})
	d.Prompt()
	if !d.condStepByStep {
		t.Fatalf("condStepByStep = false, want true after one sbs")
	}
}

func TestPromptQuitStopsLoopAndSetsQuit(t *testing.T) {
	var out strings.Builder
	d := New(strings.NewReader("q\n"), &out, &fakeDumper{})
	resume := d.Prompt()
	if !resume {
		t.Fatalf("Prompt() resume = false, want true on quit")
	}
	if !d.Quit() {
		t.Fatalf("Quit() = false, want true")
	}
}

func TestPromptDumpSetsPendingDumpAndWritesRegisters(t *testing.T) {
	var out strings.Builder
	d := New(strings.NewReader("d\n"), &out, &fakeDumper{})
	d.Prompt()
	if !d.PendingDump() {
		t.Fatalf("PendingDump() = false, want true")
	}
	if d.PendingDump() {
		t.Fatalf("PendingDump() should clear after first read")
	}
	if !strings.Contains(out.String(), "A=00") {
		t.Fatalf("output = %q, want register dump", out.String())
	}
}

func TestPromptMemPeekReadsAddress(t *testing.T) {
	var out strings.Builder
	fd := &fakeDumper{}
	fd.mem[0x1234] = 0x5A
	d := New(strings.NewReader("m 1234\n"), &out, fd)
	d.Prompt()
	if !strings.Contains(out.String(), "0x5a") {
		t.Fatalf("output = %q, want peeked value 0x5a", out.String())
	}
}

func TestPromptUnknownCommandResumesExecution(t *testing.T) {
	var out strings.Builder
	d := New(strings.NewReader("bogus\n"), &out, &fakeDumper{})
	if !d.Prompt() {
		t.Fatalf("Prompt() resume = false, want true on unrecognized input")
	}
}

func TestPromptEOFResumesExecution(t *testing.T) {
	var out strings.Builder
	d := New(strings.NewReader(""), &out, &fakeDumper{})
	if !d.Prompt() {
		t.Fatalf("Prompt() resume = false, want true on EOF")
	}
}
