package timer

import (
	"testing"

	"github.com/itarato-go/gbcore/internal/bus"
)

func TestTIMAOverflowReloadsFromTMAAndRaisesInterrupt(t *testing.T) {
	m := bus.New(nil)
	m.Write(bus.TAC, 0x05) // enabled, clock=16 cycles/tick
	m.Write(bus.TIMA, 0xFF)
	m.Write(bus.TMA, 0x07)

	// Four 4-cycle ticks accumulate the 16 cycles one TIMA increment needs.
	var tm Timer
	for i := 0; i < 4; i++ {
		tm.Tick(4, m)
	}

	if got := m.Read(bus.TIMA); got != 0x07 {
		t.Fatalf("TIMA after overflow = %#02x, want reload value 0x07", got)
	}
	if m.Read(bus.IF)&0x01 == 0 {
		t.Fatalf("IF bit 0 not set after TIMA overflow")
	}
}

func TestTimerDisabledDoesNotIncrementTIMA(t *testing.T) {
	m := bus.New(nil)
	m.Write(bus.TAC, 0x00) // disabled
	m.Write(bus.TIMA, 0x10)

	var tm Timer
	for i := 0; i < 100; i++ {
		tm.Tick(4, m)
	}
	if got := m.Read(bus.TIMA); got != 0x10 {
		t.Fatalf("TIMA = %#02x, want unchanged 0x10", got)
	}
}

func TestDividerIncrementsEvery256Cycles(t *testing.T) {
	m := bus.New(nil)
	var tm Timer
	for i := 0; i < 255; i++ {
		tm.Tick(1, m)
	}
	if got := m.Read(bus.DIV); got != 0 {
		t.Fatalf("DIV after 255 cycles = %#02x, want 0", got)
	}
	tm.Tick(1, m)
	if got := m.Read(bus.DIV); got != 1 {
		t.Fatalf("DIV after 256 cycles = %#02x, want 1", got)
	}
}
