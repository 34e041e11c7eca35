package cpu

import "github.com/itarato-go/gbcore/internal/bitutil"

// opFunc is the uniform handler signature the redesigned dispatcher uses
// in place of the original source's if-ladder: every entry gets the CPU
// (and, through it, the bus) and returns the instruction's duration in
// machine cycles.
type opFunc func(c *CPU) (int, error)

// primaryOps is the 256-entry primary opcode table, built once at package
// init so opcode coverage is a simple array, not a chain of branches.
var primaryOps [256]opFunc

func ok(cycles int) (int, error) { return cycles, nil }

func init() {
	primaryOps[0x00] = func(c *CPU) (int, error) { return ok(4) } // NOP

	buildLoadGroup()
	buildImmediateLoads()
	buildALUGroup()
	buildIncDecGroup()
	buildRotateAndFlagGroup()
	buildJumpGroup()
	buildStackGroup()
	buildMiscGroup()

	primaryOps[0xCB] = func(c *CPU) (int, error) {
		cb := c.fetch8()
		handler := cbOps[cb]
		if handler == nil {
			return 0, &FaultError{Opcode: cb, PC: c.PC - 1, CB: true}
		}
		return handler(c)
	}
}

// buildLoadGroup fills the LD r,r' block (0x40..0x7F), leaving 0x76
// (HALT) for buildMiscGroup.
func buildLoadGroup() {
	for d := byte(0); d < 8; d++ {
		for s := byte(0); s < 8; s++ {
			op := 0x40 + d*8 + s
			if op == 0x76 {
				continue
			}
			dst, src := d, s
			cyc := 4
			if dst == 6 || src == 6 {
				cyc = 8
			}
			primaryOps[op] = func(c *CPU) (int, error) {
				c.regSet(dst, c.regGet(src))
				return ok(cyc)
			}
		}
	}
}

func buildImmediateLoads() {
	regImm := map[byte]byte{0x06: 0, 0x0E: 1, 0x16: 2, 0x1E: 3, 0x26: 4, 0x2E: 5, 0x3E: 7}
	for op, idx := range regImm {
		idx := idx
		primaryOps[op] = func(c *CPU) (int, error) {
			c.regSet(idx, c.fetch8())
			return ok(8)
		}
	}

	primaryOps[0x01] = func(c *CPU) (int, error) { c.setBC(c.fetch16()); return ok(12) }
	primaryOps[0x11] = func(c *CPU) (int, error) { c.setDE(c.fetch16()); return ok(12) }
	primaryOps[0x21] = func(c *CPU) (int, error) { c.setHL(c.fetch16()); return ok(12) }
	primaryOps[0x31] = func(c *CPU) (int, error) { c.SP = c.fetch16(); return ok(12) }
	primaryOps[0x08] = func(c *CPU) (int, error) { // LD (a16),SP
		addr := c.fetch16()
		c.write16(addr, c.SP)
		return ok(20)
	}
	primaryOps[0x36] = func(c *CPU) (int, error) { // LD (HL),d8
		v := c.fetch8()
		c.write8(c.getHL(), v)
		return ok(12)
	}

	primaryOps[0x02] = func(c *CPU) (int, error) { c.write8(c.getBC(), c.A); return ok(8) }
	primaryOps[0x12] = func(c *CPU) (int, error) { c.write8(c.getDE(), c.A); return ok(8) }
	primaryOps[0x0A] = func(c *CPU) (int, error) { c.A = c.read8(c.getBC()); return ok(8) }
	primaryOps[0x1A] = func(c *CPU) (int, error) { c.A = c.read8(c.getDE()); return ok(8) }

	primaryOps[0x22] = func(c *CPU) (int, error) { // LD (HL+),A
		hl := c.getHL()
		c.write8(hl, c.A)
		c.setHL(hl + 1)
		return ok(8)
	}
	primaryOps[0x2A] = func(c *CPU) (int, error) { // LD A,(HL+)
		hl := c.getHL()
		c.A = c.read8(hl)
		c.setHL(hl + 1)
		return ok(8)
	}
	primaryOps[0x32] = func(c *CPU) (int, error) { // LD (HL-),A
		hl := c.getHL()
		c.write8(hl, c.A)
		c.setHL(hl - 1)
		return ok(8)
	}
	primaryOps[0x3A] = func(c *CPU) (int, error) { // LD A,(HL-)
		hl := c.getHL()
		c.A = c.read8(hl)
		c.setHL(hl - 1)
		return ok(8)
	}

	// LDH/LD via the 0xFF00 page. Address is always computed in a 16-bit
	// variable — the source's 8-bit address variable truncated the high
	// byte; see DESIGN.md.
	primaryOps[0xE0] = func(c *CPU) (int, error) {
		n := uint16(c.fetch8())
		c.write8(0xFF00+n, c.A)
		return ok(12)
	}
	primaryOps[0xF0] = func(c *CPU) (int, error) {
		n := uint16(c.fetch8())
		c.A = c.read8(0xFF00 + n)
		return ok(12)
	}
	primaryOps[0xE2] = func(c *CPU) (int, error) { c.write8(0xFF00+uint16(c.C), c.A); return ok(8) }
	primaryOps[0xF2] = func(c *CPU) (int, error) { c.A = c.read8(0xFF00 + uint16(c.C)); return ok(8) }

	primaryOps[0xEA] = func(c *CPU) (int, error) { addr := c.fetch16(); c.write8(addr, c.A); return ok(16) }
	primaryOps[0xFA] = func(c *CPU) (int, error) { addr := c.fetch16(); c.A = c.read8(addr); return ok(16) }
}

// buildALUGroup covers ADD/ADC/SUB/SBC/AND/XOR/OR/CP against registers,
// (HL), and an 8-bit immediate.
func buildALUGroup() {
	type aluFn func(a, b byte) (byte, bool, bool, bool, bool)
	group := []aluFn{
		func(a, b byte) (byte, bool, bool, bool, bool) { return add8(a, b) },
		nil, // ADC needs carry-in; handled specially below
		func(a, b byte) (byte, bool, bool, bool, bool) { return sub8(a, b) },
		nil, // SBC, same as ADC
		func(a, b byte) (byte, bool, bool, bool, bool) { return and8(a, b) },
		func(a, b byte) (byte, bool, bool, bool, bool) { return xor8(a, b) },
		func(a, b byte) (byte, bool, bool, bool, bool) { return or8(a, b) },
		nil, // CP doesn't write A; handled specially below
	}

	apply := func(c *CPU, g byte, src byte) (int, error) {
		switch g {
		case 1:
			r, z, n, h, cy := adc8(c.A, src, c.flagSet(flagC))
			c.A = r
			c.setZNHC(z, n, h, cy)
		case 3:
			r, z, n, h, cy := sbc8(c.A, src, c.flagSet(flagC))
			c.A = r
			c.setZNHC(z, n, h, cy)
		case 7:
			z, n, h, cy := cp8(c.A, src)
			c.setZNHC(z, n, h, cy)
		default:
			r, z, n, h, cy := group[g](c.A, src)
			c.A = r
			c.setZNHC(z, n, h, cy)
		}
		return 0, nil
	}

	for g := byte(0); g < 8; g++ {
		for s := byte(0); s < 8; s++ {
			op := 0x80 + g*8 + s
			grp, src := g, s
			cyc := 4
			if src == 6 {
				cyc = 8
			}
			primaryOps[op] = func(c *CPU) (int, error) {
				apply(c, grp, c.regGet(src))
				return ok(cyc)
			}
		}
	}

	immOps := map[byte]byte{0xC6: 0, 0xCE: 1, 0xD6: 2, 0xDE: 3, 0xE6: 4, 0xEE: 5, 0xF6: 6, 0xFE: 7}
	for op, g := range immOps {
		grp := g
		primaryOps[op] = func(c *CPU) (int, error) {
			apply(c, grp, c.fetch8())
			return ok(8)
		}
	}
}

func buildIncDecGroup() {
	for r := byte(0); r < 8; r++ {
		reg := r
		incOp := 0x04 + r*8
		decOp := 0x05 + r*8
		primaryOps[incOp] = func(c *CPU) (int, error) {
			old := c.regGet(reg)
			v := old + 1
			c.regSet(reg, v)
			c.setZNHC(v == 0, false, (old&0x0F) == 0x0F, c.flagSet(flagC))
			if reg == 6 {
				return ok(12)
			}
			return ok(4)
		}
		primaryOps[decOp] = func(c *CPU) (int, error) {
			old := c.regGet(reg)
			v := old - 1
			c.regSet(reg, v)
			c.setZNHC(v == 0, true, (old&0x0F) == 0x00, c.flagSet(flagC))
			if reg == 6 {
				return ok(12)
			}
			return ok(4)
		}
	}

	incDec16 := []struct {
		op   byte
		get  func(c *CPU) uint16
		set  func(c *CPU, v uint16)
		delt int16
	}{
		{0x03, (*CPU).getBC, (*CPU).setBC, 1},
		{0x13, (*CPU).getDE, (*CPU).setDE, 1},
		{0x23, (*CPU).getHL, (*CPU).setHL, 1},
		{0x0B, (*CPU).getBC, (*CPU).setBC, -1},
		{0x1B, (*CPU).getDE, (*CPU).setDE, -1},
		{0x2B, (*CPU).getHL, (*CPU).setHL, -1},
	}
	for _, e := range incDec16 {
		e := e
		primaryOps[e.op] = func(c *CPU) (int, error) {
			e.set(c, uint16(int32(e.get(c))+int32(e.delt)))
			return ok(8)
		}
	}
	primaryOps[0x33] = func(c *CPU) (int, error) { c.SP++; return ok(8) }
	primaryOps[0x3B] = func(c *CPU) (int, error) { c.SP--; return ok(8) }

	addHL16 := map[byte]func(c *CPU) uint16{
		0x09: (*CPU).getBC,
		0x19: (*CPU).getDE,
		0x29: (*CPU).getHL,
		0x39: func(c *CPU) uint16 { return c.SP },
	}
	for op, get := range addHL16 {
		get := get
		primaryOps[op] = func(c *CPU) (int, error) {
			hl := c.getHL()
			rhs := get(c)
			r := uint32(hl) + uint32(rhs)
			h := ((hl & 0x0FFF) + (rhs & 0x0FFF)) > 0x0FFF
			c.setHL(uint16(r))
			c.setZNHC(c.flagSet(flagZ), false, h, r > 0xFFFF)
			return ok(8)
		}
	}
}

func buildRotateAndFlagGroup() {
	primaryOps[0x07] = func(c *CPU) (int, error) { // RLCA
		cy := bitutil.IsBitN(c.A, 7)
		c.A = bitutil.RotateLeft(c.A)
		c.setZNHC(false, false, false, cy)
		return ok(4)
	}
	primaryOps[0x0F] = func(c *CPU) (int, error) { // RRCA
		cy := bitutil.IsBitN(c.A, 0)
		c.A = bitutil.RotateRight(c.A)
		c.setZNHC(false, false, false, cy)
		return ok(4)
	}
	primaryOps[0x17] = func(c *CPU) (int, error) { // RLA
		out := (c.A >> 7) & 1
		in := byte(0)
		if c.flagSet(flagC) {
			in = 1
		}
		c.A = (c.A << 1) | in
		c.setZNHC(false, false, false, out == 1)
		return ok(4)
	}
	primaryOps[0x1F] = func(c *CPU) (int, error) { // RRA
		out := c.A & 1
		in := byte(0)
		if c.flagSet(flagC) {
			in = 1
		}
		c.A = (c.A >> 1) | (in << 7)
		c.setZNHC(false, false, false, out == 1)
		return ok(4)
	}
	primaryOps[0x27] = func(c *CPU) (int, error) { // DAA
		a := c.A
		cf := c.flagSet(flagC)
		if !c.flagSet(flagN) {
			if cf || a > 0x99 {
				a += 0x60
				cf = true
			}
			if c.flagSet(flagH) || (a&0x0F) > 9 {
				a += 0x06
			}
		} else {
			if cf {
				a -= 0x60
			}
			if c.flagSet(flagH) {
				a -= 0x06
			}
		}
		c.A = a
		c.setZNHC(c.A == 0, c.flagSet(flagN), false, cf)
		return ok(4)
	}
	primaryOps[0x2F] = func(c *CPU) (int, error) { // CPL
		c.A = ^c.A
		c.F = (c.F & (flagZ | flagC)) | flagN | flagH
		return ok(4)
	}
	primaryOps[0x37] = func(c *CPU) (int, error) { // SCF
		c.F = (c.F & flagZ) | flagC
		return ok(4)
	}
	primaryOps[0x3F] = func(c *CPU) (int, error) { // CCF
		cy := !c.flagSet(flagC)
		c.F = (c.F & flagZ)
		if cy {
			c.F |= flagC
		}
		return ok(4)
	}
}

func buildJumpGroup() {
	primaryOps[0xC3] = func(c *CPU) (int, error) { c.PC = c.fetch16(); return ok(16) } // JP a16
	primaryOps[0xE9] = func(c *CPU) (int, error) { c.PC = c.getHL(); return ok(4) }     // JP (HL)
	primaryOps[0x18] = func(c *CPU) (int, error) { // JR r8
		off := int8(c.fetch8())
		c.PC = uint16(int32(c.PC) + int32(off))
		return ok(12)
	}

	jrCC := []struct {
		op   byte
		mask byte
		want bool
	}{{0x20, flagZ, false}, {0x28, flagZ, true}, {0x30, flagC, false}, {0x38, flagC, true}}
	for _, e := range jrCC {
		e := e
		primaryOps[e.op] = func(c *CPU) (int, error) {
			off := int8(c.fetch8())
			if c.flagSet(e.mask) == e.want {
				c.PC = uint16(int32(c.PC) + int32(off))
				return ok(12)
			}
			return ok(8)
		}
	}

	jpCC := []struct {
		op   byte
		mask byte
		want bool
	}{{0xC2, flagZ, false}, {0xCA, flagZ, true}, {0xD2, flagC, false}, {0xDA, flagC, true}}
	for _, e := range jpCC {
		e := e
		primaryOps[e.op] = func(c *CPU) (int, error) {
			addr := c.fetch16()
			if c.flagSet(e.mask) == e.want {
				c.PC = addr
				return ok(16)
			}
			return ok(12)
		}
	}

	primaryOps[0xCD] = func(c *CPU) (int, error) { // CALL a16
		addr := c.fetch16()
		c.push16(c.PC)
		c.PC = addr
		return ok(24)
	}
	callCC := []struct {
		op   byte
		mask byte
		want bool
	}{{0xC4, flagZ, false}, {0xCC, flagZ, true}, {0xD4, flagC, false}, {0xDC, flagC, true}}
	for _, e := range callCC {
		e := e
		primaryOps[e.op] = func(c *CPU) (int, error) {
			addr := c.fetch16()
			if c.flagSet(e.mask) == e.want {
				c.push16(c.PC)
				c.PC = addr
				return ok(24)
			}
			return ok(12)
		}
	}

	primaryOps[0xC9] = func(c *CPU) (int, error) { c.PC = c.pop16(); return ok(16) } // RET
	primaryOps[0xD9] = func(c *CPU) (int, error) { // RETI
		c.PC = c.pop16()
		c.IME = true
		return ok(16)
	}
	retCC := []struct {
		op   byte
		mask byte
		want bool
	}{{0xC0, flagZ, false}, {0xC8, flagZ, true}, {0xD0, flagC, false}, {0xD8, flagC, true}}
	for _, e := range retCC {
		e := e
		primaryOps[e.op] = func(c *CPU) (int, error) {
			if c.flagSet(e.mask) == e.want {
				c.PC = c.pop16()
				return ok(20)
			}
			return ok(8)
		}
	}

	for t := byte(0); t < 8; t++ {
		target := uint16(t) * 8
		op := 0xC7 + t*8
		primaryOps[op] = func(c *CPU) (int, error) {
			c.push16(c.PC)
			c.PC = target
			return ok(16)
		}
	}
}

func buildStackGroup() {
	type pair struct {
		push, pop byte
		get       func(c *CPU) uint16
		set       func(c *CPU, v uint16)
	}
	pairs := []pair{
		{0xC5, 0xC1, (*CPU).getBC, (*CPU).setBC},
		{0xD5, 0xD1, (*CPU).getDE, (*CPU).setDE},
		{0xE5, 0xE1, (*CPU).getHL, (*CPU).setHL},
		{0xF5, 0xF1, (*CPU).getAF, (*CPU).setAF},
	}
	for _, p := range pairs {
		p := p
		primaryOps[p.push] = func(c *CPU) (int, error) { c.push16(p.get(c)); return ok(16) }
		primaryOps[p.pop] = func(c *CPU) (int, error) { p.set(c, c.pop16()); return ok(12) }
	}

	primaryOps[0xF8] = func(c *CPU) (int, error) { // LD HL,SP+r8
		off := int8(c.fetch8())
		low := byte(c.SP)
		_, _, _, h, cy := add8(low, byte(off))
		c.setHL(uint16(int32(int16(c.SP)) + int32(off)))
		c.setZNHC(false, false, h, cy)
		return ok(12)
	}
	primaryOps[0xF9] = func(c *CPU) (int, error) { c.SP = c.getHL(); return ok(8) } // LD SP,HL
	primaryOps[0xE8] = func(c *CPU) (int, error) {                                 // ADD SP,r8
		off := int8(c.fetch8())
		low := byte(c.SP)
		_, _, _, h, cy := add8(low, byte(off))
		c.SP = uint16(int32(int16(c.SP)) + int32(off))
		c.setZNHC(false, false, h, cy)
		return ok(16)
	}
}

func buildMiscGroup() {
	primaryOps[0x76] = func(c *CPU) (int, error) { c.halted = true; return ok(4) } // HALT
	primaryOps[0xF3] = func(c *CPU) (int, error) {                                 // DI
		c.IME = false
		c.eiPending = false
		return ok(4)
	}
	primaryOps[0xFB] = func(c *CPU) (int, error) { c.eiPending = true; return ok(4) } // EI
}
