package bus

// Register addresses a PPU, joypad, or serial-link device would attach to.
// The bus stores them as plain bytes with no rendering, input-polling, or
// transfer timing of its own — a future device only needs to Read/Write
// these addresses through the Bus it already has.
const (
	JOYP uint16 = 0xFF00
	SB   uint16 = 0xFF01
	SC   uint16 = 0xFF02
	SCY  uint16 = 0xFF42
	SCX  uint16 = 0xFF43
	LY   uint16 = 0xFF44
	LYC  uint16 = 0xFF45
	BGP  uint16 = 0xFF47
	OBP0 uint16 = 0xFF48
	OBP1 uint16 = 0xFF49
	WY   uint16 = 0xFF4A
	WX   uint16 = 0xFF4B
)
