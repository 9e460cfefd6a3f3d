// Package op defines the instruction codes executed by the tape machine.
// Both source notations decode to these same codes.
package op

// Code is an instruction of the tape machine. Instructions carry no operands.
type Code uint8

const (
	Invalid Code = 0

	// Pointer movement
	MoveRight Code = 1
	MoveLeft  Code = 2

	// Cell arithmetic
	Increment Code = 10
	Decrement Code = 11

	// Control flow
	LoopStart Code = 20
	LoopEnd   Code = 21

	// I/O
	Output Code = 30
	Input  Code = 31
)

// Info contains information about an instruction code.
type Info struct {
	Code Code
	Name string
}

var (
	infos = make([]Info, 256)
	codes []Code
)

func init() {
	type opInfo struct {
		op   Code
		name string
	}
	ops := []opInfo{
		{MoveRight, "MOVE_RIGHT"},
		{MoveLeft, "MOVE_LEFT"},
		{Increment, "INCREMENT"},
		{Decrement, "DECREMENT"},
		{LoopStart, "LOOP_START"},
		{LoopEnd, "LOOP_END"},
		{Output, "OUTPUT"},
		{Input, "INPUT"},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Name: o.name,
			Code: o.op,
		}
		codes = append(codes, o.op)
	}
}

// GetInfo returns information about the given instruction code. The zero
// Info is returned for codes that are not instructions.
func GetInfo(op Code) Info {
	return infos[op]
}

// All returns every valid instruction code in table order.
func All() []Code {
	out := make([]Code, len(codes))
	copy(out, codes)
	return out
}

// Valid reports whether c is one of the eight instructions.
func (c Code) Valid() bool {
	return infos[c].Name != ""
}

// IsLoop reports whether c is a loop marker.
func (c Code) IsLoop() bool {
	return c == LoopStart || c == LoopEnd
}

func (c Code) String() string {
	if name := infos[c].Name; name != "" {
		return name
	}
	return "INVALID"
}
