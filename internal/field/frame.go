package field

type CommandKind uint8

const (
	CmdClear CommandKind = iota
	CmdCircle
	CmdLine
)

func (k CommandKind) String() string {
	switch k {
	case CmdClear:
		return "clear"
	case CmdCircle:
		return "circle"
	case CmdLine:
		return "line"
	}
	return "unknown"
}

// Command is one drawing instruction. Which fields matter depends on Kind:
//
//	clear:  X1, Y1 (surface size)
//	circle: X0, Y0, Radius, Alpha, Hue
//	line:   X0, Y0, X1, Y1, Width, Alpha, Hue
type Command struct {
	Kind   CommandKind
	X0, Y0 float64
	X1, Y1 float64
	Radius float64
	Width  float64
	Alpha  float64
	Hue    float64
}

// Frame is the output of one tick, in draw order.
type Frame struct {
	Tick     uint64
	Bounds   Bounds
	Commands []Command

	Circles   int
	Links     int
	Attracted int
	Bounces   int
}

// Each calls fn for every command of kind k, in order.
func (f *Frame) Each(k CommandKind, fn func(Command)) {
	for _, c := range f.Commands {
		if c.Kind == k {
			fn(c)
		}
	}
}
