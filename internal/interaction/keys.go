package interaction

// Key is an editor key understood by the controller.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyRotate
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// Modifier is a bitset of held modifier keys.
type Modifier uint8

const (
	// ModFast selects the large key step.
	ModFast Modifier = 1 << iota
)

// Has reports whether m includes flag.
func (m Modifier) Has(flag Modifier) bool {
	return m&flag != 0
}

// KeySteps are the keyboard move distances in canvas units.
type KeySteps struct {
	Step     float64
	FastStep float64
}

// DefaultKeySteps returns the stock key steps.
func DefaultKeySteps() KeySteps {
	return KeySteps{Step: 1, FastStep: 20}
}

func (s KeySteps) withDefaults() KeySteps {
	d := DefaultKeySteps()
	if s.Step <= 0 {
		s.Step = d.Step
	}
	if s.FastStep <= 0 {
		s.FastStep = d.FastStep
	}
	return s
}

// delta returns the move vector for an arrow key, or false for other keys.
func (s KeySteps) delta(k Key, mods Modifier) (dx, dy float64, ok bool) {
	step := s.Step
	if mods.Has(ModFast) {
		step = s.FastStep
	}
	switch k {
	case KeyUp:
		return 0, -step, true
	case KeyDown:
		return 0, step, true
	case KeyLeft:
		return -step, 0, true
	case KeyRight:
		return step, 0, true
	default:
		return 0, 0, false
	}
}
