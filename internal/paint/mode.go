package paint

import (
	"fmt"
	"strings"
)

// Mode selects how pointer gestures are interpreted.
type Mode int

const (
	Draw Mode = iota
	Erase
	Line
	Text
	Bucket
	Rectangle
	Ellipse
	Triangle
	Heart
	Picker
)

var modeNames = [...]string{
	Draw:      "draw",
	Erase:     "erase",
	Line:      "line",
	Text:      "text",
	Bucket:    "bucket",
	Rectangle: "rectangle",
	Ellipse:   "ellipse",
	Triangle:  "triangle",
	Heart:     "heart",
	Picker:    "picker",
}

// Modes lists every mode in toolbar order.
func Modes() []Mode {
	out := make([]Mode, len(modeNames))
	for i := range modeNames {
		out[i] = Mode(i)
	}
	return out
}

func (m Mode) Valid() bool { return m >= 0 && int(m) < len(modeNames) }

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a mode name such as "rectangle" to its Mode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("paint: unknown mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("paint: invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
