package net

import (
	"fmt"

	"LocalPaint/internal/paint"
)

// ClientMessage is one command sent by the browser host.
type ClientMessage struct {
	Type  string  `json:"type"`
	Phase string  `json:"phase,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Mode  string  `json:"mode,omitempty"`
	Width float64 `json:"width,omitempty"`
	Color string  `json:"color,omitempty"`
	Text  string  `json:"text,omitempty"`
}

// ServerMessage is a JSON notification to the browser host. Raster frames
// travel separately as binary PNG messages.
type ServerMessage struct {
	Type  string     `json:"type"`
	X     float64    `json:"x,omitempty"`
	Y     float64    `json:"y,omitempty"`
	State *StateInfo `json:"state,omitempty"`
	Error string     `json:"error,omitempty"`
}

// StateInfo mirrors the session's tool state so the toolbar can follow
// changes the engine made itself, such as the picker adopting a colour.
type StateInfo struct {
	Mode       paint.Mode `json:"mode"`
	Color      string     `json:"color"`
	LineWidth  float64    `json:"lineWidth"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Undo       int        `json:"undo"`
	Redo       int        `json:"redo"`
	PromptOpen bool       `json:"promptOpen"`
}

func stateOf(s *paint.Session) *StateInfo {
	st := &StateInfo{
		Mode:       s.Mode(),
		Undo:       s.History().UndoLen(),
		Redo:       s.History().RedoLen(),
		PromptOpen: s.PromptPending(),
	}
	if surf := s.Surface(); surf != nil {
		st.Color = surf.StrokeColor().Hex()
		st.LineWidth = surf.LineWidth()
		st.Width = surf.Width()
		st.Height = surf.Height()
	}
	return st
}

// apply routes one client command into the session.
func apply(s *paint.Session, m ClientMessage) error {
	switch m.Type {
	case "pointer":
		at := paint.Pt(m.X, m.Y)
		switch m.Phase {
		case "down":
			s.PointerDown(at)
		case "move":
			s.PointerMove(at)
		case "up":
			s.PointerUp(at)
		case "leave":
			s.PointerLeave(at)
		default:
			return fmt.Errorf("unknown pointer phase %q", m.Phase)
		}
	case "mode":
		mode, err := paint.ParseMode(m.Mode)
		if err != nil {
			return err
		}
		s.SetMode(mode)
	case "width":
		s.SetStrokeWidth(m.Width)
	case "color":
		return s.SetStrokeColor(m.Color)
	case "undo":
		s.Undo()
	case "redo":
		s.Redo()
	case "clear":
		s.ClearCanvas()
	case "text":
		s.SubmitText(m.Text)
	case "cancelText":
		s.CancelText()
	case "refresh":
	default:
		return fmt.Errorf("unknown message type %q", m.Type)
	}
	return nil
}
