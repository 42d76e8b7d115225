package ui

import (
	"image"
	"math"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
)

// dragThreshold is the distance in layout units a pressed pointer must
// travel before a drag message fires.
const dragThreshold = 1.0

// Status reports how an event was handled.
type Status int

const (
	// Ignored means the event was left untouched for ancestors.
	Ignored Status = iota
	// Captured means the event was consumed and produced at most one message.
	Captured
)

// Interceptor lets the wrapped child consume an event before the area
// classifies it. Returning true means the child captured the event.
type Interceptor func(ev pointer.Event, bounds image.Rectangle) bool

// MouseArea wraps one child widget and turns raw pointer/touch events over
// the child's rectangle into semantic messages. It contributes no visual
// output of its own; layout and drawing delegate entirely to the child.
type MouseArea struct {
	child     layout.Widget
	intercept Interceptor

	onPress         Msg
	onRelease       Msg
	onRightPress    Msg
	onRightRelease  Msg
	onMiddlePress   Msg
	onMiddleRelease Msg
	onDrag          Msg
	onEnter         Msg
	onExit          Msg
	onWheel         func(scroll f32.Point) Msg

	// dragOrigin is the position of the active press, nil once released or
	// after a drag message has fired.
	dragOrigin *f32.Point
	// outOfBounds tracks whether the last known position was outside the
	// child rectangle, so enter/exit fire once per transition.
	outOfBounds bool
	// buttons is the last observed pressed-button set, used to tell which
	// button a release event let go of.
	buttons pointer.Buttons
}

// NewMouseArea wraps child in a gesture-recognition area.
func NewMouseArea(child layout.Widget) *MouseArea {
	return &MouseArea{child: child, outOfBounds: true}
}

// WithInterceptor gives the child first refusal on every event.
func (m *MouseArea) WithInterceptor(i Interceptor) *MouseArea {
	m.intercept = i
	return m
}

// OnPress fires msg on a left press or touch begin.
func (m *MouseArea) OnPress(msg Msg) *MouseArea { m.onPress = msg; return m }

// OnRelease fires msg on a left release or touch end.
func (m *MouseArea) OnRelease(msg Msg) *MouseArea { m.onRelease = msg; return m }

// OnRightPress fires msg on a right press.
func (m *MouseArea) OnRightPress(msg Msg) *MouseArea { m.onRightPress = msg; return m }

// OnRightRelease fires msg on a right release.
func (m *MouseArea) OnRightRelease(msg Msg) *MouseArea { m.onRightRelease = msg; return m }

// OnMiddlePress fires msg on a middle press.
func (m *MouseArea) OnMiddlePress(msg Msg) *MouseArea { m.onMiddlePress = msg; return m }

// OnMiddleRelease fires msg on a middle release.
func (m *MouseArea) OnMiddleRelease(msg Msg) *MouseArea { m.onMiddleRelease = msg; return m }

// OnDrag fires msg once when the pointer moves more than the drag threshold
// from the press origin while pressed.
func (m *MouseArea) OnDrag(msg Msg) *MouseArea { m.onDrag = msg; return m }

// OnEnter fires msg when the pointer enters the child rectangle.
func (m *MouseArea) OnEnter(msg Msg) *MouseArea { m.onEnter = msg; return m }

// OnExit fires msg when the pointer leaves the child rectangle.
func (m *MouseArea) OnExit(msg Msg) *MouseArea { m.onExit = msg; return m }

// OnWheel derives a message from the raw scroll delta of a wheel event.
func (m *MouseArea) OnWheel(f func(scroll f32.Point) Msg) *MouseArea { m.onWheel = f; return m }

// Layout draws the child, registers the area for pointer input over the
// child's rectangle, and feeds pending events through the classifier.
func (m *MouseArea) Layout(gtx layout.Context, emit func(Msg)) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := m.child(gtx)
	call := macro.Stop()

	bounds := image.Rectangle{Max: dims.Size}
	defer clip.Rect(bounds).Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, m)

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: m,
			Kinds: pointer.Press | pointer.Release | pointer.Move | pointer.Drag |
				pointer.Scroll | pointer.Enter | pointer.Leave | pointer.Cancel,
			ScrollY: pointer.ScrollRange{Min: -1 << 10, Max: 1 << 10},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		m.process(pe, bounds, emit)
	}

	call.Add(gtx.Ops)
	return dims
}

// process classifies one event against the child rectangle, in a fixed
// priority order, emitting at most one message. The child interceptor is
// always consulted first.
func (m *MouseArea) process(ev pointer.Event, bounds image.Rectangle, emit func(Msg)) Status {
	pressed, released := m.trackButtons(ev)

	if m.intercept != nil && m.intercept(ev, bounds) {
		return Captured
	}

	if !m.inBounds(ev, bounds) {
		if !m.outOfBounds && (m.onEnter != nil || m.onExit != nil) && isMovement(ev) {
			m.outOfBounds = true
			if m.onExit != nil {
				emit(m.onExit)
			}
			return Captured
		}
		return Ignored
	}

	if m.onPress != nil && pressed.Contain(pointer.ButtonPrimary) {
		origin := ev.Position
		m.dragOrigin = &origin
		emit(m.onPress)
		return Captured
	}
	if m.onRelease != nil && released.Contain(pointer.ButtonPrimary) {
		m.dragOrigin = nil
		emit(m.onRelease)
		return Captured
	}
	if m.onRightPress != nil && pressed.Contain(pointer.ButtonSecondary) {
		emit(m.onRightPress)
		return Captured
	}
	if m.onRightRelease != nil && released.Contain(pointer.ButtonSecondary) {
		emit(m.onRightRelease)
		return Captured
	}
	if m.onMiddlePress != nil && pressed.Contain(pointer.ButtonTertiary) {
		emit(m.onMiddlePress)
		return Captured
	}
	if m.onMiddleRelease != nil && released.Contain(pointer.ButtonTertiary) {
		emit(m.onMiddleRelease)
		return Captured
	}

	if (m.onEnter != nil || m.onExit != nil) && isMovement(ev) && m.outOfBounds {
		m.outOfBounds = false
		if m.onEnter != nil {
			emit(m.onEnter)
		}
		return Captured
	}

	if m.dragOrigin == nil && m.onDrag != nil {
		if pressed.Contain(pointer.ButtonPrimary) {
			origin := ev.Position
			m.dragOrigin = &origin
		}
	} else if m.onDrag != nil && m.dragOrigin != nil {
		if distance(ev.Position, *m.dragOrigin) > dragThreshold {
			m.dragOrigin = nil
			emit(m.onDrag)
			return Captured
		}
	}

	if m.onWheel != nil && ev.Kind == pointer.Scroll {
		emit(m.onWheel(ev.Scroll))
		return Captured
	}

	return Ignored
}

// trackButtons diffs the pressed-button set against the previous event so a
// press or release can be attributed to one button. Touch contacts pair
// with the primary button.
func (m *MouseArea) trackButtons(ev pointer.Event) (pressed, released pointer.Buttons) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Source == pointer.Touch {
			return pointer.ButtonPrimary, 0
		}
		pressed = ev.Buttons &^ m.buttons
		m.buttons = ev.Buttons
	case pointer.Release:
		if ev.Source == pointer.Touch {
			return 0, pointer.ButtonPrimary
		}
		released = m.buttons &^ ev.Buttons
		m.buttons = ev.Buttons
	case pointer.Cancel:
		m.buttons = 0
	}
	return pressed, released
}

// inBounds hit-tests the event position. Leave events always count as
// outside regardless of the reported position.
func (m *MouseArea) inBounds(ev pointer.Event, bounds image.Rectangle) bool {
	if ev.Kind == pointer.Leave || ev.Kind == pointer.Cancel {
		return false
	}
	p := image.Pt(int(ev.Position.X), int(ev.Position.Y))
	return p.In(bounds)
}

func isMovement(ev pointer.Event) bool {
	return ev.Kind == pointer.Move || ev.Kind == pointer.Drag ||
		ev.Kind == pointer.Enter || ev.Kind == pointer.Leave
}

func distance(a, b f32.Point) float32 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return float32(math.Hypot(dx, dy))
}
