// hardware_context.go - Single owned handle to the video/input backend

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorKind classifies context failures before they are flattened to
// strings at the script boundary.
type ErrorKind int

const (
	ErrPrecondition ErrorKind = iota // required resource not initialized yet
	ErrBackend                       // the video backend rejected the operation
	ErrValidation                    // caller passed an unrecognized or malformed input
	ErrAccess                        // the shared context handle is unusable
)

// ContextError carries the structured failure; only the Error() text
// survives the trip into the scripting runtime.
type ContextError struct {
	Kind      ErrorKind
	Operation string
	Details   string
	Err       error
}

func (e *ContextError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Details)
}

func (e *ContextError) Unwrap() error {
	return e.Err
}

// IsErrorKind reports whether err is a ContextError of the given kind.
func IsErrorKind(err error, kind ErrorKind) bool {
	var ce *ContextError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

func preconditionError(op, details string) *ContextError {
	return &ContextError{Kind: ErrPrecondition, Operation: op, Details: details}
}

func backendError(op, details string, err error) *ContextError {
	return &ContextError{Kind: ErrBackend, Operation: op, Details: details, Err: err}
}

func validationError(op, format string, args ...any) *ContextError {
	return &ContextError{Kind: ErrValidation, Operation: op, Details: fmt.Sprintf(format, args...)}
}

// Script-facing key and mouse button names, matched case-insensitively.
var keyNames = map[string]Scancode{
	"space": ScancodeSpace,
	"left":  ScancodeLeft,
	"right": ScancodeRight,
	"up":    ScancodeUp,
	"down":  ScancodeDown,
}

var mouseButtonNames = map[string]MouseButton{
	"left":   MouseButtonLeft,
	"right":  MouseButtonRight,
	"middle": MouseButtonMiddle,
}

// EventPump is the context's handle on the backend's event and input
// state. It exists only after InitEventPump, mirroring the window/canvas
// lifecycle on the drawing side.
type EventPump struct {
	output VideoOutput
}

// HardwareContext owns the one video backend instance plus the optional
// window, drawing surface and event pump derived from it. It is not safe
// for concurrent use on its own; SharedContext serializes access.
type HardwareContext struct {
	output    VideoOutput
	hasWindow bool
	surface   *Surface
	pump      *EventPump
}

// NewHardwareContext initializes the backend subsystem handle. The
// window, surface and event pump stay nil until their initializers run.
func NewHardwareContext(backend int) (*HardwareContext, error) {
	output, err := NewVideoOutput(backend)
	if err != nil {
		return nil, backendError("context creation", "video backend unavailable", err)
	}
	return &HardwareContext{output: output}, nil
}

// CreateWindow opens (or replaces) the window and allocates a fresh
// drawing surface bound to it. The previous surface, if any, is dropped.
func (ctx *HardwareContext) CreateWindow(title string, width, height int32) error {
	if width <= 0 || height <= 0 {
		return validationError("create_window", "window dimensions must be positive, got %dx%d", width, height)
	}
	cfg := DisplayConfig{Title: title, Width: int(width), Height: int(height), Scale: 1}
	if err := ctx.output.SetDisplayConfig(cfg); err != nil {
		return backendError("create_window", "cannot configure display", err)
	}
	if !ctx.output.IsStarted() {
		if err := ctx.output.Start(); err != nil {
			return backendError("create_window", "cannot open window", err)
		}
	}
	ctx.surface = NewSurface(int(width), int(height))
	ctx.hasWindow = true
	return nil
}

func (ctx *HardwareContext) requireSurface(op string) (*Surface, error) {
	if ctx.surface == nil {
		return nil, preconditionError(op, "canvas not initialized")
	}
	return ctx.surface, nil
}

func (ctx *HardwareContext) SetDrawColor(r, g, b uint8) error {
	surface, err := ctx.requireSurface("set_draw_color")
	if err != nil {
		return err
	}
	surface.SetDrawColor(Color{R: r, G: g, B: b})
	return nil
}

func (ctx *HardwareContext) Clear() error {
	surface, err := ctx.requireSurface("clear")
	if err != nil {
		return err
	}
	surface.Clear()
	return nil
}

func (ctx *HardwareContext) DrawRect(x, y, w, h int32) error {
	surface, err := ctx.requireSurface("draw_rect")
	if err != nil {
		return err
	}
	return surface.DrawRect(int(x), int(y), int(w), int(h))
}

func (ctx *HardwareContext) FillRect(x, y, w, h int32) error {
	surface, err := ctx.requireSurface("fill_rect")
	if err != nil {
		return err
	}
	return surface.FillRect(int(x), int(y), int(w), int(h))
}

func (ctx *HardwareContext) DrawPoint(x, y int32) error {
	surface, err := ctx.requireSurface("draw_point")
	if err != nil {
		return err
	}
	surface.DrawPoint(int(x), int(y))
	return nil
}

func (ctx *HardwareContext) DrawLine(x1, y1, x2, y2 int32) error {
	surface, err := ctx.requireSurface("draw_line")
	if err != nil {
		return err
	}
	surface.DrawLine(int(x1), int(y1), int(x2), int(y2))
	return nil
}

// Present publishes the surface contents to the visible window.
func (ctx *HardwareContext) Present() error {
	surface, err := ctx.requireSurface("present")
	if err != nil {
		return err
	}
	if err := ctx.output.UpdateFrame(surface.Pixels()); err != nil {
		return backendError("present", "cannot publish frame", err)
	}
	return nil
}

// InitEventPump creates the input event source. Calling it again simply
// replaces the stored pump; there is no already-initialized short-circuit.
func (ctx *HardwareContext) InitEventPump() error {
	ctx.pump = &EventPump{output: ctx.output}
	return nil
}

func (ctx *HardwareContext) requirePump(op string) (*EventPump, error) {
	if ctx.pump == nil {
		return nil, preconditionError(op, "event pump not initialized")
	}
	return ctx.pump, nil
}

// PollEvent drains at most one pending event. It returns false only when
// that event is a quit request; any other event, and an empty queue,
// report true.
func (ctx *HardwareContext) PollEvent() (bool, error) {
	pump, err := ctx.requirePump("poll_event")
	if err != nil {
		return false, err
	}
	ev, ok := pump.output.PollEvent()
	if ok && ev.Kind == EventQuit {
		return false, nil
	}
	return true, nil
}

func (ctx *HardwareContext) IsKeyDown(name string) (bool, error) {
	pump, err := ctx.requirePump("is_key_down")
	if err != nil {
		return false, err
	}
	code, ok := keyNames[strings.ToLower(name)]
	if !ok {
		return false, validationError("is_key_down", "unsupported key: %q", name)
	}
	return pump.output.IsKeyPressed(code), nil
}

func (ctx *HardwareContext) IsMouseButtonDown(name string) (bool, error) {
	pump, err := ctx.requirePump("is_mouse_button_down")
	if err != nil {
		return false, err
	}
	button, ok := mouseButtonNames[strings.ToLower(name)]
	if !ok {
		return false, validationError("is_mouse_button_down", "unsupported mouse button: %q", name)
	}
	return pump.output.IsMouseButtonPressed(button), nil
}

// GetMousePosition widens the cursor coordinates to int64 so they are
// safe for the script's numeric type.
func (ctx *HardwareContext) GetMousePosition() (int64, int64, error) {
	pump, err := ctx.requirePump("get_mouse_position")
	if err != nil {
		return 0, 0, err
	}
	x, y := pump.output.MousePosition()
	return int64(x), int64(y), nil
}

// Delay blocks the calling thread for the given number of milliseconds.
func (ctx *HardwareContext) Delay(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// Close releases the backend. Safe to call with no window open.
func (ctx *HardwareContext) Close() error {
	return ctx.output.Close()
}
