// video_interface.go - Video backend contract for luascreen

package main

import "fmt"

// VideoError provides detailed error context for backend operations
type VideoError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("video %s failed: %s", e.Operation, e.Details)
}

func (e *VideoError) Unwrap() error {
	return e.Err
}

// DisplayConfig contains hardware-independent window configuration
type DisplayConfig struct {
	Title  string
	Width  int
	Height int
	Scale  int // Integer scaling factor for the output window
}

// EventKind discriminates the events a backend can report. The bridge
// only acts on EventQuit; everything else is drained and acknowledged.
type EventKind int

const (
	EventQuit EventKind = iota
	EventKeyDown
	EventKeyUp
	EventMouseButtonDown
	EventMouseButtonUp
)

type Event struct {
	Kind EventKind
}

// Scancode identifies the physical keys the bridge exposes to scripts.
type Scancode int

const (
	ScancodeSpace Scancode = iota
	ScancodeLeft
	ScancodeRight
	ScancodeUp
	ScancodeDown
)

type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// VideoOutput defines the minimal interface that backends must implement
type VideoOutput interface {
	// Lifecycle management
	Start() error
	Stop() error
	Close() error
	IsStarted() bool

	// Display operations - kept minimal
	SetDisplayConfig(config DisplayConfig) error
	GetDisplayConfig() DisplayConfig
	UpdateFrame(buffer []byte) error // Takes raw RGBA pixels only

	// Event and input state access. PollEvent dequeues at most one
	// pending event; the second return is false when the queue is empty.
	PollEvent() (Event, bool)
	IsKeyPressed(code Scancode) bool
	IsMouseButtonPressed(button MouseButton) bool
	MousePosition() (int, int)

	GetFrameCount() uint64
}

// Predefined video backend types
const (
	VIDEO_BACKEND_EBITEN   = iota // Pure Go Ebiten backend
	VIDEO_BACKEND_HEADLESS        // In-memory backend for tests and CI
)

// NewVideoOutput creates a new video output instance using the specified backend
func NewVideoOutput(backend int) (VideoOutput, error) {
	switch backend {
	case VIDEO_BACKEND_EBITEN:
		return NewEbitenOutput()
	case VIDEO_BACKEND_HEADLESS:
		return NewHeadlessOutput()
	}
	return nil, &VideoError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}
