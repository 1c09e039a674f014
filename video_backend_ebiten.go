// video_backend_ebiten.go - Ebiten video backend for luascreen

package main

import (
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Bridged scancodes and buttons in a fixed order so event derivation is
// deterministic frame to frame.
var ebitenKeys = [...]struct {
	code Scancode
	key  ebiten.Key
}{
	{ScancodeSpace, ebiten.KeySpace},
	{ScancodeLeft, ebiten.KeyArrowLeft},
	{ScancodeRight, ebiten.KeyArrowRight},
	{ScancodeUp, ebiten.KeyArrowUp},
	{ScancodeDown, ebiten.KeyArrowDown},
}

var ebitenMouseButtons = [...]struct {
	button MouseButton
	id     ebiten.MouseButton
}{
	{MouseButtonLeft, ebiten.MouseButtonLeft},
	{MouseButtonRight, ebiten.MouseButtonRight},
	{MouseButtonMiddle, ebiten.MouseButtonMiddle},
}

const eventQueueSize = 64

type EbitenOutput struct {
	running     bool
	window      *ebiten.Image
	title       string
	width       int
	height      int
	scale       int
	fullscreen  bool
	windowedW   int
	windowedH   int
	frameBuffer []byte
	bufferMutex sync.RWMutex
	frameCount  uint64
	vsyncChan   chan struct{}
	done        chan struct{}
	events      chan Event

	// Input state snapshotted once per Update so queries from the
	// script thread never touch Ebiten's internals directly.
	keysDown    map[Scancode]bool
	buttonsDown map[MouseButton]bool
	mouseX      int
	mouseY      int

	showStatusBar bool
}

func NewEbitenOutput() (VideoOutput, error) {
	return &EbitenOutput{
		title:       "luascreen",
		width:       640,
		height:      480,
		scale:       1,
		windowedW:   640,
		windowedH:   480,
		frameBuffer: make([]byte, 640*480*4),
		vsyncChan:   make(chan struct{}, 1),
		done:        make(chan struct{}),
		events:      make(chan Event, eventQueueSize),
		keysDown:    make(map[Scancode]bool),
		buttonsDown: make(map[MouseButton]bool),
	}, nil
}

func (eo *EbitenOutput) Start() error {
	if eo.running {
		return nil
	}
	eo.bufferMutex.Lock()
	eo.done = make(chan struct{})
	eo.bufferMutex.Unlock()
	eo.running = true
	ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
	ebiten.SetWindowTitle(eo.title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetWindowClosingHandled(true)
	if eo.fullscreen {
		ebiten.SetFullscreen(true)
	}

	go func() {
		defer func() {
			eo.running = false
			eo.pushEvent(Event{Kind: EventQuit})
			eo.bufferMutex.RLock()
			done := eo.done
			eo.bufferMutex.RUnlock()
			select {
			case <-done:
			default:
				close(done)
			}
		}()
		if err := ebiten.RunGame(eo); err != nil {
			fmt.Printf("Ebiten error: %v\n", err)
		}
	}()

	// Wait for first Draw call to ensure Ebiten is ready
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) Stop() error {
	eo.running = false
	return nil
}

func (eo *EbitenOutput) Close() error {
	return eo.Stop()
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running
}

func (eo *EbitenOutput) Done() <-chan struct{} {
	eo.bufferMutex.RLock()
	done := eo.done
	eo.bufferMutex.RUnlock()
	return done
}

func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()

	width := config.Width
	height := config.Height
	if width <= 0 {
		width = eo.width
	}
	if height <= 0 {
		height = eo.height
	}
	eo.width = width
	eo.height = height
	eo.scale = config.Scale
	if eo.scale < 1 {
		eo.scale = 1
	}
	if config.Title != "" {
		eo.title = config.Title
	}
	newSize := eo.width * eo.height * 4
	if len(eo.frameBuffer) != newSize {
		eo.frameBuffer = make([]byte, newSize)
	}

	eo.windowedW = eo.width * eo.scale
	eo.windowedH = eo.height * eo.scale
	if eo.running {
		ebiten.SetWindowTitle(eo.title)
		if !eo.fullscreen {
			ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
		}
	}
	if eo.window != nil {
		eo.window.Dispose()
		eo.window = nil
	}
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return DisplayConfig{
		Title:  eo.title,
		Width:  eo.width,
		Height: eo.height,
		Scale:  eo.scale,
	}
}

func (eo *EbitenOutput) UpdateFrame(data []byte) error {
	eo.bufferMutex.Lock()
	copy(eo.frameBuffer, data)
	eo.bufferMutex.Unlock()
	return nil
}

// pushEvent enqueues without blocking the game loop; the oldest event is
// dropped if the script has fallen an entire queue behind.
func (eo *EbitenOutput) pushEvent(ev Event) {
	select {
	case eo.events <- ev:
		return
	default:
	}
	select {
	case <-eo.events:
	default:
	}
	select {
	case eo.events <- ev:
	default:
	}
}

func (eo *EbitenOutput) PollEvent() (Event, bool) {
	select {
	case ev := <-eo.events:
		return ev, true
	default:
		return Event{}, false
	}
}

func (eo *EbitenOutput) IsKeyPressed(code Scancode) bool {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return eo.keysDown[code]
}

func (eo *EbitenOutput) IsMouseButtonPressed(button MouseButton) bool {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return eo.buttonsDown[button]
}

func (eo *EbitenOutput) MousePosition() (int, int) {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return eo.mouseX, eo.mouseY
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&eo.frameCount)
}

func (eo *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() || !eo.running {
		eo.pushEvent(Event{Kind: EventQuit})
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eo.bufferMutex.Lock()
		eo.fullscreen = !eo.fullscreen
		ebiten.SetFullscreen(eo.fullscreen)
		if !eo.fullscreen {
			ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
		}
		eo.bufferMutex.Unlock()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		eo.bufferMutex.Lock()
		eo.showStatusBar = !eo.showStatusBar
		eo.bufferMutex.Unlock()
	}

	for _, k := range ebitenKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			eo.pushEvent(Event{Kind: EventKeyDown})
		}
		if inpututil.IsKeyJustReleased(k.key) {
			eo.pushEvent(Event{Kind: EventKeyUp})
		}
	}
	for _, b := range ebitenMouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.id) {
			eo.pushEvent(Event{Kind: EventMouseButtonDown})
		}
		if inpututil.IsMouseButtonJustReleased(b.id) {
			eo.pushEvent(Event{Kind: EventMouseButtonUp})
		}
	}

	mx, my := ebiten.CursorPosition()
	eo.bufferMutex.Lock()
	for _, k := range ebitenKeys {
		eo.keysDown[k.code] = ebiten.IsKeyPressed(k.key)
	}
	for _, b := range ebitenMouseButtons {
		eo.buttonsDown[b.button] = ebiten.IsMouseButtonPressed(b.id)
	}
	eo.mouseX = mx
	eo.mouseY = my
	eo.bufferMutex.Unlock()
	return nil
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	if eo.window == nil {
		eo.window = ebiten.NewImage(eo.width, eo.height)
	}

	eo.bufferMutex.RLock()
	eo.window.WritePixels(eo.frameBuffer)
	showStatusBar := eo.showStatusBar
	eo.bufferMutex.RUnlock()
	screen.DrawImage(eo.window, nil)
	if showStatusBar {
		eo.drawStatusBar(screen)
	}

	atomic.AddUint64(&eo.frameCount, 1)
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	return eo.width, eo.height
}

func (eo *EbitenOutput) drawStatusBar(screen *ebiten.Image) {
	barHeight := 16
	if barHeight >= eo.height {
		return
	}
	y := eo.height - barHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(eo.width), float64(barHeight), color.RGBA{0, 0, 0, 180})

	face := basicfont.Face7x13
	status := fmt.Sprintf("%dx%d  FPS %0.1f  frame %d", eo.width, eo.height, ebiten.CurrentFPS(), eo.GetFrameCount())
	text.Draw(screen, status, face, 6, y+12, color.RGBA{190, 190, 190, 255})

	legend := "F11 Fullscreen  F12 Status Bar"
	legendW := text.BoundString(face, legend).Dx()
	legendX := eo.width - legendW - 6
	if legendX < 6 {
		legendX = 6
	}
	text.Draw(screen, legend, face, legendX, y+12, color.RGBA{160, 160, 160, 255})
}
