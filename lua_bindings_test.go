// lua_bindings_test.go - Script-level behavior of the registered function table

package main

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func newTestState(t *testing.T) (*lua.LState, *SharedContext, *HeadlessOutput) {
	t.Helper()
	ctx, out := newTestContext(t)
	shared := NewSharedContext(ctx)
	L := lua.NewState()
	t.Cleanup(L.Close)
	RegisterContext(L, shared)
	RegisterUtil(L)
	return L, shared, out
}

func TestLua_DrawSequenceSucceeds(t *testing.T) {
	L, _, out := newTestState(t)
	script := `
		create_window("t", 640, 480)
		set_draw_color(255, 0, 0)
		clear()
		present()
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("draw sequence script failed: %v", err)
	}
	if got := out.GetFrameCount(); got != 1 {
		t.Fatalf("frame count = %d, want 1", got)
	}
	frame := out.LastFrame()
	if frame[0] != 255 || frame[1] != 0 || frame[2] != 0 {
		t.Fatalf("presented pixel = (%d,%d,%d), want red", frame[0], frame[1], frame[2])
	}
}

func TestLua_DrawBeforeWindow_RaisesCanvasError(t *testing.T) {
	L, _, _ := newTestState(t)
	script := `
		ok, err = pcall(function() set_draw_color(0, 0, 0) end)
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if L.GetGlobal("ok") != lua.LFalse {
		t.Fatal("expected pcall to report failure")
	}
	msg := lua.LVAsString(L.GetGlobal("err"))
	if !strings.Contains(msg, "canvas not initialized") {
		t.Fatalf("error %q does not name the uninitialized canvas", msg)
	}
}

func TestLua_UncaughtErrorHaltsScript(t *testing.T) {
	L, _, _ := newTestState(t)
	script := `
		clear()
		reached = true
	`
	err := L.DoString(script)
	if err == nil {
		t.Fatal("expected the propagated error to halt the script")
	}
	if !strings.Contains(err.Error(), "canvas not initialized") {
		t.Fatalf("halt error %q does not carry the original message", err)
	}
	if L.GetGlobal("reached") != lua.LNil {
		t.Fatal("script continued past an uncaught error")
	}
}

func TestLua_KeyAndButtonQueries(t *testing.T) {
	L, _, out := newTestState(t)
	out.SetKeyPressed(ScancodeUp, true)
	out.SetMouseButton(MouseButtonLeft, true)
	script := `
		init_event_pump()
		up = is_key_down("UP")
		space = is_key_down("space")
		left = is_mouse_button_down("Left")
		bad, baderr = pcall(function() return is_key_down("escape") end)
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if L.GetGlobal("up") != lua.LTrue {
		t.Fatal("is_key_down(UP) = false, want true")
	}
	if L.GetGlobal("space") != lua.LFalse {
		t.Fatal("is_key_down(space) = true, want false")
	}
	if L.GetGlobal("left") != lua.LTrue {
		t.Fatal("is_mouse_button_down(Left) = false, want true")
	}
	if L.GetGlobal("bad") != lua.LFalse {
		t.Fatal("expected unsupported key name to raise")
	}
	if msg := lua.LVAsString(L.GetGlobal("baderr")); !strings.Contains(msg, "escape") {
		t.Fatalf("error %q does not name the rejected key", msg)
	}
}

func TestLua_PollEventBooleans(t *testing.T) {
	L, _, out := newTestState(t)
	out.PushEvent(Event{Kind: EventKeyDown})
	out.PushEvent(Event{Kind: EventQuit})
	script := `
		init_event_pump()
		first = poll_event()
		second = poll_event()
		empty = poll_event()
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if L.GetGlobal("first") != lua.LTrue {
		t.Fatal("poll_event on key-down = false, want true")
	}
	if L.GetGlobal("second") != lua.LFalse {
		t.Fatal("poll_event on quit = true, want false")
	}
	if L.GetGlobal("empty") != lua.LTrue {
		t.Fatal("poll_event on empty queue = false, want true")
	}
}

func TestLua_PollEventBeforePump_Raises(t *testing.T) {
	L, _, _ := newTestState(t)
	script := `
		ok, err = pcall(function() return poll_event() end)
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if L.GetGlobal("ok") != lua.LFalse {
		t.Fatal("expected poll_event before init_event_pump to raise")
	}
	if msg := lua.LVAsString(L.GetGlobal("err")); !strings.Contains(msg, "event pump not initialized") {
		t.Fatalf("error %q does not name the missing event pump", msg)
	}
}

func TestLua_GetMousePositionReturnsPair(t *testing.T) {
	L, _, out := newTestState(t)
	out.SetMousePos(3, 7)
	script := `
		init_event_pump()
		x, y = get_mouse_position()
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if got := lua.LVAsNumber(L.GetGlobal("x")); got != 3 {
		t.Fatalf("x = %v, want 3", got)
	}
	if got := lua.LVAsNumber(L.GetGlobal("y")); got != 7 {
		t.Fatalf("y = %v, want 7", got)
	}
}

func TestLua_RandBounds(t *testing.T) {
	L, _, _ := newTestState(t)
	script := `
		if rand(1, 1) ~= 1 then error("rand(1,1) must return 1") end
		for i = 1, 200 do
			local v = rand(5, 10)
			if v < 5 or v > 10 then error("rand(5,10) out of range: " .. v) end
		end
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("rand bounds script failed: %v", err)
	}
}

func TestLua_RandInvertedRange_Raises(t *testing.T) {
	L, _, _ := newTestState(t)
	script := `
		ok, err = pcall(function() return rand(10, 5) end)
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if L.GetGlobal("ok") != lua.LFalse {
		t.Fatal("expected rand(10, 5) to raise")
	}
	if msg := lua.LVAsString(L.GetGlobal("err")); !strings.Contains(msg, "empty range") {
		t.Fatalf("error %q does not report the empty range", msg)
	}
}

func TestLua_PoisonedContextFailsEveryCall(t *testing.T) {
	L, shared, _ := newTestState(t)

	if err := shared.Do("present", func(*HardwareContext) error {
		panic("boom")
	}); !IsErrorKind(err, ErrAccess) {
		t.Fatalf("poisoning call: err = %v, want access error", err)
	}

	script := `
		ok1, err1 = pcall(function() create_window("t", 64, 64) end)
		ok2, err2 = pcall(function() clear() end)
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	for _, name := range []string{"err1", "err2"} {
		msg := lua.LVAsString(L.GetGlobal(name))
		if !strings.Contains(msg, "poisoned") {
			t.Fatalf("%s = %q, want poisoned-context error", name, msg)
		}
	}
}

func TestLua_WindowReplacementFromScript(t *testing.T) {
	L, _, out := newTestState(t)
	script := `
		create_window("first", 640, 480)
		create_window("second", 320, 200)
		set_draw_color(0, 255, 0)
		clear()
		present()
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if got := out.GetDisplayConfig().Title; got != "second" {
		t.Fatalf("window title = %q, want %q", got, "second")
	}
	if got := len(out.LastFrame()); got != 320*200*4 {
		t.Fatalf("presented frame size = %d, want %d", got, 320*200*4)
	}
}
