// lua_bindings.go - Registers the hardware context operations as Lua globals

package main

import (
	"math/rand/v2"

	lua "github.com/yuin/gopher-lua"
)

// Each registered function follows the same shape: coerce every argument
// first (gopher-lua's Check* helpers unwind with a Lua type error, which
// must not happen while the shared handle is held), then take the handle
// exactly once, then flatten any context failure into a Lua runtime
// error carrying the original message text.

// RegisterContext installs the script-facing function table. Names,
// arities and argument order are the wire contract scripts are written
// against and must not change.
func RegisterContext(L *lua.LState, shared *SharedContext) {
	raise := func(L *lua.LState, err error) {
		if err != nil {
			L.RaiseError("%s", err)
		}
	}

	L.SetGlobal("create_window", L.NewFunction(func(L *lua.LState) int {
		title := L.CheckString(1)
		width := int32(L.CheckInt64(2))
		height := int32(L.CheckInt64(3))
		raise(L, shared.Do("create_window", func(ctx *HardwareContext) error {
			return ctx.CreateWindow(title, width, height)
		}))
		return 0
	}))

	L.SetGlobal("set_draw_color", L.NewFunction(func(L *lua.LState) int {
		r := uint8(L.CheckInt64(1))
		g := uint8(L.CheckInt64(2))
		b := uint8(L.CheckInt64(3))
		raise(L, shared.Do("set_draw_color", func(ctx *HardwareContext) error {
			return ctx.SetDrawColor(r, g, b)
		}))
		return 0
	}))

	L.SetGlobal("clear", L.NewFunction(func(L *lua.LState) int {
		raise(L, shared.Do("clear", func(ctx *HardwareContext) error {
			return ctx.Clear()
		}))
		return 0
	}))

	L.SetGlobal("draw_rect", L.NewFunction(func(L *lua.LState) int {
		x := int32(L.CheckInt64(1))
		y := int32(L.CheckInt64(2))
		w := int32(L.CheckInt64(3))
		h := int32(L.CheckInt64(4))
		raise(L, shared.Do("draw_rect", func(ctx *HardwareContext) error {
			return ctx.DrawRect(x, y, w, h)
		}))
		return 0
	}))

	L.SetGlobal("fill_rect", L.NewFunction(func(L *lua.LState) int {
		x := int32(L.CheckInt64(1))
		y := int32(L.CheckInt64(2))
		w := int32(L.CheckInt64(3))
		h := int32(L.CheckInt64(4))
		raise(L, shared.Do("fill_rect", func(ctx *HardwareContext) error {
			return ctx.FillRect(x, y, w, h)
		}))
		return 0
	}))

	L.SetGlobal("draw_point", L.NewFunction(func(L *lua.LState) int {
		x := int32(L.CheckInt64(1))
		y := int32(L.CheckInt64(2))
		raise(L, shared.Do("draw_point", func(ctx *HardwareContext) error {
			return ctx.DrawPoint(x, y)
		}))
		return 0
	}))

	L.SetGlobal("draw_line", L.NewFunction(func(L *lua.LState) int {
		x1 := int32(L.CheckInt64(1))
		y1 := int32(L.CheckInt64(2))
		x2 := int32(L.CheckInt64(3))
		y2 := int32(L.CheckInt64(4))
		raise(L, shared.Do("draw_line", func(ctx *HardwareContext) error {
			return ctx.DrawLine(x1, y1, x2, y2)
		}))
		return 0
	}))

	L.SetGlobal("present", L.NewFunction(func(L *lua.LState) int {
		raise(L, shared.Do("present", func(ctx *HardwareContext) error {
			return ctx.Present()
		}))
		return 0
	}))

	L.SetGlobal("init_event_pump", L.NewFunction(func(L *lua.LState) int {
		raise(L, shared.Do("init_event_pump", func(ctx *HardwareContext) error {
			return ctx.InitEventPump()
		}))
		return 0
	}))

	L.SetGlobal("poll_event", L.NewFunction(func(L *lua.LState) int {
		var running bool
		raise(L, shared.Do("poll_event", func(ctx *HardwareContext) error {
			var err error
			running, err = ctx.PollEvent()
			return err
		}))
		L.Push(lua.LBool(running))
		return 1
	}))

	L.SetGlobal("is_key_down", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		var down bool
		raise(L, shared.Do("is_key_down", func(ctx *HardwareContext) error {
			var err error
			down, err = ctx.IsKeyDown(name)
			return err
		}))
		L.Push(lua.LBool(down))
		return 1
	}))

	L.SetGlobal("is_mouse_button_down", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		var down bool
		raise(L, shared.Do("is_mouse_button_down", func(ctx *HardwareContext) error {
			var err error
			down, err = ctx.IsMouseButtonDown(name)
			return err
		}))
		L.Push(lua.LBool(down))
		return 1
	}))

	L.SetGlobal("get_mouse_position", L.NewFunction(func(L *lua.LState) int {
		var x, y int64
		raise(L, shared.Do("get_mouse_position", func(ctx *HardwareContext) error {
			var err error
			x, y, err = ctx.GetMousePosition()
			return err
		}))
		L.Push(lua.LNumber(x))
		L.Push(lua.LNumber(y))
		return 2
	}))

	L.SetGlobal("delay", L.NewFunction(func(L *lua.LState) int {
		ms := uint32(L.CheckInt64(1))
		raise(L, shared.Do("delay", func(ctx *HardwareContext) error {
			ctx.Delay(ms)
			return nil
		}))
		return 0
	}))
}

// RegisterUtil installs the stateless helpers; rand needs no shared
// context. An inverted range is a script error, not a process abort.
func RegisterUtil(L *lua.LState) {
	L.SetGlobal("rand", L.NewFunction(func(L *lua.LState) int {
		lo := L.CheckInt64(1)
		hi := L.CheckInt64(2)
		if lo > hi {
			L.RaiseError("rand failed: empty range [%d, %d]", lo, hi)
			return 0
		}
		L.Push(lua.LNumber(lo + rand.Int64N(hi-lo+1)))
		return 1
	}))
}
