// main.go - Process entry point: one context, one Lua state, one script

package main

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

const defaultScript = "scripts/snake.lua"

func main() {
	scriptPath := defaultScript
	if len(os.Args) > 1 {
		scriptPath = os.Args[1]
	}

	ctx, err := NewHardwareContext(VIDEO_BACKEND_EBITEN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize video: %v\n", err)
		os.Exit(1)
	}
	shared := NewSharedContext(ctx)

	L := lua.NewState()
	RegisterContext(L, shared)
	RegisterUtil(L)

	err = L.DoFile(scriptPath)
	L.Close()
	if closeErr := ctx.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "script error: %v\n", err)
		os.Exit(1)
	}
}
