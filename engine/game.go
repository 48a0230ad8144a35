package engine

import (
	"github.com/spaghettifunk/anima-draw/engine/core"
	"github.com/spaghettifunk/anima-draw/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	Events            *core.EventBus
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error

// Render submits the frame's shapes. It runs between BeginFrame and EndFrame.
type Render func(draw *systems.DrawSystem, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
