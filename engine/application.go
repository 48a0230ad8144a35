package engine

import (
	"github.com/spaghettifunk/anima-draw/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel
	// Headless skips window creation. The engine still runs frames.
	Headless bool
	// ConfigPath points at a TOML or YAML configuration file. Missing files fall back
	// to the defaults.
	ConfigPath string
	// WatchConfig reloads ConfigPath whenever it changes on disk.
	WatchConfig bool
	// MaxFrames stops Run after this many frames. Zero runs until stopped.
	MaxFrames uint64
	// TargetFrameRate limits the frame rate when positive.
	TargetFrameRate float64
}
