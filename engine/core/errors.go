package core

import (
	"errors"
)

var (
	ErrNotInitialized     = errors.New("not initialized")
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrFrameInProgress    = errors.New("frame already in progress")
	ErrNoFrameInProgress  = errors.New("no frame in progress")
	ErrHostRequired       = errors.New("render host is required")
	ErrNilGeometry        = errors.New("draw command has no geometry")
	ErrNilMaterial        = errors.New("draw command has no material")
	ErrInstanceLimit      = errors.New("instance count exceeds host limit")
	ErrInvalidCapacity    = errors.New("batch capacity must be positive")
	ErrUnknown            = errors.New("unknown")
)
