package systems

import (
	"github.com/spaghettifunk/anima-draw/engine/config"
	"github.com/spaghettifunk/anima-draw/engine/core"
	"github.com/spaghettifunk/anima-draw/engine/renderer"
)

type SystemManager struct {
	drawSystem  *DrawSystem
	initialized bool
}

func NewSystemManager(cfg *config.Config, host renderer.Host, clock *core.Clock) (*SystemManager, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	ds, err := NewDrawSystem(&cfg.Draw, host, clock)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		drawSystem: ds,
	}, nil
}

func (sm *SystemManager) Initialize() error {
	if sm.initialized {
		return core.ErrAlreadyInitialized
	}
	if err := sm.drawSystem.Initialize(); err != nil {
		return err
	}
	sm.initialized = true
	return nil
}

// DrawSystem returns the draw system once Initialize has succeeded.
func (sm *SystemManager) DrawSystem() (*DrawSystem, error) {
	if !sm.initialized {
		return nil, core.ErrNotInitialized
	}
	return sm.drawSystem, nil
}

func (sm *SystemManager) Shutdown() error {
	if !sm.initialized {
		return nil
	}
	sm.initialized = false
	if err := sm.drawSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
