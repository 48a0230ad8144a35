//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the demo in a window.
func (Run) Demo() error {
	fmt.Println("Run demo...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "draw.toml", "-watch"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the demo without a window for a fixed number of frames.
func (Run) Headless() error {
	fmt.Println("Run headless demo...")
	if _, err := executeCmd("go", withArgs("run", ".", "-headless", "-frames", "600"), withStream()); err != nil {
		return err
	}
	return nil
}
