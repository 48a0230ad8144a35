package systems

import (
	"fmt"

	"golang.org/x/image/math/f32"

	"github.com/spaghettifunk/anima-draw/engine/containers"
	"github.com/spaghettifunk/anima-draw/engine/core"
	"github.com/spaghettifunk/anima-draw/engine/math"
	"github.com/spaghettifunk/anima-draw/engine/renderer"
	"github.com/spaghettifunk/anima-draw/engine/renderer/metadata"
)

/**
 * @brief One draw submitted to the host. Commands with Instances are drawn
 * instanced and ignore Transform.
 */
type DrawCommand struct {
	Geometry  *metadata.Geometry
	Transform math.Mat4
	Material  *metadata.Material
	Params    *metadata.ParameterBlock
	Instances []f32.Mat4
}

func (c DrawCommand) Instanced() bool {
	return c.Instances != nil
}

// DrawQueue is a FIFO of draw commands emptied once per frame by the render pass.
type DrawQueue struct {
	commands *containers.RingQueue[DrawCommand]
}

func NewDrawQueue(initialSize int) *DrawQueue {
	return &DrawQueue{
		commands: containers.NewGrowableRingQueue[DrawCommand](initialSize),
	}
}

func (q *DrawQueue) Enqueue(cmd DrawCommand) {
	// a growable queue never reports full
	_ = q.commands.Enqueue(cmd)
}

func (q *DrawQueue) Len() int {
	return q.commands.Len()
}

// Reset drops every pending command.
func (q *DrawQueue) Reset() {
	q.commands.Reset()
}

/**
 * @brief Drain submits every queued command in order and leaves the queue
 * empty. A command that fails is logged and skipped. Returns the number of
 * commands submitted successfully.
 */
func (q *DrawQueue) Drain(cmd renderer.CommandList) int {
	submitted := 0
	for !q.commands.IsEmpty() {
		c, err := q.commands.Dequeue()
		if err != nil {
			break
		}
		if err := submit(cmd, c); err != nil {
			core.LogWarn("draw command skipped: %s", err)
			continue
		}
		submitted++
	}
	return submitted
}

func submit(cmd renderer.CommandList, c DrawCommand) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("draw call panicked: %v", r)
		}
	}()
	if c.Geometry == nil {
		return core.ErrNilGeometry
	}
	if c.Material == nil {
		return core.ErrNilMaterial
	}
	if c.Instanced() {
		return cmd.DrawMeshInstanced(c.Geometry, c.Material, c.Instances, c.Params)
	}
	return cmd.DrawMesh(c.Geometry, c.Transform, c.Material, c.Params)
}
