package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-draw/engine/math"
	"github.com/spaghettifunk/anima-draw/engine/renderer"
	"github.com/spaghettifunk/anima-draw/engine/shapes"
)

func pending(rig *testRig) []shapes.Descriptor {
	return rig.draw.Registry().Collect(nil)
}

func TestArrowProportions(t *testing.T) {
	head, shaft, headRadius := ArrowProportions(1)
	assert.InDelta(t, 0.2, head, 1e-6)
	assert.InDelta(t, 0.02, shaft, 1e-6)
	assert.InDelta(t, 0.04, headRadius, 1e-6)

	head, shaft, headRadius = ArrowProportions(10)
	assert.InDelta(t, 0.3, head, 1e-6)
	assert.InDelta(t, 0.2, shaft, 1e-6)
	assert.InDelta(t, 0.4, headRadius, 1e-6)
}

func TestConvenienceStyleOptions(t *testing.T) {
	rig := newTestRig(t, renderer.HeadlessHostConfig{}, nil)
	cfg := rig.draw.Config()

	rig.draw.Box(math.NewVec3Zero(), math.NewVec3One(), shapes.Red)
	rig.draw.Box(math.NewVec3Zero(), math.NewVec3One(), shapes.Red, Wireframe())
	rig.draw.Box(math.NewVec3Zero(), math.NewVec3One(), shapes.Red, WithOutline(shapes.White, 0.1), WithSmoothness(0.9), Unlit())

	got := pending(rig)
	require.Len(t, got, 3)
	assert.Equal(t, shapes.Red, got[0].Style.FillColor)
	assert.Equal(t, cfg.OutlineThickness, got[0].Style.OutlineThickness)
	assert.Equal(t, cfg.Outline(), got[0].Style.OutlineColor)
	assert.True(t, got[0].Style.EnableLighting)

	assert.Equal(t, cfg.WireframeOutlineThickness, got[1].Style.OutlineThickness)

	assert.Equal(t, shapes.White, got[2].Style.OutlineColor)
	assert.Equal(t, float32(0.1), got[2].Style.OutlineThickness)
	assert.Equal(t, float32(0.9), got[2].Style.Smoothness)
	assert.False(t, got[2].Style.EnableLighting)
}

func TestConvenienceTransforms(t *testing.T) {
	rig := newTestRig(t, renderer.HeadlessHostConfig{}, nil)
	rotation := math.NewQuatFromAxisAngle(math.NewVec3Up(), math.K_PI/2, true)
	position := math.NewVec3(1, 2, 3)

	rig.draw.Box(position, math.NewVec3(1, 2, 3), shapes.Red, WithRotation(rotation), WithCornerRadius(0.1))
	rig.draw.Sphere(position, 0.5, shapes.Blue)

	got := pending(rig)
	require.Len(t, got, 2)
	assert.True(t, got[0].Transform.Translation().Compare(position, 1e-6))
	assert.True(t, got[0].Transform.Forward().Compare(rotation.Rotate(math.NewVec3Forward()), 1e-5))
	assert.Equal(t, float32(0.1), got[0].Shape.CornerRounding())

	assert.Equal(t, shapes.TypeEllipsoid, got[1].Shape.Type())
	assert.Equal(t, math.NewVec3Splat(0.5), got[1].Shape.(shapes.Ellipsoid).Radii)
}

func TestConveniencePersistentOption(t *testing.T) {
	rig := newTestRig(t, renderer.HeadlessHostConfig{}, nil)
	rig.draw.Sphere(math.NewVec3Zero(), 1, shapes.Green, Persistent("target", 5))
	rig.draw.Sphere(math.NewVec3One(), 1, shapes.Green, Persistent("target", 5))
	rig.draw.Sphere(math.NewVec3One(), 1, shapes.Green, Persistent("", 5))

	reg := rig.draw.Registry()
	assert.Zero(t, reg.ImmediateCount())
	assert.Equal(t, 2, reg.PersistentCount())

	d, ok := reg.PersistentShape("target")
	require.True(t, ok)
	assert.True(t, d.Transform.Translation().Compare(math.NewVec3One(), 1e-6))
}

func TestCoordinateFrame(t *testing.T) {
	rig := newTestRig(t, renderer.HeadlessHostConfig{}, nil)
	rig.draw.CoordinateFrame(math.NewVec3(1, 0, 0), math.NewQuatIdentity(), DefaultFrameAxes())

	got := pending(rig)
	require.Len(t, got, 3)
	colors := []shapes.Color{shapes.Red, shapes.Green, shapes.Blue}
	directions := []math.Vec3{math.NewVec3Right(), math.NewVec3Up(), math.NewVec3Forward()}
	for i, d := range got {
		arrow, ok := d.Shape.(shapes.Arrow)
		require.True(t, ok)
		assert.Equal(t, colors[i], d.Style.FillColor)
		assert.True(t, arrow.End.Sub(arrow.Start).Compare(directions[i], 1e-6))
		assert.Equal(t, float32(0.05), arrow.HeadLength)
	}

	rig.frame(t)
	assert.Equal(t, 6, rig.draw.Stats().ExpandedShapes)
}

func TestCoordinateFrameFromMatrix(t *testing.T) {
	rig := newTestRig(t, renderer.HeadlessHostConfig{}, nil)
	m := math.NewMat4TRS(math.NewVec3(0, 5, 0), math.NewQuatIdentity(), math.NewVec3Splat(3))
	rig.draw.CoordinateFrameFromMatrix(m, DefaultFrameAxes())

	got := pending(rig)
	require.Len(t, got, 3)
	arrow := got[0].Shape.(shapes.Arrow)
	assert.True(t, arrow.Start.Compare(math.NewVec3(0, 5, 0), 1e-6))
	assert.InDelta(t, 1, arrow.Start.Distance(arrow.End), 1e-5)
}

func TestPath(t *testing.T) {
	rig := newTestRig(t, renderer.HeadlessHostConfig{}, nil)
	square := []math.Vec3{
		math.NewVec3(0, 0, 0), math.NewVec3(1, 0, 0), math.NewVec3(1, 1, 0), math.NewVec3(0, 1, 0),
	}

	rig.draw.Path(square, 0.05, shapes.White, false)
	assert.Equal(t, 3, rig.draw.Registry().ImmediateCount())

	rig.draw.Registry().ClearImmediate()
	rig.draw.Path(square, 0.05, shapes.White, true)
	got := pending(rig)
	require.Len(t, got, 4)
	closing := got[3].Shape.(shapes.Capsule)
	assert.Equal(t, square[3], closing.Start)
	assert.Equal(t, square[0], closing.End)
	assert.Equal(t, float32(0.05), closing.Radius)

	rig.draw.Registry().ClearImmediate()
	rig.draw.Path(square[:1], 0.05, shapes.White, true)
	assert.Zero(t, rig.draw.Registry().ImmediateCount())
}

func TestFlatShapes(t *testing.T) {
	rig := newTestRig(t, renderer.HeadlessHostConfig{}, nil)
	a, b, c, d := math.NewVec3(0, 0, 0), math.NewVec3(1, 0, 0), math.NewVec3(1, 1, 0), math.NewVec3(0, 1, 0)

	rig.draw.Quad(a, b, c, d, shapes.Yellow, WithExtrusion(0.2))
	rig.draw.Point(a, 0.1, shapes.White)
	rig.draw.Line2D(a, c, 0.02, shapes.Gray)
	rig.draw.Rectangle(a, math.NewVec2(2, 1), shapes.Gray, WithCornerRadius(0.1))

	got := pending(rig)
	require.Len(t, got, 5)
	assert.Equal(t, shapes.Triangle{A: a, B: b, C: c, Extrusion: 0.2}, got[0].Shape)
	assert.Equal(t, shapes.Triangle{A: a, B: c, C: d, Extrusion: 0.2}, got[1].Shape)
	assert.Equal(t, shapes.TypeDisk, got[2].Shape.Type())
	assert.False(t, got[2].Style.EnableLighting)
	assert.Equal(t, shapes.TypeLine2D, got[3].Shape.Type())
	assert.False(t, got[3].Style.EnableLighting)
	assert.Equal(t, float32(0.1), got[4].Shape.CornerRounding())
}

func TestPersistentCoordinateFrameKeepsEveryAxis(t *testing.T) {
	rig := newTestRig(t, renderer.HeadlessHostConfig{}, nil)
	rig.draw.CoordinateFrame(math.NewVec3Zero(), math.NewQuatIdentity(), DefaultFrameAxes(), Persistent("origin", 10))
	rig.draw.CoordinateFrame(math.NewVec3One(), math.NewQuatIdentity(), DefaultFrameAxes(), Persistent("origin", 10))

	reg := rig.draw.Registry()
	assert.Equal(t, 3, reg.PersistentCount())
	for _, id := range []string{"origin/x", "origin/y", "origin/z"} {
		d, ok := reg.PersistentShape(id)
		require.True(t, ok, id)
		assert.Equal(t, math.NewVec3One(), d.Shape.(shapes.Arrow).Start)
	}
}

func TestPersistentPathAndQuadKeepEveryPart(t *testing.T) {
	rig := newTestRig(t, renderer.HeadlessHostConfig{}, nil)
	triangle := []math.Vec3{math.NewVec3(0, 0, 0), math.NewVec3(1, 0, 0), math.NewVec3(0, 1, 0)}
	rig.draw.Path(triangle, 0.05, shapes.White, true, Persistent("outline", 10))
	rig.draw.Quad(triangle[0], triangle[1], math.NewVec3(1, 1, 0), triangle[2], shapes.Gray, Persistent("floor", 10))

	reg := rig.draw.Registry()
	assert.Zero(t, reg.ImmediateCount())
	assert.Equal(t, 5, reg.PersistentCount())
	for _, id := range []string{"outline/0", "outline/1", "outline/2", "floor/0", "floor/1"} {
		_, ok := reg.PersistentShape(id)
		assert.True(t, ok, id)
	}
	closing, _ := reg.PersistentShape("outline/2")
	assert.Equal(t, triangle[2], closing.Shape.(shapes.Capsule).Start)
}

func TestOutlineShapes(t *testing.T) {
	rig := newTestRig(t, renderer.HeadlessHostConfig{}, nil)
	rig.draw.CircleOutline(math.NewVec3(1, 1, 0), 0.5, 0.03, shapes.Red)
	rig.draw.BoxOutline(math.NewVec3Zero(), math.NewVec2(2, 1), 0.04, shapes.Green)

	got := pending(rig)
	require.Len(t, got, 2)
	assert.Equal(t, shapes.Disk{Radius: 0.5}, got[0].Shape)
	assert.Equal(t, shapes.Rectangle{Size: math.NewVec2(2, 1)}, got[1].Shape)

	colors := []shapes.Color{shapes.Red, shapes.Green}
	thickness := []float32{0.03, 0.04}
	for i, d := range got {
		assert.Equal(t, shapes.Clear, d.Style.FillColor)
		assert.Equal(t, colors[i], d.Style.OutlineColor)
		assert.Equal(t, thickness[i], d.Style.OutlineThickness)
		assert.False(t, d.Style.EnableLighting)
	}
}

func TestRays(t *testing.T) {
	rig := newTestRig(t, renderer.HeadlessHostConfig{}, nil)
	start := math.NewVec3(1, 2, 0)
	rig.draw.Ray(start, math.NewVec3(0, 3, 0), 0.02, shapes.White)
	rig.draw.RayDirection(start, math.NewVec3(1, 0, 0), 2, 0.02, shapes.White)

	got := pending(rig)
	require.Len(t, got, 2)
	assert.Equal(t, shapes.Line2D{Start: start, End: math.NewVec3(1, 5, 0), Thickness: 0.02}, got[0].Shape)
	assert.Equal(t, shapes.Line2D{Start: start, End: math.NewVec3(3, 2, 0), Thickness: 0.02}, got[1].Shape)
}

func TestArrow2D(t *testing.T) {
	rig := newTestRig(t, renderer.HeadlessHostConfig{}, nil)
	end := math.NewVec3(1, 0, 0)
	rig.draw.Arrow2D(math.NewVec3Zero(), end, 0.02, DefaultArrow2DHeadLength, DefaultArrow2DHeadAngleDegrees, shapes.Yellow)

	got := pending(rig)
	require.Len(t, got, 3)
	shaft := got[0].Shape.(shapes.Line2D)
	assert.Equal(t, math.NewVec3Zero(), shaft.Start)
	assert.Equal(t, end, shaft.End)

	var ySum float32
	for _, d := range got[1:] {
		head := d.Shape.(shapes.Line2D)
		assert.Equal(t, end, head.Start)
		assert.InDelta(t, 1-0.24*0.8660254, head.End.X, 1e-5)
		assert.InDelta(t, 0.12, max(head.End.Y, -head.End.Y), 1e-5)
		assert.InDelta(t, 0.24, head.Start.Distance(head.End), 1e-5)
		ySum += head.End.Y
	}
	assert.InDelta(t, 0, ySum, 1e-5)

	rig.draw.Registry().ClearImmediate()
	rig.draw.Arrow2D(end, end, 0.02, 0.24, 30, shapes.Yellow)
	assert.Equal(t, 1, rig.draw.Registry().ImmediateCount())
}

func TestPersistentArrowRay2DKeepsEveryLine(t *testing.T) {
	rig := newTestRig(t, renderer.HeadlessHostConfig{}, nil)
	rig.draw.ArrowRay2D(math.NewVec3Zero(), math.NewVec3(0, 2, 0), 3, 0.02, 0.24, 30, shapes.Cyan, Persistent("heading", 10))

	reg := rig.draw.Registry()
	assert.Equal(t, 3, reg.PersistentCount())
	shaft, ok := reg.PersistentShape("heading/shaft")
	require.True(t, ok)
	assert.True(t, shaft.Shape.(shapes.Line2D).End.Compare(math.NewVec3(0, 3, 0), 1e-6))
	for _, id := range []string{"heading/left", "heading/right"} {
		_, ok := reg.PersistentShape(id)
		assert.True(t, ok, id)
	}
}
