package systems

import (
	"slices"
	"strconv"

	"github.com/chewxy/math32"

	"github.com/spaghettifunk/anima-draw/engine/math"
	"github.com/spaghettifunk/anima-draw/engine/shapes"
)

type shapeOptions struct {
	rotation     math.Quaternion
	style        shapes.Style
	wireframe    bool
	cornerRadius float32
	extrusion    float32
	persistent   bool
	id           string
	duration     float64
}

// ShapeOption customises a shape drawn through the convenience API.
type ShapeOption func(*shapeOptions)

func WithRotation(rotation math.Quaternion) ShapeOption {
	return func(o *shapeOptions) {
		o.rotation = rotation
	}
}

// Wireframe draws the shape with the thinner wireframe outline.
func Wireframe() ShapeOption {
	return func(o *shapeOptions) {
		o.wireframe = true
	}
}

func WithCornerRadius(radius float32) ShapeOption {
	return func(o *shapeOptions) {
		o.cornerRadius = radius
	}
}

// WithExtrusion gives flat shapes a depth along their normal.
func WithExtrusion(depth float32) ShapeOption {
	return func(o *shapeOptions) {
		o.extrusion = depth
	}
}

func WithOutline(color shapes.Color, thickness float32) ShapeOption {
	return func(o *shapeOptions) {
		o.style.OutlineColor = color
		o.style.OutlineThickness = thickness
	}
}

func Unlit() ShapeOption {
	return func(o *shapeOptions) {
		o.style.EnableLighting = false
	}
}

func WithSmoothness(smoothness float32) ShapeOption {
	return func(o *shapeOptions) {
		o.style.Smoothness = smoothness
	}
}

// Persistent keeps the shape for duration seconds under id. An empty id
// generates a new one, so the shape cannot be replaced later.
func Persistent(id string, duration float64) ShapeOption {
	return func(o *shapeOptions) {
		o.persistent = true
		o.id = id
		o.duration = duration
	}
}

// DefaultStyle is the style convenience shapes start from.
func (ds *DrawSystem) DefaultStyle(fill shapes.Color) shapes.Style {
	return shapes.Style{
		FillColor:        fill,
		OutlineColor:     ds.config.Outline(),
		OutlineThickness: ds.config.OutlineThickness,
		EnableLighting:   ds.config.EnableLighting,
		Smoothness:       ds.config.Smoothness,
	}
}

func (ds *DrawSystem) options(fill shapes.Color, opts []ShapeOption) shapeOptions {
	o := shapeOptions{
		rotation: math.NewQuatIdentity(),
		style:    ds.DefaultStyle(fill),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.wireframe {
		o.style.OutlineThickness = ds.config.WireframeOutlineThickness
	}
	return o
}

// partOptions keys one part of a multi-shape drawing under id+suffix when
// the drawing is persistent with an explicit id.
func (ds *DrawSystem) partOptions(opts []ShapeOption, suffix string) []ShapeOption {
	o := ds.options(shapes.White, opts)
	if !o.persistent || o.id == "" {
		return opts
	}
	return append(slices.Clip(opts), Persistent(o.id+suffix, o.duration))
}

func (ds *DrawSystem) submit(shape shapes.Shape, transform math.Mat4, o shapeOptions) {
	d := shapes.Descriptor{Shape: shape, Style: o.style, Transform: transform}
	switch {
	case !o.persistent:
		ds.AddImmediateShape(d)
	case o.id == "":
		ds.AddPersistentShape(o.duration, d)
	default:
		ds.SetPersistentShape(o.id, o.duration, d)
	}
}

// Box draws a box of size centred on position.
func (ds *DrawSystem) Box(position, size math.Vec3, color shapes.Color, opts ...ShapeOption) {
	o := ds.options(color, opts)
	transform := math.NewMat4TRS(position, o.rotation, math.NewVec3One())
	ds.submit(shapes.Box{Size: size, CornerRadius: o.cornerRadius}, transform, o)
}

// Sphere draws a sphere of radius centred on position.
func (ds *DrawSystem) Sphere(position math.Vec3, radius float32, color shapes.Color, opts ...ShapeOption) {
	o := ds.options(color, opts)
	transform := math.NewMat4TRS(position, o.rotation, math.NewVec3One())
	ds.submit(shapes.Ellipsoid{Radii: math.NewVec3Splat(radius)}, transform, o)
}

// Ellipsoid draws an ellipsoid with per-axis radii centred on position.
func (ds *DrawSystem) Ellipsoid(position, radii math.Vec3, color shapes.Color, opts ...ShapeOption) {
	o := ds.options(color, opts)
	transform := math.NewMat4TRS(position, o.rotation, math.NewVec3One())
	ds.submit(shapes.Ellipsoid{Radii: radii}, transform, o)
}

// Cylinder draws a cylinder of radius from start to end.
func (ds *DrawSystem) Cylinder(start, end math.Vec3, radius float32, color shapes.Color, opts ...ShapeOption) {
	o := ds.options(color, opts)
	ds.submit(shapes.Cylinder{Start: start, End: end, Radius: radius, CornerRadius: o.cornerRadius}, math.NewMat4Identity(), o)
}

// Cone draws a cone with a base of radius at base narrowing to tip.
func (ds *DrawSystem) Cone(base, tip math.Vec3, radius float32, color shapes.Color, opts ...ShapeOption) {
	o := ds.options(color, opts)
	ds.submit(shapes.Cone{Base: base, Tip: tip, Radius: radius, CornerRadius: o.cornerRadius}, math.NewMat4Identity(), o)
}

// Line draws a round line of thickness from start to end.
func (ds *DrawSystem) Line(start, end math.Vec3, thickness float32, color shapes.Color, opts ...ShapeOption) {
	o := ds.options(color, opts)
	ds.submit(shapes.Capsule{Start: start, End: end, Radius: thickness}, math.NewMat4Identity(), o)
}

// Path draws lines through consecutive points, joining the last point back
// to the first when closed. A persistent path stores segment i under id/i.
func (ds *DrawSystem) Path(points []math.Vec3, thickness float32, color shapes.Color, closed bool, opts ...ShapeOption) {
	if len(points) < 2 {
		return
	}
	segment := func(i int, a, b math.Vec3) {
		ds.Line(a, b, thickness, color, ds.partOptions(opts, "/"+strconv.Itoa(i))...)
	}
	for i := 0; i+1 < len(points); i++ {
		segment(i, points[i], points[i+1])
	}
	if closed && len(points) > 2 {
		segment(len(points)-1, points[len(points)-1], points[0])
	}
}

// Arrow draws an arrow from start to end with explicit proportions.
func (ds *DrawSystem) Arrow(start, end math.Vec3, shaftRadius, headRadius, headLength float32, color shapes.Color, opts ...ShapeOption) {
	o := ds.options(color, opts)
	ds.submit(shapes.Arrow{
		Start:        start,
		End:          end,
		ShaftRadius:  shaftRadius,
		HeadRadius:   headRadius,
		HeadLength:   headLength,
		CornerRadius: o.cornerRadius,
	}, math.NewMat4Identity(), o)
}

// ArrowProportions returns the automatic head length, shaft radius and head
// radius for an arrow of the given length.
func ArrowProportions(length float32) (headLength, shaftRadius, headRadius float32) {
	headLength = math32.Min(0.2*length, 0.3)
	shaftRadius = 0.02 * length
	headRadius = 2 * shaftRadius
	return headLength, shaftRadius, headRadius
}

// ArrowAuto draws an arrow whose proportions follow its length.
func (ds *DrawSystem) ArrowAuto(start, end math.Vec3, color shapes.Color, opts ...ShapeOption) {
	headLength, shaftRadius, headRadius := ArrowProportions(start.Distance(end))
	ds.Arrow(start, end, shaftRadius, headRadius, headLength, color, opts...)
}

// ArrowRay draws an arrow of length from origin along direction.
func (ds *DrawSystem) ArrowRay(origin, direction math.Vec3, length float32, color shapes.Color, opts ...ShapeOption) {
	ds.ArrowAuto(origin, origin.Add(direction.Normalized().MulScalar(length)), color, opts...)
}

// FrameAxes sizes the arrows of a coordinate frame.
type FrameAxes struct {
	Scale      float32
	AxisRadius float32
	HeadRadius float32
	HeadLength float32
}

func DefaultFrameAxes() FrameAxes {
	return FrameAxes{Scale: 1, AxisRadius: 0.01, HeadRadius: 0.02, HeadLength: 0.05}
}

// CoordinateFrame draws the local axes of rotation at position: red for
// right, green for up and blue for forward.
func (ds *DrawSystem) CoordinateFrame(position math.Vec3, rotation math.Quaternion, axes FrameAxes, opts ...ShapeOption) {
	ds.frameArrows(position, rotation.Rotate(math.NewVec3Right()), rotation.Rotate(math.NewVec3Up()), rotation.Rotate(math.NewVec3Forward()), axes, opts)
}

// CoordinateFrameFromMatrix draws the axes of a model matrix. Scale in the
// matrix is ignored.
func (ds *DrawSystem) CoordinateFrameFromMatrix(m math.Mat4, axes FrameAxes, opts ...ShapeOption) {
	ds.frameArrows(m.Translation(), m.Right(), m.Up(), m.Forward(), axes, opts)
}

// A persistent frame stores its axes under id/x, id/y and id/z.
func (ds *DrawSystem) frameArrows(position, right, up, forward math.Vec3, axes FrameAxes, opts []ShapeOption) {
	axis := func(direction math.Vec3, color shapes.Color, suffix string) {
		end := position.Add(direction.MulScalar(axes.Scale))
		ds.Arrow(position, end, axes.AxisRadius, axes.HeadRadius, axes.HeadLength, color, ds.partOptions(opts, suffix)...)
	}
	axis(right, shapes.Red, "/x")
	axis(up, shapes.Green, "/y")
	axis(forward, shapes.Blue, "/z")
}

// Rectangle draws a rectangle of size in the XY plane around center.
func (ds *DrawSystem) Rectangle(center math.Vec3, size math.Vec2, color shapes.Color, opts ...ShapeOption) {
	o := ds.options(color, opts)
	transform := math.NewMat4TRS(center, o.rotation, math.NewVec3One())
	ds.submit(shapes.Rectangle{Size: size, CornerRadius: o.cornerRadius, Extrusion: o.extrusion}, transform, o)
}

// Disk draws a filled circle of radius in the XY plane around center.
func (ds *DrawSystem) Disk(center math.Vec3, radius float32, color shapes.Color, opts ...ShapeOption) {
	o := ds.options(color, opts)
	transform := math.NewMat4TRS(center, o.rotation, math.NewVec3One())
	ds.submit(shapes.Disk{Radius: radius, Extrusion: o.extrusion}, transform, o)
}

// Point draws a small unlit disk.
func (ds *DrawSystem) Point(center math.Vec3, radius float32, color shapes.Color, opts ...ShapeOption) {
	ds.Disk(center, radius, color, append([]ShapeOption{Unlit()}, opts...)...)
}

func (ds *DrawSystem) Triangle(a, b, c math.Vec3, color shapes.Color, opts ...ShapeOption) {
	o := ds.options(color, opts)
	ds.submit(shapes.Triangle{A: a, B: b, C: c, Extrusion: o.extrusion}, math.NewMat4Identity(), o)
}

// Quad draws the quadrilateral a, b, c, d as two triangles, stored under
// id/0 and id/1 when persistent.
func (ds *DrawSystem) Quad(a, b, c, d math.Vec3, color shapes.Color, opts ...ShapeOption) {
	ds.Triangle(a, b, c, color, ds.partOptions(opts, "/0")...)
	ds.Triangle(a, c, d, color, ds.partOptions(opts, "/1")...)
}

// Line2D draws a flat line of thickness from start to end.
func (ds *DrawSystem) Line2D(start, end math.Vec3, thickness float32, color shapes.Color, opts ...ShapeOption) {
	o := ds.options(color, append([]ShapeOption{Unlit()}, opts...))
	ds.submit(shapes.Line2D{Start: start, End: end, Thickness: thickness}, math.NewMat4Identity(), o)
}

// CircleOutline draws only the outline of a disk of radius around center.
func (ds *DrawSystem) CircleOutline(center math.Vec3, radius, thickness float32, color shapes.Color, opts ...ShapeOption) {
	ds.Disk(center, radius, shapes.Clear, append([]ShapeOption{Unlit(), WithOutline(color, thickness)}, opts...)...)
}

// BoxOutline draws only the outline of a rectangle of size around center.
func (ds *DrawSystem) BoxOutline(center math.Vec3, size math.Vec2, thickness float32, color shapes.Color, opts ...ShapeOption) {
	ds.Rectangle(center, size, shapes.Clear, append([]ShapeOption{Unlit(), WithOutline(color, thickness)}, opts...)...)
}

// Ray draws a flat line from start to start+offset.
func (ds *DrawSystem) Ray(start, offset math.Vec3, thickness float32, color shapes.Color, opts ...ShapeOption) {
	ds.Line2D(start, start.Add(offset), thickness, color, opts...)
}

// RayDirection draws a flat line of length from start along direction.
func (ds *DrawSystem) RayDirection(start, direction math.Vec3, length, thickness float32, color shapes.Color, opts ...ShapeOption) {
	ds.Line2D(start, start.Add(direction.Normalized().MulScalar(length)), thickness, color, opts...)
}

const (
	DefaultArrow2DHeadLength       float32 = 0.24
	DefaultArrow2DHeadAngleDegrees float32 = 30
)

/**
 * @brief Arrow2D draws a flat arrow in the XY plane out of three lines: the
 * shaft and two head strokes of headLength, each opened headAngleDegrees from
 * the shaft. A persistent arrow stores its lines under id/shaft, id/left and
 * id/right.
 */
func (ds *DrawSystem) Arrow2D(start, end math.Vec3, thickness, headLength, headAngleDegrees float32, color shapes.Color, opts ...ShapeOption) {
	ds.Line2D(start, end, thickness, color, ds.partOptions(opts, "/shaft")...)

	back := start.Sub(end).Normalized()
	if back.LengthSquared() == 0 {
		return
	}
	stroke := func(angle float32, suffix string) {
		rotation := math.NewQuatFromAxisAngle(math.NewVec3Forward(), math.DegToRad(angle), true)
		tip := end.Add(rotation.Rotate(back).MulScalar(headLength))
		ds.Line2D(end, tip, thickness, color, ds.partOptions(opts, suffix)...)
	}
	stroke(headAngleDegrees, "/left")
	stroke(-headAngleDegrees, "/right")
}

// ArrowRay2D draws a flat arrow of length from start along direction.
func (ds *DrawSystem) ArrowRay2D(start, direction math.Vec3, length, thickness, headLength, headAngleDegrees float32, color shapes.Color, opts ...ShapeOption) {
	end := start.Add(direction.Normalized().MulScalar(length))
	ds.Arrow2D(start, end, thickness, headLength, headAngleDegrees, color, opts...)
}
