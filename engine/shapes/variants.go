package shapes

import (
	"github.com/chewxy/math32"

	"github.com/spaghettifunk/anima-draw/engine/math"
)

var normalZ = math.NewVec4(0, 0, 1, 0)

// Box is an axis-aligned box centred on the origin.
type Box struct {
	Size         math.Vec3
	CornerRadius float32
}

func (b Box) Type() Type { return TypeBox }

func (b Box) Parameters() (p1, p2, p3 math.Vec4) {
	return b.Size.MulScalar(0.5).ToVec4(0), math.Vec4{}, math.Vec4{}
}

func (b Box) CornerRounding() float32 { return b.CornerRadius }
func (b Box) ExtrusionDepth() float32 { return 0 }

func (b Box) Frame() math.Mat4 {
	return math.NewMat4Scale(b.Size)
}

// Sphere is centred on the origin.
type Sphere struct {
	Radius float32
}

func (s Sphere) Type() Type { return TypeSphere }

func (s Sphere) Parameters() (p1, p2, p3 math.Vec4) {
	return math.NewVec3Splat(s.Radius).ToVec4(0), math.Vec4{}, math.Vec4{}
}

func (s Sphere) CornerRounding() float32 { return 0 }
func (s Sphere) ExtrusionDepth() float32 { return 0 }

func (s Sphere) Frame() math.Mat4 {
	return math.NewMat4Scale(math.NewVec3Splat(2 * s.Radius))
}

// Ellipsoid is centred on the origin with one radius per axis.
type Ellipsoid struct {
	Radii math.Vec3
}

func (e Ellipsoid) Type() Type { return TypeEllipsoid }

func (e Ellipsoid) Parameters() (p1, p2, p3 math.Vec4) {
	return e.Radii.ToVec4(0), math.Vec4{}, math.Vec4{}
}

func (e Ellipsoid) CornerRounding() float32 { return 0 }
func (e Ellipsoid) ExtrusionDepth() float32 { return 0 }

func (e Ellipsoid) Frame() math.Mat4 {
	return math.NewMat4Scale(e.Radii.MulScalar(2))
}

/**
 * @brief The instance frame of a round segment shape. The unit cube is
 * stretched to (2r, h+extra, 2r), its Y axis turned onto the segment and
 * centred between the endpoints. The returned endpoints are expressed in that
 * frame (before scaling), which is what the shape shader expects.
 */
func segmentFrame(start, end math.Vec3, radius, extraHeight float32) (frame math.Mat4, base, tip math.Vec3) {
	axis := end.Sub(start)
	height := axis.Length()
	rotation := math.NewQuatFromTo(math.NewVec3Up(), axis)
	mid := start.Add(end).MulScalar(0.5)
	frame = math.NewMat4TRS(mid, rotation, math.NewVec3(2*radius, height+extraHeight, 2*radius))
	half := math.NewVec3(0, height*0.5, 0)
	return frame, rotation.Rotate(half.Negate()), rotation.Rotate(half)
}

// Cylinder runs from Start to End.
type Cylinder struct {
	Start, End   math.Vec3
	Radius       float32
	CornerRadius float32
}

func (c Cylinder) Type() Type { return TypeCylinder }

func (c Cylinder) Parameters() (p1, p2, p3 math.Vec4) {
	_, base, tip := segmentFrame(c.Start, c.End, c.Radius, 0)
	return base.ToVec4(c.Radius), tip.ToVec4(0), math.Vec4{}
}

func (c Cylinder) CornerRounding() float32 { return c.CornerRadius }
func (c Cylinder) ExtrusionDepth() float32 { return 0 }

func (c Cylinder) Frame() math.Mat4 {
	frame, _, _ := segmentFrame(c.Start, c.End, c.Radius, 0)
	return frame
}

func (c Cylinder) Length() float32 {
	return c.Start.Distance(c.End)
}

// Capsule is a cylinder from Start to End with hemispherical caps.
type Capsule struct {
	Start, End math.Vec3
	Radius     float32
}

func (c Capsule) Type() Type { return TypeCapsule }

func (c Capsule) Parameters() (p1, p2, p3 math.Vec4) {
	_, base, tip := segmentFrame(c.Start, c.End, c.Radius, 2*c.Radius)
	return base.ToVec4(c.Radius), tip.ToVec4(0), normalZ
}

func (c Capsule) CornerRounding() float32 { return 0 }
func (c Capsule) ExtrusionDepth() float32 { return 0 }

func (c Capsule) Frame() math.Mat4 {
	frame, _, _ := segmentFrame(c.Start, c.End, c.Radius, 2*c.Radius)
	return frame
}

// Cone has a disc of Radius at Base narrowing to a point at Tip.
type Cone struct {
	Base, Tip    math.Vec3
	Radius       float32
	CornerRadius float32
}

func (c Cone) Type() Type { return TypeCone }

func (c Cone) Parameters() (p1, p2, p3 math.Vec4) {
	_, base, tip := segmentFrame(c.Base, c.Tip, c.Radius, 0)
	return base.ToVec4(c.Radius), tip.ToVec4(0), math.Vec4{}
}

func (c Cone) CornerRounding() float32 { return c.CornerRadius }
func (c Cone) ExtrusionDepth() float32 { return 0 }

func (c Cone) Frame() math.Mat4 {
	frame, _, _ := segmentFrame(c.Base, c.Tip, c.Radius, 0)
	return frame
}

func (c Cone) Length() float32 {
	return c.Base.Distance(c.Tip)
}

/**
 * @brief An arrow from Start to End: a cylindrical shaft and a conical head of
 * HeadLength. Arrows are composite and are expanded before batching.
 */
type Arrow struct {
	Start, End   math.Vec3
	ShaftRadius  float32
	HeadRadius   float32
	HeadLength   float32
	CornerRadius float32
}

func (a Arrow) Type() Type { return TypeArrow }

func (a Arrow) Parameters() (p1, p2, p3 math.Vec4) {
	return a.Start.ToVec4(a.ShaftRadius), a.End.ToVec4(a.HeadRadius), math.NewVec4(a.HeadLength, 0, 0, 0)
}

func (a Arrow) CornerRounding() float32 { return a.CornerRadius }
func (a Arrow) ExtrusionDepth() float32 { return 0 }

func (a Arrow) Frame() math.Mat4 {
	bounds := math.NewExtents3DFromPoints(a.Start, a.End)
	pad := math.NewVec3Splat(2 * math32.Max(a.ShaftRadius, a.HeadRadius))
	return math.NewMat4TRS(bounds.Center(), math.NewQuatIdentity(), bounds.Size().Add(pad))
}

/**
 * @brief Split returns the shaft and head of the arrow. The shaft covers
 * the length not taken by the head and is empty when the head is longer than
 * the arrow. A zero-length arrow yields zero-length parts.
 */
func (a Arrow) Split() (Cylinder, Cone) {
	axis := a.End.Sub(a.Start)
	direction := axis.Normalized()
	shaftLength := math32.Max(0, axis.Length()-a.HeadLength)
	shaftEnd := a.Start.Add(direction.MulScalar(shaftLength))

	shaft := Cylinder{Start: a.Start, End: shaftEnd, Radius: a.ShaftRadius, CornerRadius: a.CornerRadius}
	head := Cone{Base: shaftEnd, Tip: a.End, Radius: a.HeadRadius, CornerRadius: a.CornerRadius}
	return shaft, head
}

// Rectangle lies in the XY plane, optionally extruded along Z.
type Rectangle struct {
	Size         math.Vec2
	CornerRadius float32
	Extrusion    float32
}

func (r Rectangle) Type() Type { return TypeRectangle }

func (r Rectangle) Parameters() (p1, p2, p3 math.Vec4) {
	return math.NewVec4(r.Size.X*0.5, r.Size.Y*0.5, 0, 0), math.Vec4{}, normalZ
}

func (r Rectangle) CornerRounding() float32 { return r.CornerRadius }
func (r Rectangle) ExtrusionDepth() float32 { return r.Extrusion }

func (r Rectangle) Frame() math.Mat4 {
	return math.NewMat4Scale(math.NewVec3(r.Size.X, r.Size.Y, r.Extrusion))
}

// Disk lies in the XY plane, optionally extruded along Z.
type Disk struct {
	Radius    float32
	Extrusion float32
}

func (d Disk) Type() Type { return TypeDisk }

func (d Disk) Parameters() (p1, p2, p3 math.Vec4) {
	return math.NewVec4(d.Radius, 0, 0, 0), math.Vec4{}, normalZ
}

func (d Disk) CornerRounding() float32 { return 0 }
func (d Disk) ExtrusionDepth() float32 { return d.Extrusion }

func (d Disk) Frame() math.Mat4 {
	return math.NewMat4Scale(math.NewVec3(2*d.Radius, 2*d.Radius, d.Extrusion))
}

type Triangle struct {
	A, B, C   math.Vec3
	Extrusion float32
}

func (t Triangle) Type() Type { return TypeTriangle }

func (t Triangle) Parameters() (p1, p2, p3 math.Vec4) {
	return t.A.ToVec4(0), t.B.ToVec4(0), t.C.ToVec4(0)
}

func (t Triangle) CornerRounding() float32 { return 0 }
func (t Triangle) ExtrusionDepth() float32 { return t.Extrusion }

func (t Triangle) Frame() math.Mat4 {
	bounds := math.NewExtents3DFromPoints(t.A, t.B, t.C)
	size := bounds.Size().Add(math.NewVec3(0, 0, t.Extrusion))
	return math.NewMat4TRS(bounds.Center(), math.NewQuatIdentity(), size)
}

// Line2D is a flat line of Thickness from Start to End.
type Line2D struct {
	Start, End math.Vec3
	Thickness  float32
}

func (l Line2D) Type() Type { return TypeLine2D }

func (l Line2D) Parameters() (p1, p2, p3 math.Vec4) {
	return l.Start.ToVec4(l.Thickness), l.End.ToVec4(0), normalZ
}

func (l Line2D) CornerRounding() float32 { return 0 }
func (l Line2D) ExtrusionDepth() float32 { return 0 }

func (l Line2D) Frame() math.Mat4 {
	bounds := math.NewExtents3DFromPoints(l.Start, l.End)
	size := bounds.Size().Add(math.NewVec3Splat(l.Thickness))
	return math.NewMat4TRS(bounds.Center(), math.NewQuatIdentity(), size)
}
