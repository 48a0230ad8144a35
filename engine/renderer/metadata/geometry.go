package metadata

import (
	"github.com/spaghettifunk/anima-draw/engine/math"
)

/** @brief The name of the unit cube every instanced shape is drawn with. */
const BoundingCubeGeometryName string = "__vis_bounding_cube__"

/**
 * @brief Represents the configuration for a geometry.
 */
type GeometryConfig struct {
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief An array of Indices. */
	Indices []uint32

	Center  math.Vec3
	Extents math.Extents3D

	/** @brief The Name of the geometry. */
	Name string
}

/**
 * @brief Represents geometry known to the host renderer.
 * Dynamic geometry keeps its vertex and index data on the CPU side and is
 * rebuilt by the host every time it is drawn.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uint32
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
	/** @brief The geometry name. */
	Name string

	Dynamic  bool
	Vertices []math.Vertex3D
	Indices  []uint32
}

// ResetDynamic empties the CPU-side buffers, keeping their capacity.
func (g *Geometry) ResetDynamic() {
	g.Vertices = g.Vertices[:0]
	g.Indices = g.Indices[:0]
	g.Generation++
}

type cubeFace struct {
	normal math.Vec3
	// the two in-plane axes, chosen so that u x v == normal
	u, v math.Vec3
}

var cubeFaces = [6]cubeFace{
	{normal: math.Vec3{Z: 1}, u: math.Vec3{X: 1}, v: math.Vec3{Y: 1}},
	{normal: math.Vec3{Z: -1}, u: math.Vec3{X: -1}, v: math.Vec3{Y: 1}},
	{normal: math.Vec3{X: -1}, u: math.Vec3{Z: 1}, v: math.Vec3{Y: 1}},
	{normal: math.Vec3{X: 1}, u: math.Vec3{Z: -1}, v: math.Vec3{Y: 1}},
	{normal: math.Vec3{Y: -1}, u: math.Vec3{X: 1}, v: math.Vec3{Z: 1}},
	{normal: math.Vec3{Y: 1}, u: math.Vec3{X: 1}, v: math.Vec3{Z: -1}},
}

/**
 * @brief Generates the configuration of an axis-aligned unit cube centred on
 * the origin (extents -0.5..0.5). Instanced shapes scale it to their bounds.
 * Faces wind counter-clockwise when seen from outside.
 */
func GenerateUnitCubeConfig(name string) *GeometryConfig {
	if name == "" {
		name = BoundingCubeGeometryName
	}
	config := &GeometryConfig{
		Vertices: make([]math.Vertex3D, 0, 4*6), // 4 verts per side, 6 sides
		Indices:  make([]uint32, 0, 6*6),        // 6 indices per side, 6 sides
		Extents: math.Extents3D{
			Min: math.NewVec3Splat(-0.5),
			Max: math.NewVec3Splat(0.5),
		},
		Name: name,
	}

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, face := range cubeFaces {
		base := uint32(len(config.Vertices))
		center := face.normal.MulScalar(0.5)
		for _, c := range corners {
			pos := center.Add(face.u.MulScalar(0.5 * c[0])).Add(face.v.MulScalar(0.5 * c[1]))
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: pos,
				Normal:   face.normal,
				Texcoord: math.NewVec2((c[0]+1)*0.5, (c[1]+1)*0.5),
				Colour:   math.NewVec4(1, 1, 1, 1),
			})
		}
		config.Indices = append(config.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return config
}
