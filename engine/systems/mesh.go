package systems

import (
	"slices"

	"github.com/google/uuid"
	"golang.org/x/image/math/f32"

	"github.com/spaghettifunk/anima-draw/engine/core"
	"github.com/spaghettifunk/anima-draw/engine/math"
	"github.com/spaghettifunk/anima-draw/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-draw/engine/shapes"
)

type persistentPolygon struct {
	points    []math.Vec3
	color     shapes.Color
	transform math.Mat4
	expiry    float64
}

/**
 * @brief Polygon fills a convex planar polygon with an unlit colour. The
 * polygon is triangulated as a fan into pooled dynamic geometry and drawn
 * directly, outside of the instanced batches. With Persistent the polygon is
 * kept under its id until it expires, sharing the id space of persistent
 * shapes.
 */
func (ds *DrawSystem) Polygon(points []math.Vec3, color shapes.Color, opts ...ShapeOption) {
	if !ds.accepting() {
		return
	}
	if len(points) < 3 {
		core.LogWarn("polygon needs at least 3 points, got %d", len(points))
		return
	}
	o := ds.options(color, opts)
	transform := math.NewMat4TRS(math.NewVec3Zero(), o.rotation, math.NewVec3One())

	if o.persistent {
		if o.duration <= 0 {
			core.LogDebug("persistent polygon '%s' ignored: duration %f is not positive", o.id, o.duration)
			return
		}
		id := o.id
		if id == "" {
			id = uuid.NewString()
		}
		ds.persistentPolygons.Add(id, persistentPolygon{
			points:    slices.Clone(points),
			color:     color,
			transform: transform,
			expiry:    ds.clock.Now() + o.duration,
		})
		return
	}

	ds.polygons = append(ds.polygons, polygonRequest{
		first:     len(ds.polygonPoints),
		count:     len(points),
		color:     color,
		transform: transform,
	})
	ds.polygonPoints = append(ds.polygonPoints, points...)
}

// PersistentPolygonCount is the number of polygons kept across frames.
func (ds *DrawSystem) PersistentPolygonCount() int {
	return ds.persistentPolygons.Len()
}

func (ds *DrawSystem) expirePolygons(now float64) int {
	return expireBefore(ds.persistentPolygons, now, func(p persistentPolygon) float64 {
		return p.expiry
	})
}

func (ds *DrawSystem) enqueuePolygons() {
	for _, p := range ds.polygons {
		ds.enqueuePolygon(ds.polygonPoints[p.first:p.first+p.count], p.color, p.transform)
	}
	for _, kv := range ds.persistentPolygons.Order {
		p := kv.Value
		ds.enqueuePolygon(p.points, p.color, p.transform)
	}
}

func (ds *DrawSystem) enqueuePolygon(points []math.Vec3, color shapes.Color, transform math.Mat4) {
	geometry := ds.meshes.GetItem()
	buildPolygonFan(geometry, points, color)

	params := ds.blocks.GetItem()
	params.SetVector(metadata.PropertyColor, f32.Vec4(color.Array()))

	ds.queue.Enqueue(DrawCommand{
		Geometry:  geometry,
		Transform: transform,
		Material:  ds.unlitMaterial,
		Params:    params,
	})
}

// buildPolygonFan fills g with a triangle fan over points. Every vertex gets
// the polygon normal.
func buildPolygonFan(g *metadata.Geometry, points []math.Vec3, color shapes.Color) {
	normal := math.PolygonNormal(points)
	for _, p := range points {
		g.Vertices = append(g.Vertices, math.Vertex3D{
			Position: p,
			Normal:   normal,
			Colour:   color,
		})
	}
	for i := 1; i+1 < len(points); i++ {
		g.Indices = append(g.Indices, 0, uint32(i), uint32(i+1))
	}
	g.Extents = math.NewExtents3DFromPoints(points...)
	g.Center = g.Extents.Center()
}
