package systems

import (
	"cogentcore.org/core/base/ordmap"
	"github.com/google/uuid"

	"github.com/spaghettifunk/anima-draw/engine/core"
	"github.com/spaghettifunk/anima-draw/engine/shapes"
)

type persistentShape struct {
	descriptor shapes.Descriptor
	// absolute time in seconds after which the shape is dropped
	expiry float64
}

/**
 * @brief ShapeRegistry holds the shapes requested for drawing. Immediate
 * shapes live until the end of the current frame; persistent shapes live
 * until their expiry time passes or they are removed by id. Persistent shapes
 * are returned in insertion order, and replacing one keeps its position.
 */
type ShapeRegistry struct {
	clock      *core.Clock
	immediate  []shapes.Descriptor
	persistent *ordmap.Map[string, persistentShape]
}

func NewShapeRegistry(clock *core.Clock) *ShapeRegistry {
	if clock == nil {
		clock = core.NewClock()
	}
	return &ShapeRegistry{
		clock:      clock,
		immediate:  make([]shapes.Descriptor, 0, 256),
		persistent: ordmap.New[string, persistentShape](),
	}
}

// AddImmediateShape queues a shape for the current frame only.
func (r *ShapeRegistry) AddImmediateShape(d shapes.Descriptor) {
	r.immediate = append(r.immediate, d)
}

/**
 * @brief SetPersistentShape creates or replaces the shape stored under id. It
 * expires duration seconds from now. A non-positive duration does nothing.
 */
func (r *ShapeRegistry) SetPersistentShape(id string, duration float64, d shapes.Descriptor) {
	if duration <= 0 {
		core.LogDebug("persistent shape '%s' ignored: duration %f is not positive", id, duration)
		return
	}
	r.persistent.Add(id, persistentShape{
		descriptor: d,
		expiry:     r.clock.Now() + duration,
	})
}

// AddPersistentShape stores d under a new unique id and returns the id.
func (r *ShapeRegistry) AddPersistentShape(duration float64, d shapes.Descriptor) string {
	id := uuid.NewString()
	r.SetPersistentShape(id, duration, d)
	return id
}

func (r *ShapeRegistry) RemovePersistentShape(id string) {
	r.persistent.DeleteKey(id)
}

func (r *ShapeRegistry) ClearAllPersistentShapes() {
	r.persistent.Reset()
}

func (r *ShapeRegistry) PersistentShape(id string) (shapes.Descriptor, bool) {
	s, ok := r.persistent.ValueByKeyTry(id)
	return s.descriptor, ok
}

// ExpirePersistent removes every persistent shape whose expiry is before now
// and returns how many were removed.
func (r *ShapeRegistry) ExpirePersistent(now float64) int {
	return expireBefore(r.persistent, now, func(s persistentShape) float64 {
		return s.expiry
	})
}

// expireBefore drops the entries of m whose expiry is before now in a single
// pass, keeping the order of the rest.
func expireBefore[V any](m *ordmap.Map[string, V], now float64, expiry func(V) float64) int {
	order := m.Order
	kept := order[:0]
	for _, kv := range order {
		if expiry(kv.Value) >= now {
			kept = append(kept, kv)
		}
	}
	expired := len(order) - len(kept)
	if expired == 0 {
		return 0
	}
	clear(order[len(kept):])
	m.Order = kept
	clear(m.Map)
	for i, kv := range kept {
		m.Map[kv.Key] = i
	}
	return expired
}

// Collect appends the immediate shapes followed by the persistent shapes to
// dst and returns the extended slice.
func (r *ShapeRegistry) Collect(dst []shapes.Descriptor) []shapes.Descriptor {
	dst = append(dst, r.immediate...)
	for _, kv := range r.persistent.Order {
		dst = append(dst, kv.Value.descriptor)
	}
	return dst
}

// ClearImmediate empties the immediate list, keeping its capacity.
func (r *ShapeRegistry) ClearImmediate() {
	clear(r.immediate)
	r.immediate = r.immediate[:0]
}

func (r *ShapeRegistry) ImmediateCount() int {
	return len(r.immediate)
}

func (r *ShapeRegistry) PersistentCount() int {
	return r.persistent.Len()
}
