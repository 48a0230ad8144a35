package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-5

func TestMat4TRSComposesScaleRotationTranslation(t *testing.T) {
	rot := NewQuatFromAxisAngle(NewVec3Up(), K_PI/2, true)
	m := NewMat4TRS(NewVec3(1, 2, 3), rot, NewVec3(2, 2, 2))

	// +X scaled to 2, rotated a quarter turn around +Y to -Z, then translated
	p := m.MulPoint(NewVec3(1, 0, 0))
	assert.True(t, p.Compare(NewVec3(1, 2, 1), tolerance), "got %v", p)
	assert.True(t, m.Translation().Compare(NewVec3(1, 2, 3), tolerance))
}

func TestMat4MulOrder(t *testing.T) {
	s := NewMat4Scale(NewVec3(2, 2, 2))
	tr := NewMat4Translation(NewVec3(1, 0, 0))

	// scale then translate
	p := s.Mul(tr).MulPoint(NewVec3(1, 0, 0))
	assert.True(t, p.Compare(NewVec3(3, 0, 0), tolerance), "got %v", p)

	// translate then scale
	p = tr.Mul(s).MulPoint(NewVec3(1, 0, 0))
	assert.True(t, p.Compare(NewVec3(4, 0, 0), tolerance), "got %v", p)
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	q := NewQuatFromEulerDegrees(30, 45, 60)
	v := NewVec3(0.3, -1.2, 2.5)
	assert.True(t, q.Rotate(v).Compare(q.ToMat4().MulPoint(v), tolerance))
}

func TestQuatFromTo(t *testing.T) {
	cases := []struct {
		name string
		to   Vec3
	}{
		{"same", NewVec3(0, 1, 0)},
		{"opposite", NewVec3(0, -1, 0)},
		{"perpendicular", NewVec3(1, 0, 0)},
		{"oblique", NewVec3(1, 1, -1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := NewQuatFromTo(NewVec3Up(), tc.to)
			got := q.Rotate(NewVec3Up())
			assert.True(t, got.Compare(tc.to.Normalized(), tolerance), "got %v", got)
		})
	}

	assert.Equal(t, NewQuatIdentity(), NewQuatFromTo(NewVec3Up(), Vec3{}))
}

func TestNormalizedZeroVector(t *testing.T) {
	n := Vec3{}.Normalized()
	assert.Equal(t, Vec3{}, n)
	assert.True(t, n.IsFinite())
}

func TestPolygonNormal(t *testing.T) {
	square := []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	assert.True(t, PolygonNormal(square).Compare(NewVec3(0, 0, 1), tolerance))
}

func TestExtentsFromPoints(t *testing.T) {
	e := NewExtents3DFromPoints(NewVec3(1, -2, 0), NewVec3(-1, 4, 2))
	assert.Equal(t, NewVec3(0, 1, 1), e.Center())
	assert.Equal(t, NewVec3(2, 6, 2), e.Size())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(float32(3), 0, 1))
	assert.Equal(t, 0, Clamp(-4, 0, 10))
}
