package math

import "github.com/chewxy/math32"

/**
 * @brief Creates an identity quaternion.
 */
func NewQuatIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1.0}
}

/**
 * @brief Creates a quaternion rotating angle radians around axis.
 */
func NewQuatFromAxisAngle(axis Vec3, angle float32, normalize bool) Quaternion {
	half := 0.5 * angle
	s := math32.Sin(half)
	c := math32.Cos(half)
	q := Quaternion{s * axis.X, s * axis.Y, s * axis.Z, c}
	if normalize {
		return q.Normalize()
	}
	return q
}

/**
 * @brief Creates the shortest rotation taking direction from onto direction to.
 * Opposite directions rotate half a turn around an axis perpendicular to from;
 * a zero direction yields identity.
 */
func NewQuatFromTo(from, to Vec3) Quaternion {
	f := from.Normalized()
	t := to.Normalized()
	if f.LengthSquared() == 0 || t.LengthSquared() == 0 {
		return NewQuatIdentity()
	}

	d := f.Dot(t)
	if d >= 1.0-K_DIRECTION_EPSILON {
		return NewQuatIdentity()
	}
	if d <= -1.0+K_DIRECTION_EPSILON {
		axis := NewVec3Right().Cross(f)
		if axis.LengthSquared() < K_DIRECTION_EPSILON {
			axis = NewVec3Forward().Cross(f)
		}
		return NewQuatFromAxisAngle(axis.Normalized(), K_PI, false)
	}

	axis := f.Cross(t)
	return Quaternion{axis.X, axis.Y, axis.Z, 1.0 + d}.Normalize()
}

/**
 * @brief Creates a rotation from Euler angles in degrees, applied Z, then X, then Y.
 */
func NewQuatFromEulerDegrees(x, y, z float32) Quaternion {
	qx := NewQuatFromAxisAngle(NewVec3Right(), DegToRad(x), false)
	qy := NewQuatFromAxisAngle(NewVec3Up(), DegToRad(y), false)
	qz := NewQuatFromAxisAngle(NewVec3Forward(), DegToRad(z), false)
	return qy.Mul(qx).Mul(qz)
}

func (q Quaternion) Normal() float32 {
	return math32.Sqrt(
		q.X*q.X +
			q.Y*q.Y +
			q.Z*q.Z +
			q.W*q.W)
}

/**
 * @brief Returns a normalized copy of the quaternion, or identity when
 * its length is zero.
 */
func (q Quaternion) Normalize() Quaternion {
	normal := q.Normal()
	if normal == 0 {
		return NewQuatIdentity()
	}
	return Quaternion{
		q.X / normal,
		q.Y / normal,
		q.Z / normal,
		q.W / normal}
}

func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

/**
 * @brief Hamilton product. The result applies other first, then q.
 */
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

func (q Quaternion) Dot(other Quaternion) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

/**
 * @brief Rotates vector v by the quaternion.
 */
func (q Quaternion) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).MulScalar(2)
	return v.Add(t.MulScalar(q.W)).Add(u.Cross(t))
}

/**
 * @brief Creates a rotation matrix from the quaternion.
 */
func (q Quaternion) ToMat4() Mat4 {
	n := q.Normalize()
	xx, yy, zz := n.X*n.X, n.Y*n.Y, n.Z*n.Z
	xy, xz, yz := n.X*n.Y, n.X*n.Z, n.Y*n.Z
	wx, wy, wz := n.W*n.X, n.W*n.Y, n.W*n.Z

	out := NewMat4Identity()
	// column 0
	out.Data[0] = 1.0 - 2.0*(yy+zz)
	out.Data[1] = 2.0 * (xy + wz)
	out.Data[2] = 2.0 * (xz - wy)
	// column 1
	out.Data[4] = 2.0 * (xy - wz)
	out.Data[5] = 1.0 - 2.0*(xx+zz)
	out.Data[6] = 2.0 * (yz + wx)
	// column 2
	out.Data[8] = 2.0 * (xz + wy)
	out.Data[9] = 2.0 * (yz - wx)
	out.Data[10] = 1.0 - 2.0*(xx+yy)
	return out
}
