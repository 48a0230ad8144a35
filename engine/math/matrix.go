package math

/**
 * @brief Creates and returns an identity matrix.
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

/**
 * @brief Composes two transformations. The result applies mt first and
 * other second, so NewMat4Scale(s).Mul(r).Mul(t) builds a T·R·S model matrix.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[row*4+i] * other.Data[i*4+col]
			}
			out_matrix.Data[row*4+col] = sum
		}
	}

	return out_matrix
}

func NewMat4Translation(position Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[12] = position.X
	out_matrix.Data[13] = position.Y
	out_matrix.Data[14] = position.Z
	return out_matrix
}

func NewMat4Scale(scale Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[0] = scale.X
	out_matrix.Data[5] = scale.Y
	out_matrix.Data[10] = scale.Z
	return out_matrix
}

/**
 * @brief Creates a translation-rotation-scale matrix: scale is applied
 * first, then rotation, then translation.
 */
func NewMat4TRS(position Vec3, rotation Quaternion, scale Vec3) Mat4 {
	return NewMat4Scale(scale).Mul(rotation.ToMat4()).Mul(NewMat4Translation(position))
}

func NewMat4Transposed(matrix Mat4) Mat4 {
	out_matrix := Mat4{}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out_matrix.Data[col*4+row] = matrix.Data[row*4+col]
		}
	}
	return out_matrix
}

// At returns the element at row, col.
func (mt Mat4) At(row, col int) float32 {
	return mt.Data[col*4+row]
}

// Column returns the xyz part of column i.
func (mt Mat4) Column(i int) Vec3 {
	return Vec3{mt.Data[i*4], mt.Data[i*4+1], mt.Data[i*4+2]}
}

func (mt Mat4) Translation() Vec3 {
	return mt.Column(3)
}

func (mt Mat4) Right() Vec3 {
	return mt.Column(0).Normalized()
}

func (mt Mat4) Up() Vec3 {
	return mt.Column(1).Normalized()
}

func (mt Mat4) Forward() Vec3 {
	return mt.Column(2).Normalized()
}

/**
 * @brief Transforms point p (w = 1) by the matrix.
 */
func (mt Mat4) MulPoint(p Vec3) Vec3 {
	d := &mt.Data
	return Vec3{
		d[0]*p.X + d[4]*p.Y + d[8]*p.Z + d[12],
		d[1]*p.X + d[5]*p.Y + d[9]*p.Z + d[13],
		d[2]*p.X + d[6]*p.Y + d[10]*p.Z + d[14],
	}
}

/**
 * @brief Transforms direction v (w = 0) by the matrix.
 */
func (mt Mat4) MulDirection(v Vec3) Vec3 {
	d := &mt.Data
	return Vec3{
		d[0]*v.X + d[4]*v.Y + d[8]*v.Z,
		d[1]*v.X + d[5]*v.Y + d[9]*v.Z,
		d[2]*v.X + d[6]*v.Y + d[10]*v.Z,
	}
}

func (mt Mat4) IsIdentity() bool {
	return mt == NewMat4Identity()
}

// RowMajor returns the elements laid out row by row.
func (mt Mat4) RowMajor() [16]float32 {
	return NewMat4Transposed(mt).Data
}

func (mt Mat4) Compare(other Mat4, tolerance float32) bool {
	for i := range mt.Data {
		diff := mt.Data[i] - other.Data[i]
		if diff > tolerance || diff < -tolerance {
			return false
		}
	}
	return true
}
