package math

func TransformCreate() Transform {
	return Transform{Rotation: NewQuatIdentity(), Scale: NewVec3One()}
}

func TransformFromPosition(position Vec3) Transform {
	return TransformFromPositionRotationScale(position, NewQuatIdentity(), NewVec3One())
}

func TransformFromPositionRotation(position Vec3, rotation Quaternion) Transform {
	return TransformFromPositionRotationScale(position, rotation, NewVec3One())
}

func TransformFromPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) Transform {
	return Transform{Position: position, Rotation: rotation, Scale: scale}
}

func (t Transform) Translate(translation Vec3) Transform {
	t.Position = t.Position.Add(translation)
	return t
}

func (t Transform) Rotate(rotation Quaternion) Transform {
	t.Rotation = t.Rotation.Mul(rotation)
	return t
}

func (t Transform) Matrix() Mat4 {
	return NewMat4TRS(t.Position, t.Rotation, t.Scale)
}

// TransformPoint maps p from the transform's local space into its parent.
func (t Transform) TransformPoint(p Vec3) Vec3 {
	return t.Rotation.Rotate(p.Mul(t.Scale)).Add(t.Position)
}
