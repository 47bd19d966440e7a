package mathutil

import "github.com/go-gl/mathgl/mgl64"

// Quat is an orientation. Aliased so scene nodes and camera code share
// mathgl's implementation.
type Quat = mgl64.Quat

// QuatIdentity is the unrotated orientation.
func QuatIdentity() Quat { return mgl64.QuatIdent() }

// RotateOnAxis applies an axis-angle increment in the body's local frame,
// accumulating onto q. Zero angles and degenerate axes leave q unchanged.
func RotateOnAxis(q Quat, axis Vec3, angle float64) Quat {
	n := axis.Normalize()
	if angle == 0 || n == (Vec3{}) {
		return q
	}
	return q.Mul(mgl64.QuatRotate(angle, n.Mgl())).Normalize()
}

// QuatToMat3 converts a quaternion to a 3×3 rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.W
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}
