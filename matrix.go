package strata

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/math/f64"
)

// Matrix4 is a 4x4 transformation matrix in row-major order. Layers compose
// 2D transforms with it; Z and perspective terms are carried along but only
// the 2D affine part reaches the rasterizer.
//
//	| m[0]  m[1]  m[2]  m[3]  |
//	| m[4]  m[5]  m[6]  m[7]  |
//	| m[8]  m[9]  m[10] m[11] |
//	| m[12] m[13] m[14] m[15] |
type Matrix4 f64.Mat4

// Identity4 returns the identity matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation4 returns a matrix translating by (dx, dy, dz).
func Translation4(dx, dy, dz float64) Matrix4 {
	m := Identity4()
	m[3], m[7], m[11] = dx, dy, dz
	return m
}

// Scale4 returns a matrix scaling X and Y.
func Scale4(sx, sy float64) Matrix4 {
	m := Identity4()
	m[0], m[5] = sx, sy
	return m
}

// Rotation4Z returns a matrix rotating around the Z axis by radians.
func Rotation4Z(radians float64) Matrix4 {
	sin, cos := math.Sincos(radians)
	m := Identity4()
	m[0], m[1] = cos, -sin
	m[4], m[5] = sin, cos
	return m
}

// Multiply returns m * other. Applied to a point, other acts first.
func (m Matrix4) Multiply(other Matrix4) Matrix4 {
	var r Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * other[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// Translate post-multiplies m by a translation of (dx, dy) in place.
func (m *Matrix4) Translate(dx, dy float64) {
	*m = m.Multiply(Translation4(dx, dy, 0))
}

// Determinant returns the determinant of m.
func (m Matrix4) Determinant() float64 {
	_, det := m.cofactors()
	return det
}

// TryInvert returns the inverse of m. ok is false when m is singular.
func (m Matrix4) TryInvert() (Matrix4, bool) {
	inv, det := m.cofactors()
	if det == 0 || math.IsNaN(det) {
		return Matrix4{}, false
	}
	invDet := 1 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return inv, true
}

// cofactors returns the adjugate of m and its determinant.
func (m Matrix4) cofactors() (Matrix4, float64) {
	var inv Matrix4
	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	return inv, det
}

// TransformPoint maps the 2D point p (z = 0, w = 1) through m, applying the
// perspective divide when the resulting w is not 1.
func (m Matrix4) TransformPoint(p Offset) Offset {
	x := m[0]*p.DX + m[1]*p.DY + m[3]
	y := m[4]*p.DX + m[5]*p.DY + m[7]
	w := m[12]*p.DX + m[13]*p.DY + m[15]
	if w != 1 && w != 0 {
		return Offset{x / w, y / w}
	}
	return Offset{x, y}
}

// Affine projects m onto the 2D affine transform used by gg paths and
// contexts, dropping Z and perspective terms.
func (m Matrix4) Affine() gg.Matrix {
	return gg.Matrix{
		A: m[0], B: m[1], C: m[3],
		D: m[4], E: m[5], F: m[7],
	}
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix4) IsIdentity() bool {
	return m == Identity4()
}

// ApproxEqual reports whether every entry of m is within eps of other.
func (m Matrix4) ApproxEqual(other Matrix4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// withoutZ replaces the Z row and column with the identity's so that a
// transform can be inverted for 2D hit testing.
func (m Matrix4) withoutZ() Matrix4 {
	r := m
	r[2], r[6], r[14] = 0, 0, 0
	r[8], r[9], r[11] = 0, 0, 0
	r[10] = 1
	return r
}

// String prints the matrix row by row.
func (m Matrix4) String() string {
	return fmt.Sprintf("[%.3g %.3g %.3g %.3g | %.3g %.3g %.3g %.3g | %.3g %.3g %.3g %.3g | %.3g %.3g %.3g %.3g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7],
		m[8], m[9], m[10], m[11], m[12], m[13], m[14], m[15])
}
