// Package physics provides distance, containment and orientation utilities
// for the 3D arena. The world is z-up.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Distance calculates the Euclidean distance between two points.
func Distance(a, b mgl32.Vec3) float32 {
	return b.Sub(a).Len()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b mgl32.Vec3) float32 {
	d := b.Sub(a)
	return d.Dot(d)
}

// PointInSphere checks if a point is strictly closer than radius to center.
func PointInSphere(p, center mgl32.Vec3, radius float32) bool {
	return DistanceSquared(p, center) < radius*radius
}

// ClampToSphere pulls p back onto the sphere of the given radius around the
// origin when it lies outside it. Points on or inside the sphere are returned unchanged.
func ClampToSphere(p mgl32.Vec3, radius float32) (mgl32.Vec3, bool) {
	if p.Len() <= radius {
		return p, false
	}
	return p.Normalize().Mul(radius), true
}

// Flatten drops the vertical component of v and renormalizes it.
// Returns false if nothing is left once z is removed.
func Flatten(v mgl32.Vec3) (mgl32.Vec3, bool) {
	v[2] = 0
	if v.Len() < 1e-6 {
		return mgl32.Vec3{}, false
	}
	return v.Normalize(), true
}

// EulerAngles returns (pitch, yaw, roll): rotations about x, y and z such that
// QuatFromEuler(EulerAngles(q)) reproduces q.
func EulerAngles(q mgl32.Quat) mgl32.Vec3 {
	w, x, y, z := float64(q.W), float64(q.V[0]), float64(q.V[1]), float64(q.V[2])

	var pitch float64
	py := 2 * (y*z + w*x)
	px := w*w - x*x - y*y + z*z
	if math.Abs(px) < 1e-7 && math.Abs(py) < 1e-7 {
		pitch = 2 * math.Atan2(x, w)
	} else {
		pitch = math.Atan2(py, px)
	}

	yaw := math.Asin(clamp(-2*(x*z-w*y), -1, 1))

	var roll float64
	ry := 2 * (x*y + w*z)
	rx := w*w + x*x - y*y - z*z
	if !(math.Abs(rx) < 1e-7 && math.Abs(ry) < 1e-7) {
		roll = math.Atan2(ry, rx)
	}

	return mgl32.Vec3{float32(pitch), float32(yaw), float32(roll)}
}

// QuatFromEuler builds the rotation Rz(e.z) * Ry(e.y) * Rx(e.x).
func QuatFromEuler(e mgl32.Vec3) mgl32.Quat {
	cx, sx := math.Cos(float64(e[0])*0.5), math.Sin(float64(e[0])*0.5)
	cy, sy := math.Cos(float64(e[1])*0.5), math.Sin(float64(e[1])*0.5)
	cz, sz := math.Cos(float64(e[2])*0.5), math.Sin(float64(e[2])*0.5)

	return mgl32.Quat{
		W: float32(cx*cy*cz + sx*sy*sz),
		V: mgl32.Vec3{
			float32(sx*cy*cz - cx*sy*sz),
			float32(cx*sy*cz + sx*cy*sz),
			float32(cx*cy*sz - sx*sy*cz),
		},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
