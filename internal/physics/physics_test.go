package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// near compares vectors with an absolute tolerance.
func near(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

func nearQuat(a, b mgl32.Quat, eps float32) bool {
	return near(a.V, b.V, eps) && math.Abs(float64(a.W-b.W)) <= float64(eps)
}

func TestDistance(t *testing.T) {
	d := Distance(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 6, 3})
	if d != 5 {
		t.Fatalf("distance = %v, want 5", d)
	}
	if ds := DistanceSquared(mgl32.Vec3{}, mgl32.Vec3{0, 3, 4}); ds != 25 {
		t.Fatalf("distance squared = %v, want 25", ds)
	}
}

func TestPointInSphereIsStrict(t *testing.T) {
	if PointInSphere(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, 1) {
		t.Fatal("point on the surface should not be inside")
	}
	if !PointInSphere(mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{}, 1) {
		t.Fatal("point at half radius should be inside")
	}
}

func TestClampToSphere(t *testing.T) {
	p, clamped := ClampToSphere(mgl32.Vec3{3, 4, 0}, 10)
	if clamped || p != (mgl32.Vec3{3, 4, 0}) {
		t.Fatalf("inside point changed: %v %v", p, clamped)
	}

	p, clamped = ClampToSphere(mgl32.Vec3{30, 40, 0}, 10)
	if !clamped {
		t.Fatal("outside point not clamped")
	}
	if math.Abs(float64(p.Len()-10)) > 1e-4 {
		t.Fatalf("clamped length = %v, want 10", p.Len())
	}
	if math.Abs(float64(p[0]-6)) > 1e-4 || math.Abs(float64(p[1]-8)) > 1e-4 {
		t.Fatalf("clamped point = %v, want direction preserved", p)
	}
}

func TestFlatten(t *testing.T) {
	v, ok := Flatten(mgl32.Vec3{0, 2, 5})
	if !ok || v != (mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("flatten = %v %v, want (0,1,0)", v, ok)
	}
	if _, ok := Flatten(mgl32.Vec3{0, 0, -1}); ok {
		t.Fatal("vertical vector should not flatten")
	}
}

func TestEulerRoundTrip(t *testing.T) {
	angles := []mgl32.Vec3{
		{0, 0, 0},
		{math.Pi / 2, 0, 0},
		{0.3, 0, 1.2},
		{1.1, 0.2, -2.5},
	}
	for _, e := range angles {
		q := QuatFromEuler(e)
		back := QuatFromEuler(EulerAngles(q))
		if !nearQuat(q, back, 1e-4) && !nearQuat(q, back.Scale(-1), 1e-4) {
			t.Fatalf("round trip of %v: %v != %v", e, back, q)
		}
	}
}

func TestQuatFromEulerMatchesAxisRotation(t *testing.T) {
	q := QuatFromEuler(mgl32.Vec3{math.Pi / 2, 0, 0})
	want := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{1, 0, 0})
	if !nearQuat(q, want, 1e-5) {
		t.Fatalf("q = %v, want %v", q, want)
	}
	// Camera looks down -Z locally; pitched up 90 degrees it looks along +Y.
	fwd := q.Rotate(mgl32.Vec3{0, 0, -1})
	if !near(fwd, mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Fatalf("forward = %v, want (0,1,0)", fwd)
	}
}
