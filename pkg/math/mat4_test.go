package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformVec3(t *testing.T) {
	got := Translate(10, 20, 30).TransformVec3(Vec3{1, 2, 3})
	if want := (Vec3{11, 22, 33}); got != want {
		t.Errorf("translate: got %v, want %v", got, want)
	}

	got = Scale(2, 2, 2).TransformVec3(Vec3{1, 2, 3})
	if want := (Vec3{2, 4, 6}); got != want {
		t.Errorf("scale: got %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{0, 0, 0}, Vec3{0, 1, 0})

	// The eye maps to the view-space origin.
	p := m.TransformVec3(eye)
	if abs(p.X) > 1e-5 || abs(p.Y) > 1e-5 || abs(p.Z) > 1e-5 {
		t.Errorf("LookAt(eye) = %v, want origin", p)
	}

	// The target lies straight ahead on -Z.
	c := m.TransformVec3(Vec3{})
	if abs(c.X) > 1e-5 || abs(c.Y) > 1e-5 || abs(c.Z+5) > 1e-5 {
		t.Errorf("LookAt(center) = %v, want (0, 0, -5)", c)
	}
}

func TestWithoutTranslation(t *testing.T) {
	m := LookAt(Vec3{3, 4, 5}, Vec3{0, 0, 0}, Vec3{0, 1, 0}).WithoutTranslation()
	if m[12] != 0 || m[13] != 0 || m[14] != 0 {
		t.Errorf("translation not cleared: %v", m[12:15])
	}
	if m[15] != 1 {
		t.Errorf("[15] = %f, want 1", m[15])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
