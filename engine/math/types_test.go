package math

import "testing"

func TestExtents3DSphere(t *testing.T) {
	tests := []struct {
		name       string
		extents    Extents3D
		wantCenter Vec3
		wantRadius float32
	}{
		{
			name:       "unit cube at origin",
			extents:    Extents3D{Min: NewVec3(-1, -1, -1), Max: NewVec3(1, 1, 1)},
			wantCenter: NewVec3Zero(),
			wantRadius: ksqrt(12) * 0.5,
		},
		{
			name:       "offset box",
			extents:    Extents3D{Min: NewVec3(2, 0, 0), Max: NewVec3(4, 0, 0)},
			wantCenter: NewVec3(3, 0, 0),
			wantRadius: 1,
		},
		{
			name:       "degenerate point",
			extents:    Extents3D{Min: NewVec3(5, 5, 5), Max: NewVec3(5, 5, 5)},
			wantCenter: NewVec3(5, 5, 5),
			wantRadius: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.extents.Center(); got != tt.wantCenter {
				t.Errorf("Center() = %+v, want %+v", got, tt.wantCenter)
			}
			if got := tt.extents.Radius(); got != tt.wantRadius {
				t.Errorf("Radius() = %f, want %f", got, tt.wantRadius)
			}
		})
	}
}

func TestDistanceSquared(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 6, 3)
	if got, want := a.DistanceSquared(b), float32(25); got != want {
		t.Errorf("DistanceSquared = %f, want %f", got, want)
	}
	if got, want := a.Distance(b), float32(5); got != want {
		t.Errorf("Distance = %f, want %f", got, want)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	id := NewMat4Identity()
	var m Mat4
	for i := range m.Data {
		m.Data[i] = float32(i)
	}
	if got := m.Mul(id); got != m {
		t.Errorf("m * I = %+v, want m", got)
	}
	if got := id.Mul(m); got != m {
		t.Errorf("I * m = %+v, want m", got)
	}
}

func TestClampAndMin(t *testing.T) {
	if got := Clamp(5, 1, 3); got != 3 {
		t.Errorf("Clamp(5,1,3) = %d", got)
	}
	if got := Clamp(uint32(0), uint32(1), uint32(64)); got != 1 {
		t.Errorf("Clamp(0,1,64) = %d", got)
	}
	if got := Min(2.5, 1.5); got != 1.5 {
		t.Errorf("Min(2.5,1.5) = %f", got)
	}
}
