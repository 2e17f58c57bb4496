package ingest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestEulerRoundTrip(t *testing.T) {
	cases := [][3]float64{
		{0, 0, 0},
		{0.3, -0.2, 1.1},
		{-1.2, 0.7, -2.9},
		{math.Pi / 4, math.Pi / 6, math.Pi / 3},
	}
	for _, c := range cases {
		roll, pitch, yaw := FromEuler(c[0], c[1], c[2]).Euler()
		assert.InDelta(t, c[0], roll, eps)
		assert.InDelta(t, c[1], pitch, eps)
		assert.InDelta(t, c[2], yaw, eps)
	}
}

func TestIntegrateAboutZ(t *testing.T) {
	q := Identity()
	for i := 0; i < 100; i++ {
		q = q.Integrate(0, 0, 0.5, 0.01)
	}
	roll, pitch, yaw := q.Euler()
	assert.InDelta(t, 0, roll, eps)
	assert.InDelta(t, 0, pitch, eps)
	assert.InDelta(t, 0.5, yaw, 1e-6)
	assert.InDelta(t, 1, q.Norm(), eps)
}

func TestIntegrateWithoutRotation(t *testing.T) {
	q := FromEuler(0.1, 0.2, 0.3)
	assert.Equal(t, q, q.Integrate(0, 0, 0, 0.01))
	assert.Equal(t, q, q.Integrate(1, 0, 0, 0))
}

func TestProdWithIdentity(t *testing.T) {
	q := FromEuler(0.4, -0.1, 2)
	p := q.Prod(Identity())
	assert.InDelta(t, q.W, p.W, eps)
	assert.InDelta(t, q.X, p.X, eps)
	assert.InDelta(t, q.Y, p.Y, eps)
	assert.InDelta(t, q.Z, p.Z, eps)
	assert.Equal(t, Identity(), Quaternion{}.Unit())
}

func TestAttitudeHeading(t *testing.T) {
	cases := []struct {
		yaw, heading float64
	}{
		{0, 0},
		{math.Pi / 2, 270},
		{-math.Pi / 2, 90},
		{math.Pi / 4, 315},
	}
	for _, c := range cases {
		a := AttitudeFromQuaternion(FromEuler(0, 0, c.yaw))
		assert.InDelta(t, c.heading, a.Heading, 1e-6, "yaw=%v", c.yaw)
		assert.GreaterOrEqual(t, a.Heading, 0.0)
		assert.Less(t, a.Heading, 360.0)
	}
}
