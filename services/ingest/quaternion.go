package ingest

import "math"

// Quaternion is a rotation W + Xi + Yj + Zk.
type Quaternion struct {
	W, X, Y, Z float64
}

func Identity() Quaternion { return Quaternion{W: 1} }

// Prod is the Hamilton product q*p.
func (q Quaternion) Prod(p Quaternion) Quaternion {
	return Quaternion{
		W: q.W*p.W - q.X*p.X - q.Y*p.Y - q.Z*p.Z,
		X: q.W*p.X + q.X*p.W + q.Y*p.Z - q.Z*p.Y,
		Y: q.W*p.Y - q.X*p.Z + q.Y*p.W + q.Z*p.X,
		Z: q.W*p.Z + q.X*p.Y - q.Y*p.X + q.Z*p.W,
	}
}

func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

func (q Quaternion) Unit() Quaternion {
	n := q.Norm()
	if n == 0 {
		return Identity()
	}
	return Quaternion{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// Integrate rotates q by body rates (rad/s) over dt seconds.
func (q Quaternion) Integrate(wx, wy, wz, dt float64) Quaternion {
	rate := math.Sqrt(wx*wx + wy*wy + wz*wz)
	if rate == 0 || dt <= 0 {
		return q
	}
	half := rate * dt / 2
	s := math.Sin(half) / rate
	dq := Quaternion{W: math.Cos(half), X: wx * s, Y: wy * s, Z: wz * s}
	return q.Prod(dq).Unit()
}

// FromEuler builds the rotation for Tait-Bryan angles applied yaw, pitch,
// then roll.
func FromEuler(roll, pitch, yaw float64) Quaternion {
	cr, sr := math.Cos(roll/2), math.Sin(roll/2)
	cp, sp := math.Cos(pitch/2), math.Sin(pitch/2)
	cy, sy := math.Cos(yaw/2), math.Sin(yaw/2)
	return Quaternion{
		W: cr*cp*cy + sr*sp*sy,
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
	}
}

// Euler returns roll, pitch and yaw in radians. Pitch is clamped at ±π/2.
func (q Quaternion) Euler() (roll, pitch, yaw float64) {
	q = q.Unit()
	roll = math.Atan2(2*(q.W*q.X+q.Y*q.Z), 1-2*(q.X*q.X+q.Y*q.Y))
	sp := 2 * (q.W*q.Y - q.Z*q.X)
	if sp > 1 {
		sp = 1
	} else if sp < -1 {
		sp = -1
	}
	pitch = math.Asin(sp)
	yaw = math.Atan2(2*(q.W*q.Z+q.X*q.Y), 1-2*(q.Y*q.Y+q.Z*q.Z))
	return roll, pitch, yaw
}
