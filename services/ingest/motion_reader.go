package ingest

import (
	"context"
	"math"
	"math/rand"
	"time"

	"sensor-app/models"
)

// VectorReader simulates one of the three-axis motion streams
// (acceleration, gravity, gyroscope, magnetometer).
type VectorReader struct {
	reader
	kind models.SensorKind
	step float64
}

func NewVectorReader(kind models.SensorKind, simulate bool) *VectorReader {
	return &VectorReader{
		reader: reader{name: kind.String(), sim: simulate},
		kind:   kind,
	}
}

func (r *VectorReader) Run(ctx context.Context, interval time.Duration, deliver func(models.Vector)) error {
	return tick(ctx, &r.reader, interval, r.read, deliver)
}

func (r *VectorReader) read() models.Vector {
	step := r.step
	r.step += 0.01

	switch r.kind {
	case models.SensorAcceleration:
		// user acceleration, g
		return models.Vector{
			X: 0.02*math.Sin(step) + rand.Float64()*0.005,
			Y: 0.01*math.Cos(step) + rand.Float64()*0.005,
			Z: rand.Float64() * 0.005,
		}
	case models.SensorGravity:
		x := 0.1 * math.Sin(step)
		y := 0.1 * math.Cos(step)
		return models.Vector{X: x, Y: y, Z: -math.Sqrt(1 - x*x - y*y)}
	case models.SensorGyroscope:
		// rad/s
		return models.Vector{
			X: 0.001*math.Sin(step*2) + rand.Float64()*0.0005,
			Y: 0.001*math.Cos(step*2) + rand.Float64()*0.0005,
			Z: 0.0005 + rand.Float64()*0.0002,
		}
	case models.SensorMagnetometer:
		// µT
		return models.Vector{
			X: 25.0 + rand.Float64()*0.5,
			Y: -10.0 + rand.Float64()*0.5,
			Z: 45.0 + rand.Float64()*0.5,
		}
	}
	return models.Vector{}
}

// AttitudeReader integrates a slowly varying body rate into an orientation
// quaternion and reports it as Euler angles.
type AttitudeReader struct {
	reader
	q    Quaternion
	step float64
}

func NewAttitudeReader(simulate bool) *AttitudeReader {
	return &AttitudeReader{
		reader: reader{name: models.SensorAttitude.String(), sim: simulate},
		q:      Identity(),
	}
}

func (r *AttitudeReader) Run(ctx context.Context, interval time.Duration, deliver func(models.Attitude)) error {
	dt := interval.Seconds()
	return tick(ctx, &r.reader, interval, func() models.Attitude { return r.read(dt) }, deliver)
}

func (r *AttitudeReader) read(dt float64) models.Attitude {
	r.step += dt
	wx := 0.2 * math.Sin(r.step*0.5)
	wy := 0.1 * math.Cos(r.step*0.3)
	wz := 0.05
	r.q = r.q.Integrate(wx, wy, wz, dt)
	return AttitudeFromQuaternion(r.q)
}

// AttitudeFromQuaternion converts an orientation to roll/pitch/yaw and a
// compass heading in [0, 360).
func AttitudeFromQuaternion(q Quaternion) models.Attitude {
	roll, pitch, yaw := q.Euler()
	heading := math.Mod(360-yaw*180/math.Pi, 360)
	if heading < 0 {
		heading += 360
	}
	return models.Attitude{Roll: roll, Pitch: pitch, Yaw: yaw, Heading: heading}
}
