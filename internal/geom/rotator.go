package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotator is an orientation in degrees. Roll turns about X, Pitch about Y and Yaw about Z.
type Rotator struct {
	Roll  float64 `yaml:"roll"`
	Pitch float64 `yaml:"pitch"`
	Yaw   float64 `yaml:"yaw"`
}

// Quat converts r to a quaternion. Roll is applied first, then pitch, then yaw.
func (r Rotator) Quat() Quat {
	yaw := mgl64.QuatRotate(mgl64.DegToRad(r.Yaw), Up)
	pitch := mgl64.QuatRotate(mgl64.DegToRad(r.Pitch), Right)
	roll := mgl64.QuatRotate(mgl64.DegToRad(r.Roll), Forward)
	return yaw.Mul(pitch).Mul(roll).Normalize()
}

// Normalized returns r with every component wrapped into [0,360).
func (r Rotator) Normalized() Rotator {
	return Rotator{
		Roll:  NormalizeAngle(r.Roll),
		Pitch: NormalizeAngle(r.Pitch),
		Yaw:   NormalizeAngle(r.Yaw),
	}
}

// NormalizeAngle wraps an angle in degrees into [0,360).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}
