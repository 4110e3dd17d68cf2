package camera

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinFOV   = 1
	MaxFOV   = 90
	MaxPitch = 89
)

// Direction is a movement key.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// Camera is a first-person fly camera. Angles are in degrees.
type Camera struct {
	Pos   mgl32.Vec3
	Front mgl32.Vec3
	Up    mgl32.Vec3

	Yaw   float32
	Pitch float32
	FOV   float32

	Speed       float32
	BoostSpeed  float32
	Sensitivity float32
	Near, Far   float32
}

// New returns a camera at pos looking down -Z.
func New(pos mgl32.Vec3) *Camera {
	c := &Camera{
		Pos:         pos,
		Up:          mgl32.Vec3{0, 1, 0},
		Yaw:         -90,
		FOV:         45,
		Speed:       5,
		BoostSpeed:  15,
		Sensitivity: 0.1,
		Near:        0.1,
		Far:         100,
	}
	c.updateFront()
	return c
}

// Move flies along the view direction (or strafes) for dt seconds.
func (c *Camera) Move(d Direction, dt float32, boost bool) {
	speed := c.Speed
	if boost {
		speed = c.BoostSpeed
	}
	step := speed * dt
	right := c.Front.Cross(c.Up).Normalize()

	switch d {
	case Forward:
		c.Pos = c.Pos.Add(c.Front.Mul(step))
	case Backward:
		c.Pos = c.Pos.Sub(c.Front.Mul(step))
	case Left:
		c.Pos = c.Pos.Sub(right.Mul(step))
	case Right:
		c.Pos = c.Pos.Add(right.Mul(step))
	}
}

// Look turns the camera by a mouse offset in pixels. dy is positive when
// the mouse moves up.
func (c *Camera) Look(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	c.updateFront()
}

// Zoom narrows the field of view by the scroll amount.
func (c *Camera) Zoom(dy float32) {
	c.FOV = mgl32.Clamp(c.FOV-dy, MinFOV, MaxFOV)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Pos, c.Pos.Add(c.Front), c.Up)
}

func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

func (c *Camera) updateFront() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	c.Front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
}

func (c *Camera) String() string {
	return fmt.Sprintf("P: (%.2f, %.2f, %.2f)\nYaw: %.1f Pitch: %.1f\nFOV: %.1f", c.Pos[0], c.Pos[1], c.Pos[2], c.Yaw, c.Pitch, c.FOV)
}
