// Package pose provides the quaternion, vector and sample primitives the animation
// decoder commits and blends.
//
// All arithmetic is single precision. Products are explicitly rounded to float32
// before they are summed so the compiler cannot fuse them into FMA instructions; a
// stream decodes to the same bits on every architecture.
package pose

import (
	"math"

	"github.com/arloliu/enbaya/format"
)

// slerpLerpThreshold is the 1 - dot distance under which Slerp falls back to Lerp.
const slerpLerpThreshold = 0.08

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float32
}

// Vec3 is a translation vector.
type Vec3 struct {
	X, Y, Z float32
}

// Sample is one committed pose of a track at a point in time.
type Sample struct {
	Quat  Quat
	Trans Vec3
	Time  float32
}

// IdentityQuat returns the identity rotation {0,0,0,1}.
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// IdentitySample returns the identity rotation with zero translation at time 0.
func IdentitySample() Sample {
	return Sample{Quat: IdentityQuat()}
}

// Dot returns the four-component dot product of q and r.
func (q Quat) Dot(r Quat) float32 {
	return float32(q.X*r.X) + float32(q.Y*r.Y) + float32(q.Z*r.Z) + float32(q.W*r.W)
}

// LengthSquared returns the squared Euclidean length of q.
func (q Quat) LengthSquared() float32 {
	return q.Dot(q)
}

// Length returns the Euclidean length of q.
func (q Quat) Length() float32 {
	return float32(math.Sqrt(float64(q.LengthSquared())))
}

// Scale multiplies every component of q by s.
func (q Quat) Scale(s float32) Quat {
	return Quat{X: q.X * s, Y: q.Y * s, Z: q.Z * s, W: q.W * s}
}

// Neg returns -q, the same rotation on the opposite hemisphere.
func (q Quat) Neg() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
}

// Normalize returns q scaled to unit length. A zero quaternion normalizes to identity.
func (q Quat) Normalize() Quat {
	length := q.Length()
	if length == 0 {
		return IdentityQuat()
	}

	return q.Scale(1 / length)
}

// Lerp blends q toward r component-wise without renormalizing.
func (q Quat) Lerp(r Quat, blend float32) Quat {
	return Quat{
		X: Lerp(q.X, r.X, blend),
		Y: Lerp(q.Y, r.Y, blend),
		Z: Lerp(q.Z, r.Z, blend),
		W: Lerp(q.W, r.W, blend),
	}
}

// Slerp blends q toward r along the shortest great arc. Both inputs are normalized
// first; nearly parallel inputs fall back to Lerp.
func (q Quat) Slerp(r Quat, blend float32) Quat {
	a := q.Normalize()
	b := r.Normalize()

	dot := a.Dot(b)
	if dot < 0 {
		b = b.Neg()
		dot = -dot
	}

	if 1-dot <= slerpLerpThreshold {
		return a.Lerp(b, blend)
	}

	if dot > 1 {
		dot = 1
	}

	theta := float32(math.Acos(float64(dot)))
	if theta == 0 {
		return a
	}

	st := 1 / float32(math.Sin(float64(theta)))
	s0 := float32(math.Sin(float64((1-blend)*theta))) * st
	s1 := float32(math.Sin(float64(theta*blend))) * st

	return Quat{
		X: float32(s0*a.X) + float32(s1*b.X),
		Y: float32(s0*a.Y) + float32(s1*b.Y),
		Z: float32(s0*a.Z) + float32(s1*b.Z),
		W: float32(s0*a.W) + float32(s1*b.W),
	}.Normalize()
}

// Lerp blends v toward w component-wise.
func (v Vec3) Lerp(w Vec3, blend float32) Vec3 {
	return Vec3{
		X: Lerp(v.X, w.X, blend),
		Y: Lerp(v.Y, w.Y, blend),
		Z: Lerp(v.Z, w.Z, blend),
	}
}

// Lerp returns x*(1-blend) + y*blend.
func Lerp(x, y, blend float32) float32 {
	return float32(x*(1-blend)) + float32(y*blend)
}

// Clamp01 clamps blend into [0, 1].
func Clamp01(blend float32) float32 {
	if blend > 1 {
		return 1
	}
	if blend < 0 {
		return 0
	}

	return blend
}

// Interpolate blends sample x toward sample y.
//
// The blend factor is clamped into [0, 1]. Rotation uses quatMethod and translation
// uses transMethod; InterpNone yields y's value (step interpolation). Time is always
// lerped.
func Interpolate(x, y Sample, blend float32, quatMethod, transMethod format.InterpMethod) Sample {
	blend = Clamp01(blend)

	out := Sample{Time: Lerp(x.Time, y.Time, blend)}

	switch quatMethod {
	case format.InterpLerp:
		out.Quat = x.Quat.Lerp(y.Quat, blend)
	case format.InterpSlerp:
		out.Quat = x.Quat.Slerp(y.Quat, blend)
	default:
		out.Quat = y.Quat
	}

	switch transMethod {
	case format.InterpLerp, format.InterpSlerp:
		out.Trans = x.Trans.Lerp(y.Trans, blend)
	default:
		out.Trans = y.Trans
	}

	return out
}
