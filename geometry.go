package vector

import (
	"errors"
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/cube/trace"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrZeroVector is returned when a direction is requested from a vector
// without length.
var ErrZeroVector = errors.New("vector: zero-length vector")

const epsilon = 1e-9

// Normalize returns v scaled to unit length. It fails with ErrZeroVector for
// zero-length or non-finite input instead of producing NaN components.
func Normalize(v mgl64.Vec3) (mgl64.Vec3, error) {
	l := v.Len()
	if l < epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return v, ErrZeroVector
	}
	return v.Mul(1 / l), nil
}

// Length returns the Euclidean length of v.
func Length(v mgl64.Vec3) float64 {
	return v.Len()
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// BlockHit describes where a ray first struck a solid block.
type BlockHit struct {
	// Pos is the struck block.
	Pos cube.Pos
	// Face is the face of Pos the ray entered through.
	Face cube.Face
	// Distance is the distance travelled along the ray.
	Distance float64
}

// AimPoint returns the centre of the empty cell just outside the struck face.
func (h BlockHit) AimPoint() mgl64.Vec3 {
	return h.Pos.Side(h.Face).Vec3Centre()
}

// RayTraceBlock walks the voxel grid from origin along dir and returns the
// first solid block within maxDistance, which is capped at
// MaxVisibilityLength. The cell containing origin is never reported: a ray
// that starts inside a block has no entry face.
func RayTraceBlock(src BlockSource, origin, dir mgl64.Vec3, maxDistance float64) (BlockHit, bool) {
	d, err := Normalize(dir)
	if err != nil || maxDistance <= 0 || math.IsNaN(maxDistance) {
		return BlockHit{}, false
	}
	maxDistance = min(maxDistance, MaxVisibilityLength)

	cell := cube.PosFromVec3(origin)
	var (
		step   [3]int
		tMax   [3]float64
		tDelta [3]float64
	)
	for i := 0; i < 3; i++ {
		switch {
		case d[i] > 0:
			step[i] = 1
			tDelta[i] = 1 / d[i]
			tMax[i] = (float64(cell[i]+1) - origin[i]) / d[i]
		case d[i] < 0:
			step[i] = -1
			tDelta[i] = -1 / d[i]
			tMax[i] = (float64(cell[i]) - origin[i]) / d[i]
		default:
			tDelta[i] = math.Inf(1)
			tMax[i] = math.Inf(1)
		}
	}

	for {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t := tMax[axis]
		if t > maxDistance {
			return BlockHit{}, false
		}
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]

		if src.Solid(cell) {
			return BlockHit{Pos: cell, Face: entryFace(axis, step[axis]), Distance: t}, true
		}
	}
}

// entryFace returns the face a ray moving along axis in direction step
// crosses when entering a block.
func entryFace(axis, step int) cube.Face {
	switch axis {
	case 0:
		if step > 0 {
			return cube.FaceWest
		}
		return cube.FaceEast
	case 1:
		if step > 0 {
			return cube.FaceDown
		}
		return cube.FaceUp
	default:
		if step > 0 {
			return cube.FaceNorth
		}
		return cube.FaceSouth
	}
}

// RayTraceBounds intersects the segment start→end with bb. It returns the
// entry point, or start itself when start already lies inside bb.
func RayTraceBounds(bb cube.BBox, start, end mgl64.Vec3) (mgl64.Vec3, bool) {
	if bb.Vec3Within(start) {
		return start, true
	}
	res, ok := trace.BBoxIntercept(bb, start, end)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return res.Position(), true
}
