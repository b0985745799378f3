package vector

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracePoints(t *testing.T) {
	t.Run("should step by 0.2 toward target", func(t *testing.T) {
		points := TracePoints(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{5, 0, 0})
		require.Len(t, points, 25)
		for i, p := range points {
			assert.InDelta(t, 0.2*float64(i+1), p[0], 1e-9)
			assert.Equal(t, 0.0, p[1])
			assert.Equal(t, 0.0, p[2])
		}
	})
	t.Run("should floor partial steps", func(t *testing.T) {
		points := TracePoints(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1.1})
		assert.Len(t, points, 5)
	})
	t.Run("should cut long traces", func(t *testing.T) {
		points := TracePoints(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1e15, 0, 0})
		require.Len(t, points, 2*MaxVisibilityLength*5)
		assert.InDelta(t, 2*MaxVisibilityLength, points[len(points)-1][0], 1e-6)
	})
	t.Run("should return nothing for non-finite distance", func(t *testing.T) {
		assert.Empty(t, TracePoints(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{math.Inf(1), 0, 0}))
		assert.Empty(t, TracePoints(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{math.NaN(), 0, 0}))
	})
	t.Run("should return nothing for coincident points", func(t *testing.T) {
		assert.Empty(t, TracePoints(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3}))
	})
}

func TestRandomColour(t *testing.T) {
	for range 100 {
		c := RandomColour()
		assert.Equal(t, uint8(0xff), c.A)
	}
}

func newTestEffect(host Host, registry *Registry, visibility float64) *EffectTask {
	tunables := NewTunableStore(Tunables{VisibilityLength: visibility, VelocityModifier: 1, MaxVelocity: 1})
	task := NewEffectTask(host, registry, tunables)
	task.colour = func() color.RGBA { return color.RGBA{R: 1, G: 2, B: 3, A: 0xff} }
	return task
}

func TestEffectTask(t *testing.T) {
	t.Run("should draw trace from entity to aim point", func(t *testing.T) {
		w := newFakeWorld()
		u := newFakeUser(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0})
		e := newFakeEntity(mgl64.Vec3{0, 0, 0})
		w.add(u, e)
		registry := NewRegistry()
		registry.Put(u.Handle(), e.Handle())

		newTestEffect(newFakeHost(w), registry, 5).Run()

		particles := w.emitted()
		require.Len(t, particles, 25)
		for i, p := range particles {
			assert.InDelta(t, 0.2*float64(i+1), p.pos[0], 1e-9)
			assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 0xff}, p.colour)
		}
		assert.Equal(t, 1, registry.Len())
	})
	t.Run("should prune selection of removed entity", func(t *testing.T) {
		w := newFakeWorld()
		u := newFakeUser(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0})
		e := newFakeEntity(mgl64.Vec3{3, 0, 0})
		w.add(u, e)
		registry := NewRegistry()
		registry.Put(u.Handle(), e.Handle())
		w.remove(e.Handle())

		newTestEffect(newFakeHost(w), registry, 5).Run()

		assert.Empty(t, w.emitted())
		assert.Equal(t, 0, registry.Len())
	})
	t.Run("should prune selection of departed user", func(t *testing.T) {
		w := newFakeWorld()
		u := newFakeUser(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0})
		e := newFakeEntity(mgl64.Vec3{3, 0, 0})
		w.add(e)
		registry := NewRegistry()
		registry.Put(u.Handle(), e.Handle())

		newTestEffect(newFakeHost(w), registry, 5).Run()

		assert.Empty(t, w.emitted())
		assert.Equal(t, 0, registry.Len())
	})
	t.Run("should draw in world of entity", func(t *testing.T) {
		overworld, nether := newFakeWorld(), newFakeWorld()
		u := newFakeUser(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0})
		e := newFakeEntity(mgl64.Vec3{0, 0, 0})
		nether.add(u, e)
		registry := NewRegistry()
		registry.Put(u.Handle(), e.Handle())

		newTestEffect(newFakeHost(overworld, nether), registry, 1).Run()

		assert.Empty(t, overworld.emitted())
		assert.Len(t, nether.emitted(), 5)
	})
	t.Run("should draw every selection", func(t *testing.T) {
		w := newFakeWorld()
		registry := NewRegistry()
		for range 10 {
			u := newFakeUser(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})
			e := newFakeEntity(mgl64.Vec3{0, 0, 0})
			w.add(u, e)
			registry.Put(u.Handle(), e.Handle())
		}

		newTestEffect(newFakeHost(w), registry, 2).Run()

		assert.Len(t, w.emitted(), 100)
		assert.Equal(t, 10, registry.Len())
	})
	t.Run("should do nothing without selections", func(t *testing.T) {
		w := newFakeWorld()
		newTestEffect(newFakeHost(w), NewRegistry(), 5).Run()
		assert.Empty(t, w.emitted())
	})
}
