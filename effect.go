package vector

import (
	"image/color"
	"math"
	"math/rand/v2"
	"runtime"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

const (
	// traceStep is the spacing between two particles of a trace.
	traceStep = 0.2
	// tracePointsPerBlock is 1 / traceStep.
	tracePointsPerBlock = 5
	// maxTraceDistance bounds a trace. Both ends lie within the visibility
	// length of the same user.
	maxTraceDistance = 2 * MaxVisibilityLength
)

// TracePoints walks from `from` toward `to` in fixed steps of 0.2 and returns
// floor(distance·5) points. The walk starts one step after from and, when the
// distance is not a multiple of the step, stops short of to. Traces longer
// than twice MaxVisibilityLength are cut at that length.
func TracePoints(from, to mgl64.Vec3) []mgl64.Vec3 {
	dist := Distance(from, to)
	if !(dist > 0) {
		return nil
	}
	n := int(math.Floor(min(dist, maxTraceDistance) * tracePointsPerBlock))
	if n <= 0 {
		return nil
	}
	dir, err := Normalize(to.Sub(from))
	if err != nil {
		return nil
	}
	step := dir.Mul(traceStep)

	points := make([]mgl64.Vec3, n)
	pos := from
	for i := range points {
		pos = pos.Add(step)
		points[i] = pos
	}
	return points
}

// RandomColour returns an opaque colour with independently uniform channels.
func RandomColour() color.RGBA {
	return color.RGBA{
		R: uint8(rand.IntN(256)),
		G: uint8(rand.IntN(256)),
		B: uint8(rand.IntN(256)),
		A: 0xff,
	}
}

// EffectTask draws a particle line from every selected entity to the aim
// point of the user that selected it, and prunes selections whose user or
// entity is gone.
//
// A single run costs O(active selections × average trace length).
type EffectTask struct {
	host     Host
	registry *Registry
	tunables *TunableStore

	// colour picks the colour of each particle. Must be safe for concurrent
	// use.
	colour  func() color.RGBA
	workers int
}

// NewEffectTask creates an effect task.
func NewEffectTask(host Host, registry *Registry, tunables *TunableStore) *EffectTask {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	return &EffectTask{
		host:     host,
		registry: registry,
		tunables: tunables,
		colour:   RandomColour,
		workers:  workers,
	}
}

// Run renders one tick. Selections are processed concurrently, each in the
// world its target is currently in.
func (t *EffectTask) Run() {
	selections := t.registry.Snapshot()
	if len(selections) == 0 {
		return
	}
	tun := t.tunables.Load()

	g := new(errgroup.Group)
	g.SetLimit(t.workers)
	for _, sel := range selections {
		g.Go(func() error {
			t.render(sel, tun)
			return nil
		})
	}
	_ = g.Wait()
}

// render draws the trace of a single selection.
func (t *EffectTask) render(sel Selection, tun Tunables) {
	valid := false
	ran := t.host.Exec(sel.Target, func(w World) {
		e, ok := w.Entity(sel.Target)
		if !ok {
			return
		}
		u, ok := userOf(w, sel.User)
		if !ok {
			return
		}
		valid = true

		aim, err := AimPoint(w, u.EyePosition(), u.Direction(), tun.VisibilityLength)
		if err != nil {
			return
		}
		for _, p := range TracePoints(e.Position(), aim) {
			w.AddParticle(p, t.colour())
		}
	})
	if !ran || !valid {
		t.registry.CompareAndRemove(sel.User.UUID(), sel.Target.UUID())
	}
}
