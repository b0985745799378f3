package vector

import (
	"image/color"
	"iter"
	"slices"
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

type fakeHandle uuid.UUID

func (h fakeHandle) UUID() uuid.UUID { return uuid.UUID(h) }

func newHandle() fakeHandle { return fakeHandle(uuid.New()) }

type emitted struct {
	pos    mgl64.Vec3
	colour color.RGBA
}

// fakeWorld is an in-memory World. It is safe for concurrent use.
type fakeWorld struct {
	mu        sync.Mutex
	solid     map[cube.Pos]bool
	entities  []Entity
	particles []emitted
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{solid: make(map[cube.Pos]bool)}
}

func (w *fakeWorld) setSolid(pos cube.Pos) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.solid[pos] = true
}

func (w *fakeWorld) Solid(pos cube.Pos) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.solid[pos]
}

func (w *fakeWorld) add(es ...Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entities = append(w.entities, es...)
}

func (w *fakeWorld) remove(h Handle) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entities = slices.DeleteFunc(w.entities, func(e Entity) bool {
		return e.Handle().UUID() == h.UUID()
	})
}

func (w *fakeWorld) Entities() iter.Seq[Entity] {
	w.mu.Lock()
	snapshot := slices.Clone(w.entities)
	w.mu.Unlock()
	return slices.Values(snapshot)
}

func (w *fakeWorld) Entity(h Handle) (Entity, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, e := range w.entities {
		if e.Handle().UUID() == h.UUID() {
			return e, true
		}
	}
	return nil, false
}

func (w *fakeWorld) AddParticle(pos mgl64.Vec3, colour color.RGBA) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.particles = append(w.particles, emitted{pos: pos, colour: colour})
}

func (w *fakeWorld) emitted() []emitted {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.particles)
}

// fakeEntity is an entity with a 1x1x1 box resting on its position.
type fakeEntity struct {
	h   fakeHandle
	pos mgl64.Vec3

	mu       sync.Mutex
	velocity mgl64.Vec3
	pushes   int
}

func newFakeEntity(pos mgl64.Vec3) *fakeEntity {
	return &fakeEntity{h: newHandle(), pos: pos}
}

func (e *fakeEntity) Handle() Handle { return e.h }

func (e *fakeEntity) Position() mgl64.Vec3 { return e.pos }

func (e *fakeEntity) BBox() cube.BBox {
	return cube.Box(-0.5, 0, -0.5, 0.5, 1, 0.5).Translate(e.pos)
}

func (e *fakeEntity) SetVelocity(v mgl64.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.velocity = v
	e.pushes++
}

func (e *fakeEntity) Velocity() (mgl64.Vec3, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.velocity, e.pushes
}

// fakeUser aims from its position along dir.
type fakeUser struct {
	*fakeEntity
	dir    mgl64.Vec3
	denied map[string]bool
}

func newFakeUser(pos, dir mgl64.Vec3) *fakeUser {
	return &fakeUser{fakeEntity: newFakeEntity(pos), dir: dir}
}

func (u *fakeUser) EyePosition() mgl64.Vec3 { return u.pos }

func (u *fakeUser) Direction() mgl64.Vec3 { return u.dir }

func (u *fakeUser) HasPermission(perm string) bool {
	return !u.denied[perm]
}

// fakeHost runs work in whichever world currently holds the handle.
type fakeHost struct {
	mu     sync.Mutex
	worlds []*fakeWorld
}

func newFakeHost(worlds ...*fakeWorld) *fakeHost {
	return &fakeHost{worlds: worlds}
}

func (h *fakeHost) Exec(handle Handle, fn func(w World)) bool {
	h.mu.Lock()
	worlds := slices.Clone(h.worlds)
	h.mu.Unlock()
	for _, w := range worlds {
		if _, ok := w.Entity(handle); ok {
			fn(w)
			return true
		}
	}
	return false
}

// fakeSender records every message it receives.
type fakeSender struct {
	mu       sync.Mutex
	denied   map[string]bool
	messages []string
}

func (s *fakeSender) HasPermission(perm string) bool {
	return !s.denied[perm]
}

func (s *fakeSender) Message(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

func (s *fakeSender) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

func (s *fakeSender) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[len(s.messages)-1]
}

// fakeBroadcaster records broadcasts.
type fakeBroadcaster struct {
	mu   sync.Mutex
	msgs []string
}

func (b *fakeBroadcaster) Broadcast(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, msg)
}

func (b *fakeBroadcaster) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.msgs)
}

func testCatalog() *SetCatalog {
	return NewItemCatalog("minecraft:blaze_rod", "minecraft:stick", "minecraft:stone")
}
