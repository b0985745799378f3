package vector

import (
	"image/color"
	"iter"
	"strings"

	"github.com/ErikKalkoken/go-set"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/entity"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/player/chat"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/df-mc/dragonfly/server/world/particle"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Operators grants the toggle and config permissions to a fixed set of
// player names. Every player may use the vector item. Non-player command
// sources, such as the console, hold every permission.
type Operators struct {
	names set.Set[string]
}

// NewOperators creates an Operators granting names. Names are matched
// case-insensitively.
func NewOperators(names ...string) Operators {
	lower := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			lower = append(lower, n)
		}
	}
	return Operators{names: set.Of(lower...)}
}

// Allows reports whether the player called name holds perm.
func (o Operators) Allows(name, perm string) bool {
	if perm == PermUse {
		return true
	}
	return o.names.Contains(strings.ToLower(name))
}

// dfHost implements Host on top of Dragonfly entity handles.
type dfHost struct {
	ops Operators
}

// NewDragonflyHost returns a Host running work through Dragonfly world
// transactions. Handles passed to it must come from this adapter.
func NewDragonflyHost(ops Operators) Host {
	return dfHost{ops: ops}
}

// Exec runs fn in the transaction of the world holding handle.
func (h dfHost) Exec(handle Handle, fn func(w World)) bool {
	dh, ok := handle.(dfHandle)
	if !ok {
		return false
	}
	return dh.h.ExecWorld(func(tx *world.Tx, _ world.Entity) {
		fn(newWorld(tx, h.ops))
	})
}

// dfHandle wraps a Dragonfly entity handle.
type dfHandle struct {
	h *world.EntityHandle
}

// UUID returns the UUID of the entity.
func (h dfHandle) UUID() uuid.UUID {
	return h.h.UUID()
}

// txWorld is a World backed by a single Dragonfly transaction.
type txWorld struct {
	tx  *world.Tx
	ops Operators
}

// newWorld wraps tx with the permissions of ops.
func newWorld(tx *world.Tx, ops Operators) World {
	return txWorld{tx: tx, ops: ops}
}

// Solid reports whether the block at pos has any collision box. Air, flowers
// and other passable blocks do not stop a line of sight.
func (w txWorld) Solid(pos cube.Pos) bool {
	return len(w.tx.Block(pos).Model().BBox(pos, w.tx)) > 0
}

// Entities yields every entity in the transaction, players as Users.
func (w txWorld) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for e := range w.tx.Entities() {
			if !yield(w.wrap(e)) {
				return
			}
		}
	}
}

// Entity resolves h within this world.
func (w txWorld) Entity(h Handle) (Entity, bool) {
	dh, ok := h.(dfHandle)
	if !ok {
		return nil, false
	}
	e, ok := dh.h.Entity(w.tx)
	if !ok {
		return nil, false
	}
	return w.wrap(e), true
}

// AddParticle shows a dust particle of colour at pos.
func (w txWorld) AddParticle(pos mgl64.Vec3, colour color.RGBA) {
	w.tx.AddParticle(pos, particle.Dust{Colour: colour})
}

// wrap returns a User for players and an Entity for everything else.
func (w txWorld) wrap(e world.Entity) Entity {
	if p, ok := e.(*player.Player); ok {
		return dfUser{dfEntity: dfEntity{e: p}, p: p, ops: w.ops}
	}
	return dfEntity{e: e}
}

// dfEntity adapts a Dragonfly entity.
type dfEntity struct {
	e world.Entity
}

// Handle returns the handle of the entity.
func (e dfEntity) Handle() Handle {
	return dfHandle{h: e.e.H()}
}

// Position returns the current position of the entity.
func (e dfEntity) Position() mgl64.Vec3 {
	return e.e.Position()
}

// BBox returns the bounding box of the entity in world space.
func (e dfEntity) BBox() cube.BBox {
	return e.e.H().Type().BBox(e.e).Translate(e.e.Position())
}

// SetVelocity sets the velocity of entities that have one.
func (e dfEntity) SetVelocity(v mgl64.Vec3) {
	if m, ok := e.e.(interface{ SetVelocity(mgl64.Vec3) }); ok {
		m.SetVelocity(v)
	}
}

// dfUser adapts a Dragonfly player.
type dfUser struct {
	dfEntity
	p   *player.Player
	ops Operators
}

// EyePosition returns the position of the eyes of the player.
func (u dfUser) EyePosition() mgl64.Vec3 {
	return entity.EyePosition(u.p)
}

// Direction returns the unit vector the player is looking along.
func (u dfUser) Direction() mgl64.Vec3 {
	return u.p.Rotation().Vec3()
}

// HasPermission reports whether the operators grant perm to the player.
func (u dfUser) HasPermission(perm string) bool {
	return u.ops.Allows(u.p.Name(), perm)
}

// ChatBroadcaster broadcasts through the global chat of the server.
type ChatBroadcaster struct{}

// Broadcast writes msg to every player.
func (ChatBroadcaster) Broadcast(msg string) {
	_, _ = chat.Global.WriteString(msg)
}

// DragonflyItems returns a catalog of every item registered with Dragonfly.
func DragonflyItems() *SetCatalog {
	items := world.Items()
	names := make([]string, 0, len(items))
	for _, it := range items {
		name, _ := it.EncodeItem()
		names = append(names, name)
	}
	return NewItemCatalog(names...)
}
