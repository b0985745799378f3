package vector

import (
	"image/color"
	"iter"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Handle is a stable reference to a user or entity. It outlives a single
// world transaction and is what the Registry stores.
type Handle interface {
	UUID() uuid.UUID
}

// BlockSource answers block occlusion queries for ray traces.
type BlockSource interface {
	// Solid reports whether the block at pos stops a line of sight.
	Solid(pos cube.Pos) bool
}

// World is a view of one world for the duration of a single transaction.
// Values obtained from a World must not be retained after the transaction
// ends; keep the Handle instead.
type World interface {
	BlockSource

	// Entities returns every entity currently in the world, users included.
	Entities() iter.Seq[Entity]

	// Entity resolves a handle in this world. It returns false if the entity
	// was removed, unloaded or lives in another world.
	Entity(h Handle) (Entity, bool)

	// AddParticle emits a single coloured particle at pos. It never blocks.
	AddParticle(pos mgl64.Vec3, colour color.RGBA)
}

// Entity is a live entity inside a World transaction.
type Entity interface {
	Handle() Handle
	Position() mgl64.Vec3

	// BBox returns the world-space bounding box of the entity.
	BBox() cube.BBox

	// SetVelocity replaces the current velocity of the entity. Entities that
	// cannot move ignore the call.
	SetVelocity(v mgl64.Vec3)
}

// Permissible is anything that can be checked against a permission node.
type Permissible interface {
	HasPermission(perm string) bool
}

// User is an Entity that can aim: it has an eye position and a facing
// direction.
type User interface {
	Entity
	Permissible

	EyePosition() mgl64.Vec3
	Direction() mgl64.Vec3
}

// Host runs work inside the world a handle currently lives in.
type Host interface {
	// Exec runs fn in the transaction of the world h is in. It returns false
	// without calling fn if h is no longer valid.
	Exec(h Handle, fn func(w World)) bool
}

// Sender is the source of a command.
type Sender interface {
	Permissible

	Message(msg string)
}

// Broadcaster sends a message to everyone on the server.
type Broadcaster interface {
	Broadcast(msg string)
}

// Permission nodes checked by the command surface and the interact hook.
const (
	PermToggle = "command.vector.toggle"
	PermConfig = "command.vector.config"
	PermUse    = "command.vector.use"
)

// userOf resolves h in w and returns it as a User.
func userOf(w World, h Handle) (User, bool) {
	e, ok := w.Entity(h)
	if !ok {
		return nil, false
	}
	u, ok := e.(User)
	return u, ok
}
