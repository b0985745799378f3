package vector

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
)

// Handler maps the interactions of a single player to vector actions.
//
// Concurrency:
// Dragonfly calls handlers inside the transaction of the world the player is
// in, so the World passed to the Interactor is valid for the duration of the
// call.
type Handler struct {
	player.NopHandler

	plugin *Plugin
}

// NewHandler creates a player.Handler for p. Install it with p.Handle.
func (pl *Plugin) NewHandler() player.Handler {
	return &Handler{plugin: pl}
}

// Compile-time check that Handler implements player.Handler.
var _ player.Handler = (*Handler)(nil)

// interact dispatches action and cancels ctx when the vector item consumed it.
func (h *Handler) interact(ctx *player.Context, action Action) {
	p := ctx.Val()
	w := newWorld(p.Tx(), h.plugin.ops)
	u, ok := userOf(w, dfHandle{h: p.H()})
	if !ok {
		return
	}
	if h.plugin.interactor.Interact(w, u, heldItem(p), action) {
		ctx.Cancel()
	}
}

// HandleItemUse handles right clicking the air.
func (h *Handler) HandleItemUse(ctx *player.Context) {
	h.interact(ctx, ActionUse)
}

// HandleItemUseOnBlock handles right clicking a block.
func (h *Handler) HandleItemUseOnBlock(ctx *player.Context, _ cube.Pos, _ cube.Face, _ mgl64.Vec3) {
	h.interact(ctx, ActionUse)
}

// HandleItemUseOnEntity handles right clicking an entity. The clicked entity
// is not selected directly; the ray trace decides like for any other use.
func (h *Handler) HandleItemUseOnEntity(ctx *player.Context, _ world.Entity) {
	h.interact(ctx, ActionUse)
}

// HandlePunchAir handles left clicking the air.
func (h *Handler) HandlePunchAir(ctx *player.Context) {
	h.interact(ctx, ActionSwing)
}

// HandleStartBreak handles left clicking a block.
func (h *Handler) HandleStartBreak(ctx *player.Context, _ cube.Pos) {
	h.interact(ctx, ActionSwing)
}

// HandleAttackEntity handles left clicking an entity.
func (h *Handler) HandleAttackEntity(ctx *player.Context, _ world.Entity, _, _ *float64, _ *bool) {
	h.interact(ctx, ActionSwing)
}

// HandleQuit drops the selection of the player.
func (h *Handler) HandleQuit(p *player.Player) {
	h.plugin.registry.Remove(p.UUID())
}
