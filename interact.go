package vector

import (
	"log/slog"
)

// Action is the kind of interaction a user performed with the vector item.
type Action int

const (
	// ActionUse is a right click, in the air or on a block or entity.
	ActionUse Action = iota
	// ActionSwing is a left click, in the air or on a block or entity.
	ActionSwing
)

// Interactor turns item interactions into selections and impulses.
type Interactor struct {
	controller *Controller
	resolver   *Resolver
	impulser   *Impulser
	tunables   *TunableStore
}

// NewInteractor creates an interactor gated by the hook of controller.
func NewInteractor(controller *Controller, resolver *Resolver, impulser *Impulser, tunables *TunableStore) *Interactor {
	return &Interactor{
		controller: controller,
		resolver:   resolver,
		impulser:   impulser,
		tunables:   tunables,
	}
}

// Interact handles action performed by u while holding the item named held.
// It reports whether the interaction was consumed, in which case the host
// should cancel the underlying event.
//
// With one hand, use pulls the selected entity and selects a new one when
// there is nothing to pull. With both hands, use only selects and swing only
// pulls.
func (i *Interactor) Interact(w World, u User, held string, action Action) bool {
	consumed := false
	i.controller.WithHook(func() {
		tun := i.tunables.Load()
		if held == "" || NormalizeItem(held) != tun.Item || !u.HasPermission(PermUse) {
			return
		}
		consumed = true

		switch action {
		case ActionUse:
			if tun.BothHands {
				i.resolver.ResolveEntity(w, u)
				return
			}
			if !i.pull(w, u, tun) {
				i.resolver.ResolveEntity(w, u)
			}
		case ActionSwing:
			if tun.BothHands {
				i.pull(w, u, tun)
			}
		}
	})
	return consumed
}

// pull applies an impulse and reports whether a selection was handled, which
// includes selections that could not be scaled.
func (i *Interactor) pull(w World, u User, tun Tunables) bool {
	applied, err := i.impulser.Apply(w, u, tun.SingleUse)
	if err != nil {
		slog.Warn("vector: impulse skipped", "user", u.Handle().UUID(), "error", err)
		return true
	}
	return applied
}
