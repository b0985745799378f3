// Package vector lets players pick up and fling entities on Dragonfly servers.
//
// A player holding the vector item aims at an entity and right clicks to
// select it. While selected, a line of coloured particles runs from the
// entity to the point the player is looking at. Clicking again pulls the
// entity toward that point with a capped velocity impulse.
//
// # Quick Start
//
//	pl := vector.NewBuilder().
//	    ConfigPath("plugins/vector/config.yml").
//	    Operators("Steve").
//	    Init()
//	if err := pl.Enable(); err != nil {
//	    log.Fatal(err)
//	}
//	defer pl.Close()
//	cmd.Register(pl.Command())
//
//	for p := range srv.Accept() {
//	    p.Handle(pl.NewHandler())
//	}
//
// # Config
//
// Tunables live in a line oriented YAML file. The file is checked every tick
// while the feature is On, and a changed file is applied without a restart.
// Invalid values are reported and the previous value is kept.
//
//	vector-item               item used to select and pull
//	use-both-hands            right click selects, left click pulls
//	set-single-time           a pull ends the selection
//	visibility-length-double  aim distance when no block is hit
//	velocity-modifier-double  scale applied to the pull vector
//	max-velocity-double       speed cap of a pull
//
// # Concurrency
//
// Selections are shared by every world. Effects of a selection are drawn
// inside the world its entity is currently in, and a selection whose user or
// entity can no longer be found there is dropped.
package vector

import (
	"github.com/df-mc/dragonfly/server/cmd"
)

// Plugin is a wired vector feature.
type Plugin struct {
	ops        Operators
	registry   *Registry
	tunables   *TunableStore
	file       *ConfigFile
	watcher    *Watcher
	resolver   *Resolver
	impulser   *Impulser
	effect     *EffectTask
	bundle     *Bundle
	controller *Controller
	interactor *Interactor
	commands   *Commands
}

// Enable writes the default config if there is none, loads it and turns the
// feature On. It does nothing when the feature is already On.
func (pl *Plugin) Enable() error {
	if pl.controller.Status() == On {
		return nil
	}
	if err := pl.file.EnsureDefault(); err != nil {
		return err
	}
	pl.watcher.Check()
	pl.controller.Set(On)
	return nil
}

// Close turns the feature Off. Pending effects are finished before it
// returns.
func (pl *Plugin) Close() error {
	return pl.controller.Close()
}

// Command returns the /vector command for cmd.Register.
func (pl *Plugin) Command() cmd.Command {
	return NewCommand(pl.commands, pl.ops)
}

// Commands returns the host independent command surface.
func (pl *Plugin) Commands() *Commands {
	return pl.commands
}

// Controller returns the controller owning the feature status.
func (pl *Plugin) Controller() *Controller {
	return pl.controller
}

// Interactor returns the interact dispatcher, for hosts other than Dragonfly.
func (pl *Plugin) Interactor() *Interactor {
	return pl.interactor
}

// Registry returns the selections.
func (pl *Plugin) Registry() *Registry {
	return pl.registry
}

// Tunables returns the tunables in effect.
func (pl *Plugin) Tunables() Tunables {
	return pl.tunables.Load()
}
