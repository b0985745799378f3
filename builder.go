package vector

import (
	"context"
	"image/color"
	"time"
)

// Builder configures the plugin before initialization.
// Use NewBuilder() to create a builder and chain configuration methods.
type Builder struct {
	configPath  string
	tickRate    time.Duration
	catalog     ItemCatalog
	host        Host
	ops         Operators
	broadcaster Broadcaster
	dispatch    func(fn func())
	colour      func() color.RGBA
}

// NewBuilder creates a builder with the defaults of a Dragonfly server:
// config.yml in the working directory, 20 ticks per second, the items
// registered with Dragonfly and the global chat.
func NewBuilder() *Builder {
	return &Builder{
		configPath: "config.yml",
		tickRate:   DefaultTickRate,
	}
}

// ConfigPath sets the location of the config file.
func (b *Builder) ConfigPath(path string) *Builder {
	b.configPath = path
	return b
}

// TickRate sets the interval of the shared scheduler.
func (b *Builder) TickRate(d time.Duration) *Builder {
	b.tickRate = d
	return b
}

// Catalog sets the items accepted as the vector item.
func (b *Builder) Catalog(c ItemCatalog) *Builder {
	b.catalog = c
	return b
}

// Host replaces the Dragonfly host, e.g. with an in-memory one.
func (b *Builder) Host(h Host) *Builder {
	b.host = h
	return b
}

// Operators grants the toggle and config permissions to the players called
// names.
func (b *Builder) Operators(names ...string) *Builder {
	b.ops = NewOperators(names...)
	return b
}

// Broadcaster sets where status changes are announced.
func (b *Builder) Broadcaster(bc Broadcaster) *Builder {
	b.broadcaster = bc
	return b
}

// Dispatch sets how command-triggered status changes run. The Dragonfly host
// defaults to a new goroutine, any other host to a direct call.
func (b *Builder) Dispatch(fn func(fn func())) *Builder {
	b.dispatch = fn
	return b
}

// Colour sets the particle colour source. It must be safe for concurrent use.
func (b *Builder) Colour(fn func() color.RGBA) *Builder {
	b.colour = fn
	return b
}

// Init wires the plugin. The feature starts Off; call Plugin.Enable to load
// the config and turn it On.
func (b *Builder) Init() *Plugin {
	host, dispatch := b.host, b.dispatch
	if host == nil {
		host = NewDragonflyHost(b.ops)
		if dispatch == nil {
			dispatch = func(fn func()) { go fn() }
		}
	}
	catalog := b.catalog
	if catalog == nil {
		catalog = DragonflyItems()
	}
	broadcaster := b.broadcaster
	if broadcaster == nil {
		broadcaster = ChatBroadcaster{}
	}

	pl := &Plugin{
		ops:      b.ops,
		registry: NewRegistry(),
		tunables: NewTunableStore(DefaultTunables()),
		file:     NewConfigFile(b.configPath, catalog),
	}
	pl.watcher = NewWatcher(pl.file, pl.tunables)
	pl.resolver = NewResolver(pl.registry, pl.tunables)
	pl.impulser = NewImpulser(pl.registry, pl.tunables)
	pl.effect = NewEffectTask(host, pl.registry, pl.tunables)
	if b.colour != nil {
		pl.effect.colour = b.colour
	}

	pl.bundle = NewBundle("vector").
		Loop("config", pl.watcher, 0, Before).
		Loop("effect", pl.effect, 0, Default)

	tickRate := b.tickRate
	pl.controller = NewController(pl.registry, func() *Scheduler {
		return pl.bundle.Scheduler(tickRate)
	})
	pl.controller.Changed.AddListener(func(_ context.Context, s Status) {
		broadcaster.Broadcast("Vector " + s.String())
	}, "broadcast")

	pl.interactor = NewInteractor(pl.controller, pl.resolver, pl.impulser, pl.tunables)
	pl.commands = NewCommands(pl.controller, pl.file, pl.watcher, catalog)
	if dispatch != nil {
		pl.commands.dispatch = dispatch
	}
	return pl
}
