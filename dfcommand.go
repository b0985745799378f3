package vector

import (
	"slices"
	"sync"

	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/world"
)

// NewCommand returns the /vector Dragonfly command. Every overload delegates
// to commands, so the in-game behaviour matches Commands.Execute.
func NewCommand(commands *Commands, ops Operators) cmd.Command {
	b := base{commands: commands, ops: ops}
	return cmd.New("vector", "Selects and pulls entities with the vector item.", nil,
		toggleRunnable{base: b},
		helpRunnable{base: b},
		configItemRunnable{base: b},
		configBoolRunnable{base: b},
		configRunnable{base: b},
		configUsageRunnable{base: b},
	)
}

// base is embedded by every overload of /vector.
type base struct {
	commands *Commands
	ops      Operators
}

func (b base) execute(src cmd.Source, o *cmd.Output, args ...string) {
	b.commands.Execute(cmdSender{src: src, out: o, ops: b.ops}, args)
}

func (b base) allows(src cmd.Source, perm string) bool {
	return cmdSender{src: src, ops: b.ops}.HasPermission(perm)
}

type toggleRunnable struct {
	base
}

func (r toggleRunnable) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	r.execute(src, o)
}

func (r toggleRunnable) Allow(src cmd.Source) bool {
	return r.allows(src, PermToggle)
}

type helpRunnable struct {
	base
	Help cmd.SubCommand `cmd:"help"`
}

func (r helpRunnable) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	r.execute(src, o, "help")
}

type configItemRunnable struct {
	base
	Config cmd.SubCommand `cmd:"config"`
	Key    itemKey        `cmd:"key"`
	Item   itemName       `cmd:"item"`
}

func (r configItemRunnable) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	r.execute(src, o, "config", string(r.Key), string(r.Item))
}

func (r configItemRunnable) Allow(src cmd.Source) bool {
	return r.allows(src, PermConfig)
}

type configBoolRunnable struct {
	base
	Config cmd.SubCommand `cmd:"config"`
	Key    boolKey        `cmd:"key"`
	Value  boolValue      `cmd:"value"`
}

func (r configBoolRunnable) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	r.execute(src, o, "config", string(r.Key), string(r.Value))
}

func (r configBoolRunnable) Allow(src cmd.Source) bool {
	return r.allows(src, PermConfig)
}

type configRunnable struct {
	base
	Config cmd.SubCommand       `cmd:"config"`
	Key    configKey            `cmd:"key"`
	Value  cmd.Optional[string] `cmd:"value"`
}

func (r configRunnable) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	if v, ok := r.Value.Load(); ok {
		r.execute(src, o, "config", string(r.Key), v)
		return
	}
	r.execute(src, o, "config", string(r.Key))
}

func (r configRunnable) Allow(src cmd.Source) bool {
	return r.allows(src, PermConfig)
}

type configUsageRunnable struct {
	base
	Config cmd.SubCommand `cmd:"config"`
}

func (r configUsageRunnable) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	r.execute(src, o, "config")
}

func (r configUsageRunnable) Allow(src cmd.Source) bool {
	return r.allows(src, PermConfig)
}

// configKey is any config key, or reset.
type configKey string

func (configKey) Type() string { return "VectorConfigKey" }

func (configKey) Options(cmd.Source) []string {
	return append(slices.Clone(Keys), "reset")
}

// itemKey is a config key holding an item.
type itemKey string

func (itemKey) Type() string { return "VectorItemKey" }

func (itemKey) Options(cmd.Source) []string {
	return keysOfKind(KindItem)
}

// boolKey is a config key holding a boolean.
type boolKey string

func (boolKey) Type() string { return "VectorBoolKey" }

func (boolKey) Options(cmd.Source) []string {
	return keysOfKind(KindBool)
}

type boolValue string

func (boolValue) Type() string { return "VectorBool" }

func (boolValue) Options(cmd.Source) []string {
	return []string{"true", "false"}
}

// itemName is any item registered with Dragonfly.
type itemName string

func (itemName) Type() string { return "VectorItem" }

func (itemName) Options(cmd.Source) []string {
	return itemNames()
}

// itemNames lists the registered items once. Items are registered during
// package initialisation, so the list does not change afterwards.
var itemNames = sync.OnceValue(func() []string {
	return DragonflyItems().Names()
})

func keysOfKind(kind KeyKind) []string {
	var out []string
	for _, k := range Keys {
		if ClassifyKey(k) == kind {
			out = append(out, k)
		}
	}
	return out
}
