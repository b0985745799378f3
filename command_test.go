package vector

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commandFixture struct {
	commands   *Commands
	controller *Controller
	file       *ConfigFile
	watcher    *Watcher
	store      *TunableStore
}

func newCommandFixture(t *testing.T) *commandFixture {
	t.Helper()
	file := newTestConfig(t)
	store := NewTunableStore(DefaultTunables())
	watcher := NewWatcher(file, store)
	watcher.Check()
	controller := NewController(NewRegistry(), func() *Scheduler { return NewScheduler(time.Hour) })
	t.Cleanup(func() { controller.Close() })
	return &commandFixture{
		commands:   NewCommands(controller, file, watcher, testCatalog()),
		controller: controller,
		file:       file,
		watcher:    watcher,
		store:      store,
	}
}

func TestCommandsExecute(t *testing.T) {
	t.Run("should toggle without arguments", func(t *testing.T) {
		f := newCommandFixture(t)
		s := &fakeSender{}
		f.commands.Execute(s, nil)
		assert.Equal(t, On, f.controller.Status())
		f.commands.Execute(s, nil)
		assert.Equal(t, Off, f.controller.Status())
	})
	t.Run("should not toggle without permission", func(t *testing.T) {
		f := newCommandFixture(t)
		s := &fakeSender{denied: map[string]bool{PermToggle: true}}
		f.commands.Execute(s, nil)
		assert.Equal(t, Off, f.controller.Status())
		assert.Empty(t, s.Messages())
	})
	t.Run("should dispatch toggle", func(t *testing.T) {
		f := newCommandFixture(t)
		var queued []func()
		f.commands.dispatch = func(fn func()) { queued = append(queued, fn) }
		f.commands.Execute(&fakeSender{}, nil)
		assert.Equal(t, Off, f.controller.Status())
		require.Len(t, queued, 1)
		queued[0]()
		assert.Equal(t, On, f.controller.Status())
	})
	t.Run("should show help", func(t *testing.T) {
		f := newCommandFixture(t)
		s := &fakeSender{}
		f.commands.Execute(s, []string{"HELP"})
		assert.Equal(t, helpText, s.Last())
	})
	t.Run("should require key", func(t *testing.T) {
		f := newCommandFixture(t)
		s := &fakeSender{}
		f.commands.Execute(s, []string{"config"})
		assert.Equal(t, "Required: key, value", s.Last())
	})
	t.Run("should accept set as config alias", func(t *testing.T) {
		f := newCommandFixture(t)
		s := &fakeSender{}
		f.commands.Execute(s, []string{"set"})
		assert.Equal(t, "Required: key, value", s.Last())
	})
	t.Run("should describe key", func(t *testing.T) {
		f := newCommandFixture(t)
		s := &fakeSender{}
		f.commands.Execute(s, []string{"config", KeyMaxVelocity})
		assert.Contains(t, s.Last(), "Upper bound of the resulting velocity, in blocks per tick.")
		assert.Contains(t, s.Last(), "Current max-velocity-double: 5\n")
		assert.Contains(t, s.Last(), "Last modified")
	})
	t.Run("should set value and reload", func(t *testing.T) {
		f := newCommandFixture(t)
		s := &fakeSender{}
		f.commands.Execute(s, []string{"config", KeyMaxVelocity, "2.5"})
		assert.Equal(t, []string{"max-velocity-double: 2.5"}, s.Messages())
		assert.True(t, f.watcher.Check())
		assert.Equal(t, 2.5, f.store.Load().MaxVelocity)
	})
	t.Run("should reset config", func(t *testing.T) {
		f := newCommandFixture(t)
		s := &fakeSender{}
		f.commands.Execute(s, []string{"config", KeyBothHands, "true"})
		f.watcher.Check()
		require.True(t, f.store.Load().BothHands)

		f.commands.Execute(s, []string{"config", "reset"})
		assert.Equal(t, "Config reset to defaults", s.Last())
		data, err := os.ReadFile(f.file.Path())
		require.NoError(t, err)
		assert.Equal(t, defaultConfig, data)
		assert.True(t, f.watcher.Check())
		assert.False(t, f.store.Load().BothHands)
	})
	t.Run("should report bad input", func(t *testing.T) {
		cases := []struct {
			name string
			args []string
			want string
		}{
			{"unknown subcommand", []string{"fly"}, "Unrecognized args: 'fly'"},
			{"unknown key", []string{"config", "speed"}, "Unrecognized key: 'speed'"},
			{"unknown key with value", []string{"config", "speed", "1"}, "Unrecognized key: 'speed'"},
			{"unknown item", []string{"config", KeyItem, "dirt"}, "Unrecognized item: 'dirt'"},
			{"too many args", []string{"config", KeyItem, "stick", "x"}, "Unrecognized args: '[x]'"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newCommandFixture(t)
				s := &fakeSender{}
				f.commands.Execute(s, tc.args)
				assert.Equal(t, tc.want, s.Last())
			})
		}
	})
	t.Run("should report invalid value", func(t *testing.T) {
		f := newCommandFixture(t)
		s := &fakeSender{}
		f.commands.Execute(s, []string{"config", KeyVelocityModifier, "0"})
		assert.Contains(t, s.Last(), "Unrecognized value: '0'")
		assert.Contains(t, s.Last(), "greater than 0")
		assert.False(t, f.watcher.Check())
	})
	t.Run("should hide config without permission", func(t *testing.T) {
		f := newCommandFixture(t)
		s := &fakeSender{denied: map[string]bool{PermConfig: true}}
		f.commands.Execute(s, []string{"config", KeyBothHands, "true"})
		assert.Equal(t, "Unrecognized args: 'config'", s.Last())
		assert.False(t, f.watcher.Check())
	})
}

func TestCommandsComplete(t *testing.T) {
	f := newCommandFixture(t)
	cases := []struct {
		name string
		args []string
		want []string
	}{
		{"subcommands", []string{""}, []string{"config", "help"}},
		{"subcommand prefix", []string{"C"}, []string{"config"}},
		{"keys", []string{"config", "V"}, []string{KeyItem, KeyVisibilityLength, KeyVelocityModifier}},
		{"items", []string{"config", KeyItem, "st"}, []string{"minecraft:stick", "minecraft:stone"}},
		{"namespaced items", []string{"config", KeyItem, "minecraft:b"}, []string{"minecraft:blaze_rod"}},
		{"booleans", []string{"config", KeyBothHands, "T"}, []string{"true"}},
		{"numbers", []string{"config", KeyMaxVelocity, ""}, nil},
		{"unknown key", []string{"config", "speed", ""}, nil},
		{"help", []string{"help", ""}, nil},
		{"too many", []string{"config", KeyItem, "stick", ""}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, f.commands.Complete(tc.args))
		})
	}
}
