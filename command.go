package vector

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

const helpText = "===== Command <vector> =====\n" +
	"/vector -> Toggles vector feature\n" +
	"/vector help -> Shows vector help\n" +
	"/vector config <key|reset> [value] -> Updates config.yml\n"

// configPattern matches the first argument of the config subcommand. Any
// argument containing "conf" or "set" is accepted.
var configPattern = regexp.MustCompile(`(?i)conf|set`)

// Commands implements the /vector command independent of the host command
// system: execution and argument completion both take the raw arguments.
type Commands struct {
	controller *Controller
	file       *ConfigFile
	watcher    *Watcher
	catalog    ItemCatalog

	// dispatch runs status transitions. Hosts that execute commands inside a
	// world transaction must run them asynchronously, since stopping the
	// scheduler waits for world work of the current tick.
	dispatch func(fn func())
}

// NewCommands creates the command surface. Transitions run synchronously.
func NewCommands(controller *Controller, file *ConfigFile, watcher *Watcher, catalog ItemCatalog) *Commands {
	return &Commands{
		controller: controller,
		file:       file,
		watcher:    watcher,
		catalog:    catalog,
		dispatch:   func(fn func()) { fn() },
	}
}

// Execute runs /vector with args on behalf of s.
func (c *Commands) Execute(s Sender, args []string) {
	if len(args) == 0 {
		if s.HasPermission(PermToggle) {
			c.dispatch(func() { c.controller.Toggle() })
		}
		return
	}
	switch {
	case containsFold(args[0], "help"):
		s.Message(helpText)
	case configPattern.MatchString(args[0]) && s.HasPermission(PermConfig):
		c.config(s, args)
	default:
		unrecognized(s, "args", args[0])
	}
}

func (c *Commands) config(s Sender, args []string) {
	switch len(args) {
	case 1:
		s.Message("Required: key, value")
	case 2:
		switch key := args[1]; {
		case containsFold(key, "reset"):
			c.reset(s)
		case slices.Contains(Keys, key):
			c.describe(s, key)
		default:
			unrecognized(s, "key", key)
		}
	case 3:
		if !slices.Contains(Keys, args[1]) {
			unrecognized(s, "key", args[1])
			return
		}
		c.set(s, args[1], args[2])
	default:
		unrecognized(s, "args", fmt.Sprint(args[3:]))
	}
}

func (c *Commands) reset(s Sender) {
	if err := c.file.Reset(); err != nil {
		slog.Error("vector: cannot reset config", "path", c.file.Path(), "error", err)
		s.Message("Cannot read/write to config.yml")
		return
	}
	c.watcher.Invalidate()
	s.Message("Config reset to defaults")
}

func (c *Commands) describe(s Sender, key string) {
	d, err := c.file.Describe(key)
	if err != nil {
		slog.Error("vector: cannot read config", "path", c.file.Path(), "error", err)
		s.Message("Cannot read/write to config.yml")
		return
	}
	var b strings.Builder
	b.WriteString("\n \n \n")
	for _, line := range d.Help {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, " \nCurrent %s: %s\n", d.Key, d.Value)
	fmt.Fprintf(&b, "Last modified %s\n", humanize.Time(d.Modified))
	s.Message(b.String())
}

func (c *Commands) set(s Sender, key, value string) {
	lines, err := c.file.Set(key, value)
	switch {
	case errors.Is(err, ErrUnknownItem):
		unrecognized(s, "item", value)
		return
	case errors.Is(err, ErrInvalidValue):
		s.Message(fmt.Sprintf("Unrecognized value: '%s' (%v)", value, err))
		return
	case err != nil:
		slog.Error("vector: cannot write config", "path", c.file.Path(), "error", err)
		s.Message("Cannot read/write to config.yml")
		return
	}
	for _, line := range lines {
		s.Message(line)
	}
	c.watcher.Invalidate()
}

// Complete returns the suggestions for the last of args.
func (c *Commands) Complete(args []string) []string {
	switch len(args) {
	case 1:
		return filterPrefix([]string{"config", "help"}, args[0])
	case 2:
		if configPattern.MatchString(args[0]) {
			return filterPrefix(Keys, args[1])
		}
	case 3:
		if !configPattern.MatchString(args[0]) || !slices.Contains(Keys, args[1]) {
			return nil
		}
		switch ClassifyKey(args[1]) {
		case KindItem:
			return filterItems(c.catalog.Names(), args[2])
		case KindBool:
			return filterPrefix([]string{"true", "false"}, args[2])
		}
	}
	return nil
}

func unrecognized(s Sender, what, value string) {
	s.Message(fmt.Sprintf("Unrecognized %s: '%s'", what, value))
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// filterPrefix returns the options starting with prefix, ignoring case.
func filterPrefix(options []string, prefix string) []string {
	prefix = strings.ToLower(prefix)
	var out []string
	for _, o := range options {
		if strings.HasPrefix(strings.ToLower(o), prefix) {
			out = append(out, o)
		}
	}
	return out
}

// filterItems is filterPrefix for item names, which also match without
// their namespace.
func filterItems(names []string, prefix string) []string {
	prefix = strings.ToLower(prefix)
	var out []string
	for _, n := range names {
		short := n
		if _, after, ok := strings.Cut(n, ":"); ok {
			short = after
		}
		if strings.HasPrefix(n, prefix) || strings.HasPrefix(short, prefix) {
			out = append(out, n)
		}
	}
	return out
}
