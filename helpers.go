package vector

import (
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/player"
)

// playerOf extracts the player from a command source.
// Returns false if the source is not a player, e.g. the console.
func playerOf(src cmd.Source) (*player.Player, bool) {
	p, ok := src.(*player.Player)
	return p, ok
}

// heldItem returns the namespaced identifier of the item p holds in its main
// hand, or an empty string if the hand is empty.
func heldItem(p *player.Player) string {
	main, _ := p.HeldItems()
	if main.Empty() {
		return ""
	}
	name, _ := main.Item().EncodeItem()
	return name
}

// cmdSender adapts a command source and its output to Sender.
//
// Concurrency:
// Commands are executed synchronously with the player, so Message may write
// to the output directly.
type cmdSender struct {
	src cmd.Source
	out *cmd.Output
	ops Operators
}

func (s cmdSender) Message(msg string) {
	if s.out != nil {
		s.out.Print(msg)
	}
}

func (s cmdSender) HasPermission(perm string) bool {
	if p, ok := playerOf(s.src); ok {
		return s.ops.Allows(p.Name(), perm)
	}
	return true
}
