package combat

import (
	"log/slog"

	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/entropy"
	"github.com/talgya/warmarch/internal/world"
)

// ResolveAICascade repeatedly detects and resolves battles where neither
// side is human-controlled and the attacker is not pinned by a siege, until
// none remain or the iteration cap is hit. AI fronts fully settle within a
// turn; human players never adjudicate battles they are not party to.
func ResolveAICascade(w *world.World, tun *config.Tunables, rng *entropy.Source) []*Result {
	var results []*Result
	for i := 0; i < tun.CascadeCap; i++ {
		cs := nextAIBattle(w, tun)
		if cs == nil {
			break
		}
		res := Resolve(w, cs, rng)
		results = append(results, res)
		slog.Debug("cascade battle resolved",
			"at", cs.At.String(),
			"attacker", cs.Attacker,
			"defender", cs.Defender,
			"attacker_won", res.AttackerWon,
		)
	}
	return results
}

// nextAIBattle re-detects and returns the first AI-vs-AI battle, or nil.
// Re-detection after every resolution keeps the queue consistent with
// retreats and captures caused by the previous battle.
func nextAIBattle(w *world.World, tun *config.Tunables) *CombatState {
	for _, cs := range DetectBattles(w, tun) {
		if cs.AttackerSieging {
			continue
		}
		if isHuman(w, cs.Attacker) || isHuman(w, cs.Defender) {
			continue
		}
		return cs
	}
	return nil
}

// isHuman reports whether a faction is human-controlled. Unknown factions,
// including the neutral sentinel, are not.
func isHuman(w *world.World, f world.FactionID) bool {
	fac, ok := w.Faction(f)
	return ok && fac.Human
}
