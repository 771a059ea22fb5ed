package commandgiver

import (
	"fmt"

	"arenahost/internal/actor"
	"arenahost/internal/coordflip"
	"arenahost/internal/pathing"
	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
	"arenahost/internal/worldstate"
)

// Process validates player's turn submission against st and dispatches
// every surviving intent to st's mutation primitives. It returns every
// validation error raised along the way (for logging/replay); a non-empty
// result does not mean the whole turn was rejected — only the offending
// actors were skipped, except for a cardinality mismatch, which aborts
// the rest of this player's turn entirely.
func Process(st *worldstate.State, player actor.PlayerID, sub Submission) []ValidationError {
	flip := player == actor.Player2
	mapSize := st.Map().Size()

	ownBots, enemyBots := partitionBots(st, player)
	ownTowers, enemyTowers := partitionTowers(st, player)

	var errs []ValidationError

	if len(sub.OwnBots) != len(ownBots) {
		errs = append(errs, ValidationError{Code: NumberOfBotsMismatch, Message: fmt.Sprintf("own bots: got %d, want %d", len(sub.OwnBots), len(ownBots))})
		return errs
	}
	if len(sub.EnemyBots) != len(enemyBots) {
		errs = append(errs, ValidationError{Code: NumberOfBotsMismatch, Message: fmt.Sprintf("enemy bots: got %d, want %d", len(sub.EnemyBots), len(enemyBots))})
		return errs
	}
	if len(sub.OwnTowers) != len(ownTowers) {
		errs = append(errs, ValidationError{Code: NumberOfTowersMismatch, Message: fmt.Sprintf("own towers: got %d, want %d", len(sub.OwnTowers), len(ownTowers))})
		return errs
	}
	if len(sub.EnemyTowers) != len(enemyTowers) {
		errs = append(errs, ValidationError{Code: NumberOfTowersMismatch, Message: fmt.Sprintf("enemy towers: got %d, want %d", len(sub.EnemyTowers), len(enemyTowers))})
		return errs
	}

	for _, bi := range sub.EnemyBots {
		if err := checkBotProperties(enemyBots, bi, mapSize, flip); err != nil {
			errs = append(errs, *err)
		}
	}
	for _, ti := range sub.EnemyTowers {
		if err := checkTowerProperties(enemyTowers, ti, mapSize, flip); err != nil {
			errs = append(errs, *err)
		}
	}

	towerCount := len(ownTowers)
	for _, bi := range sub.OwnBots {
		if err := checkBotProperties(ownBots, bi, mapSize, flip); err != nil {
			errs = append(errs, *err)
			continue
		}
		if err := dispatchBotIntent(st, player, bi, mapSize, flip, &towerCount); err != nil {
			errs = append(errs, *err)
		}
	}
	for _, ti := range sub.OwnTowers {
		if err := checkTowerProperties(ownTowers, ti, mapSize, flip); err != nil {
			errs = append(errs, *err)
			continue
		}
		if err := dispatchTowerIntent(st, ti, mapSize, flip); err != nil {
			errs = append(errs, *err)
		}
	}

	return errs
}

func partitionBots(st *worldstate.State, player actor.PlayerID) (own, enemy []*actor.Bot) {
	for _, b := range st.Bots() {
		if b.Player == player {
			own = append(own, b)
		} else {
			enemy = append(enemy, b)
		}
	}
	return
}

func partitionTowers(st *worldstate.State, player actor.PlayerID) (own, enemy []*actor.Tower) {
	for _, tw := range st.Towers() {
		if tw.Player == player {
			own = append(own, tw)
		} else {
			enemy = append(enemy, tw)
		}
	}
	return
}

func findBot(pool []*actor.Bot, id uint64) *actor.Bot {
	for _, b := range pool {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func findTower(pool []*actor.Tower, id uint64) *actor.Tower {
	for _, tw := range pool {
		if tw.ID == id {
			return tw
		}
	}
	return nil
}

// checkBotProperties validates actor_id, hp, position, and state against
// authoritative, un-flipping the submitted position first if this
// submission is from player 2.
func checkBotProperties(pool []*actor.Bot, bi BotIntent, mapSize int, flip bool) *ValidationError {
	b := findBot(pool, bi.ActorID)
	if b == nil {
		return &ValidationError{Code: NoAlterBotProperty, ActorID: bi.ActorID, Message: "unknown actor id"}
	}
	pos := bi.Position
	if flip {
		pos = coordflip.FlipBot(pos, mapSize)
	}
	if bi.HP != b.HP || pos != b.Position || bi.State != b.State {
		return &ValidationError{Code: NoAlterBotProperty, ActorID: bi.ActorID, Message: "reported property does not match authoritative state"}
	}
	return nil
}

func checkTowerProperties(pool []*actor.Tower, ti TowerIntent, mapSize int, flip bool) *ValidationError {
	tw := findTower(pool, ti.ActorID)
	if tw == nil {
		return &ValidationError{Code: NoAlterTowerProperty, ActorID: ti.ActorID, Message: "unknown actor id"}
	}
	pos := ti.Position
	if flip {
		pos = coordflip.FlipTower(pos.Floor(), mapSize).ToDouble()
	}
	if ti.HP != tw.HP || pos != tw.Position || ti.State != tw.State {
		return &ValidationError{Code: NoAlterTowerProperty, ActorID: ti.ActorID, Message: "reported property does not match authoritative state"}
	}
	return nil
}

// dispatchBotIntent extracts, validates, and dispatches one own bot's
// intent. towerCount tracks the player's live tower count so repeated
// transform intents within the same submission cannot collectively exceed
// the cap even though the State mutation itself hasn't happened yet.
func dispatchBotIntent(st *worldstate.State, player actor.PlayerID, bi BotIntent, mapSize int, flip bool, towerCount *int) *ValidationError {
	if n := bi.intentCount(); n > 1 {
		return &ValidationError{Code: NoMultipleBotTask, ActorID: bi.ActorID, Message: fmt.Sprintf("%d intents set, want at most 1", n)}
	}

	unflip := func(p vecmath.DoubleVec2D) vecmath.DoubleVec2D {
		if flip {
			return coordflip.FlipBot(p, mapSize)
		}
		return p
	}

	switch {
	case bi.IsBlasting:
		at := unflip(bi.Position)
		if !validMoveCell(st, at) {
			return &ValidationError{Code: InvalidBlastPosition, ActorID: bi.ActorID, Message: "blast position is not a valid bot cell"}
		}
		_ = st.BlastActor(bi.ActorID, at)

	case bi.IsTransforming:
		at := unflip(bi.Position)
		if *towerCount >= st.Config().MaxNumTowers {
			return &ValidationError{Code: TowerLimitReached, ActorID: bi.ActorID, Message: "player already has the maximum number of towers"}
		}
		if !validTransformCell(st, at, player) {
			return &ValidationError{Code: InvalidTransformPosition, ActorID: bi.ActorID, Message: "transform destination is not a valid tower offset"}
		}
		_ = st.TransformBot(bi.ActorID, at)
		*towerCount++

	case !bi.FinalDestination.IsNull():
		at := unflip(bi.FinalDestination)
		if !validMoveCell(st, at) {
			return &ValidationError{Code: InvalidBlastPosition, ActorID: bi.ActorID, Message: "final destination is not a valid bot cell"}
		}
		_ = st.BlastActor(bi.ActorID, at)

	case !bi.TransformDestination.IsNull():
		at := unflip(bi.TransformDestination)
		if *towerCount >= st.Config().MaxNumTowers {
			return &ValidationError{Code: TowerLimitReached, ActorID: bi.ActorID, Message: "player already has the maximum number of towers"}
		}
		if !validTransformCell(st, at, player) {
			return &ValidationError{Code: InvalidTransformPosition, ActorID: bi.ActorID, Message: "transform destination is not a valid tower offset"}
		}
		_ = st.TransformBot(bi.ActorID, at)
		*towerCount++

	case !bi.Destination.IsNull():
		at := unflip(bi.Destination)
		if !validMoveCell(st, at) {
			return &ValidationError{Code: InvalidMovePosition, ActorID: bi.ActorID, Message: "destination is not a valid bot cell"}
		}
		_ = st.MoveBot(bi.ActorID, at)
	}
	return nil
}

func dispatchTowerIntent(st *worldstate.State, ti TowerIntent, mapSize int, flip bool) *ValidationError {
	if !ti.IsBlasting {
		return nil
	}
	at := ti.Position
	if flip {
		at = coordflip.FlipTower(at.Floor(), mapSize).ToDouble()
	}
	_ = st.BlastActor(ti.ActorID, at)
	return nil
}

// validMoveCell reports whether a real-valued destination lands in
// bounds on a LAND or FLAG cell.
func validMoveCell(st *worldstate.State, at vecmath.DoubleVec2D) bool {
	off := at.Floor()
	if !st.Map().InBounds(off) {
		return false
	}
	t := st.Map().At(off)
	return t == worldmap.Land || t == worldmap.Flag
}

// validTransformCell reports whether a transform destination resolves,
// via the player-perspective tower-offset rule, to a buildable cell.
func validTransformCell(st *worldstate.State, at vecmath.DoubleVec2D, player actor.PlayerID) bool {
	off := pathing.TowerOffset(at, player == actor.Player2)
	if !st.Map().InBounds(off) {
		return false
	}
	t := st.Map().At(off)
	return t == worldmap.Land || t == worldmap.Flag
}
