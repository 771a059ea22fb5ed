// Package commandgiver validates the player-returned turn submission
// against the authoritative world state and, for every intent that
// survives validation, dispatches the corresponding State mutator. It is
// the sole place player input crosses into the authoritative core.
package commandgiver

// Code is the player-attributable validation error taxonomy. Every Code
// is recorded against the offending player for the current turn. For the
// per-actor codes the offending actor's intent is dropped but the turn
// continues for every other actor; NUMBER_OF_BOTS_MISMATCH and
// NUMBER_OF_TOWERS_MISMATCH drop the player's whole turn.
type Code string

const (
	NumberOfBotsMismatch      Code = "NUMBER_OF_BOTS_MISMATCH"
	NumberOfTowersMismatch    Code = "NUMBER_OF_TOWERS_MISMATCH"
	NoAlterBotProperty        Code = "NO_ALTER_BOT_PROPERTY"
	NoAlterTowerProperty      Code = "NO_ALTER_TOWER_PROPERTY"
	NoMultipleBotTask         Code = "NO_MULTIPLE_BOT_TASK"
	InvalidMovePosition       Code = "INVALID_MOVE_POSITION"
	InvalidBlastPosition      Code = "INVALID_BLAST_POSITION"
	InvalidTransformPosition  Code = "INVALID_TRANSFORM_POSITION"
	TowerLimitReached         Code = "TOWER_LIMIT_REACHED"
)

// ValidationError pairs a taxonomy code with the actor it was raised
// against (0 for turn-level errors such as a cardinality mismatch) and a
// free-text message, matching the replay's error-code-plus-message shape.
type ValidationError struct {
	Code    Code
	ActorID uint64
	Message string
}

func (e ValidationError) Error() string { return string(e.Code) + ": " + e.Message }
