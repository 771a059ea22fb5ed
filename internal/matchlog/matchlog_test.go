package matchlog

import (
	"testing"

	"arenahost/internal/commandgiver"
)

func TestLogTurnDoesNotPanicWithOrWithoutErrors(t *testing.T) {
	lg := New()
	lg.LogTurn(0, nil, nil, [2]int{0, 0})
	lg.LogTurn(1, []commandgiver.ValidationError{{Code: commandgiver.InvalidMovePosition, Message: "out of bounds"}}, nil, [2]int{10, 0})
}

func TestLogMatchStartAndEndDoNotPanic(t *testing.T) {
	lg := New()
	lg.LogMatchStart("test-match", 100)
	lg.LogMatchEnd(0, "SCORE", [2]int{120, 80})
}
