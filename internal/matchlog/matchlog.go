// Package matchlog is the structured logging façade for a match: turn
// results, validation rejections, and match-end summaries, using
// logrus's structured-field style.
package matchlog

import (
	"github.com/sirupsen/logrus"

	"arenahost/internal/commandgiver"
)

// Logger wraps a logrus.Logger with match-specific helpers. It satisfies
// statesync.Logger.
type Logger struct {
	l *logrus.Logger
}

// New builds a Logger writing structured (JSON) entries, matching the
// service-log convention used for everything else in this module that
// isn't a human-facing debug stream.
func New() *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	return &Logger{l: l}
}

// LogMatchStart records match initialization.
func (lg *Logger) LogMatchStart(matchID string, mapSize int) {
	lg.l.WithFields(logrus.Fields{
		"match_id": matchID,
		"map_size": mapSize,
	}).Info("match started")
}

// LogTurn records one turn's validation errors and running scores.
func (lg *Logger) LogTurn(turn int, p1Errs, p2Errs []commandgiver.ValidationError, scores [2]int) {
	entry := lg.l.WithFields(logrus.Fields{
		"turn":          turn,
		"p1_score":      scores[0],
		"p2_score":      scores[1],
		"p1_violations": len(p1Errs),
		"p2_violations": len(p2Errs),
	})
	if len(p1Errs) == 0 && len(p2Errs) == 0 {
		entry.Debug("turn processed")
		return
	}
	entry.WithField("errors", joinErrors(p1Errs, p2Errs)).Warn("turn processed with validation rejections")
}

// LogInstructionCount records a player's per-turn instruction usage.
func (lg *Logger) LogInstructionCount(turn, player int, count uint64) {
	lg.l.WithFields(logrus.Fields{
		"turn":         turn,
		"player":       player,
		"instructions": count,
	}).Debug("instruction count")
}

// LogMatchEnd records the final outcome.
func (lg *Logger) LogMatchEnd(winner int, winType string, scores [2]int) {
	lg.l.WithFields(logrus.Fields{
		"winner":    winner,
		"win_type":  winType,
		"p1_score":  scores[0],
		"p2_score":  scores[1],
	}).Info("match ended")
}

func joinErrors(p1, p2 []commandgiver.ValidationError) []string {
	out := make([]string, 0, len(p1)+len(p2))
	for _, e := range p1 {
		out = append(out, "p1:"+e.Error())
	}
	for _, e := range p2 {
		out = append(out, "p2:"+e.Error())
	}
	return out
}
