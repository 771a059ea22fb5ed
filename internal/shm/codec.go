package shm

import (
	"encoding/binary"
	"fmt"
	"math"

	"arenahost/internal/actor"
	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
	"arenahost/internal/worldstate"
)

// EncodeTransferState writes ts to buf in a little-endian, no-padding
// layout: map terrain bytes, flag offsets
// plus count, own/enemy bots plus counts, own/enemy towers plus counts,
// then the score pair. Returns the number of bytes written, or an error
// if buf is too small.
func EncodeTransferState(ts *worldstate.TransferState, buf []byte) (int, error) {
	need := EncodedSize(ts)
	if len(buf) < need {
		return 0, fmt.Errorf("shm: buffer too small: have %d, need %d", len(buf), need)
	}
	w := &writer{buf: buf}
	w.putU32(uint32(ts.MapSize))
	for _, t := range ts.Terrain {
		w.putByte(byte(t))
	}
	w.putU32(uint32(len(ts.Flags)))
	for _, f := range ts.Flags {
		w.putI32(int32(f.X))
		w.putI32(int32(f.Y))
	}
	putBots := func(bots []worldstate.BotView) {
		w.putU32(uint32(len(bots)))
		for _, b := range bots {
			w.putU64(b.ActorID)
			w.putI32(int32(b.HP))
			w.putI32(int32(b.MaxHP))
			w.putF64(b.Position.X)
			w.putF64(b.Position.Y)
			w.putI32(int32(b.State))
		}
	}
	putTowers := func(towers []worldstate.TowerView) {
		w.putU32(uint32(len(towers)))
		for _, tw := range towers {
			w.putU64(tw.ActorID)
			w.putI32(int32(tw.HP))
			w.putI32(int32(tw.MaxHP))
			w.putF64(tw.Position.X)
			w.putF64(tw.Position.Y)
			w.putI32(int32(tw.State))
		}
	}
	putBots(ts.OwnBots)
	putBots(ts.EnemyBots)
	putTowers(ts.OwnTowers)
	putTowers(ts.EnemyTowers)
	w.putI32(int32(ts.Scores[0]))
	w.putI32(int32(ts.Scores[1]))
	return w.off, nil
}

// DecodeTransferState reads a TransferState back out of buf, the inverse
// of EncodeTransferState.
func DecodeTransferState(buf []byte) (*worldstate.TransferState, error) {
	r := &reader{buf: buf}
	ts := &worldstate.TransferState{}
	ts.MapSize = int(r.getU32())
	n := ts.MapSize * ts.MapSize
	ts.Terrain = make([]worldmap.Terrain, n)
	for i := 0; i < n; i++ {
		ts.Terrain[i] = worldmap.Terrain(r.getByte())
	}
	numFlags := int(r.getU32())
	ts.Flags = make([]vecmath.Vec2D, numFlags)
	for i := range ts.Flags {
		ts.Flags[i] = vecmath.Vec2D{X: int(r.getI32()), Y: int(r.getI32())}
	}
	getBots := func() []worldstate.BotView {
		count := int(r.getU32())
		out := make([]worldstate.BotView, count)
		for i := range out {
			out[i] = worldstate.BotView{
				ActorID:  r.getU64(),
				HP:       int(r.getI32()),
				MaxHP:    int(r.getI32()),
				Position: vecmath.DoubleVec2D{X: r.getF64(), Y: r.getF64()},
				State:    actor.BotState(r.getI32()),
			}
		}
		return out
	}
	getTowers := func() []worldstate.TowerView {
		count := int(r.getU32())
		out := make([]worldstate.TowerView, count)
		for i := range out {
			out[i] = worldstate.TowerView{
				ActorID:  r.getU64(),
				HP:       int(r.getI32()),
				MaxHP:    int(r.getI32()),
				Position: vecmath.DoubleVec2D{X: r.getF64(), Y: r.getF64()},
				State:    actor.TowerState(r.getI32()),
			}
		}
		return out
	}
	ts.OwnBots = getBots()
	ts.EnemyBots = getBots()
	ts.OwnTowers = getTowers()
	ts.EnemyTowers = getTowers()
	ts.Scores[0] = int(r.getI32())
	ts.Scores[1] = int(r.getI32())
	if r.err != nil {
		return nil, r.err
	}
	return ts, nil
}

// EncodedSize computes the exact wire size of ts, so callers can size the
// shared-memory region's payload section up front.
func EncodedSize(ts *worldstate.TransferState) int {
	size := 4 + len(ts.Terrain) + 4 + len(ts.Flags)*8
	size += 4 + len(ts.OwnBots)*36
	size += 4 + len(ts.EnemyBots)*36
	size += 4 + len(ts.OwnTowers)*36
	size += 4 + len(ts.EnemyTowers)*36
	size += 8
	return size
}

type writer struct {
	buf []byte
	off int
}

func (w *writer) putByte(b byte) { w.buf[w.off] = b; w.off++ }
func (w *writer) putU32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}
func (w *writer) putI32(v int32) { w.putU32(uint32(v)) }
func (w *writer) putU64(v uint64) {
	binary.LittleEndian.PutUint64(w.buf[w.off:], v)
	w.off += 8
}
func (w *writer) putF64(v float64) { w.putU64(math.Float64bits(v)) }

type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) need(n int) bool {
	if r.err != nil || r.off+n > len(r.buf) {
		if r.err == nil {
			r.err = fmt.Errorf("shm: truncated transfer state at offset %d", r.off)
		}
		return false
	}
	return true
}
func (r *reader) getByte() byte {
	if !r.need(1) {
		return 0
	}
	b := r.buf[r.off]
	r.off++
	return b
}
func (r *reader) getU32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}
func (r *reader) getI32() int32 { return int32(r.getU32()) }
func (r *reader) getU64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}
func (r *reader) getF64() float64 { return math.Float64frombits(r.getU64()) }
