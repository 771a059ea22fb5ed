package shm

import (
	"encoding/binary"
	"fmt"

	"arenahost/internal/actor"
	"arenahost/internal/commandgiver"
	"arenahost/internal/vecmath"
)

// botIntentSize is the fixed wire size of one commandgiver.BotIntent:
// id(8) + hp(4) + position(16) + state(4) + 3 destinations(16 each) +
// 2 bool flags(1 each).
const botIntentSize = 8 + 4 + 16 + 4 + 16*3 + 2

// towerIntentSize is the fixed wire size of one commandgiver.TowerIntent:
// id(8) + hp(4) + position(16) + state(4) + 1 bool flag.
const towerIntentSize = 8 + 4 + 16 + 4 + 1

// EncodeSubmission writes a player's turn submission to buf in the same
// length-prefixed-array style as EncodeTransferState. This is the wire
// shape a player process writes back into its shared-memory payload
// section once it has decided each bot's and tower's intent.
func EncodeSubmission(sub commandgiver.Submission, buf []byte) (int, error) {
	need := SubmissionEncodedSize(sub)
	if len(buf) < need {
		return 0, fmt.Errorf("shm: buffer too small for submission: have %d, need %d", len(buf), need)
	}
	w := &writer{buf: buf}

	putBotIntents := func(bots []commandgiver.BotIntent) {
		w.putU32(uint32(len(bots)))
		for _, b := range bots {
			w.putU64(b.ActorID)
			w.putI32(int32(b.HP))
			w.putF64(b.Position.X)
			w.putF64(b.Position.Y)
			w.putI32(int32(b.State))
			putVec(w, b.Destination)
			putVec(w, b.FinalDestination)
			putVec(w, b.TransformDestination)
			w.putBool(b.IsBlasting)
			w.putBool(b.IsTransforming)
		}
	}
	putTowerIntents := func(towers []commandgiver.TowerIntent) {
		w.putU32(uint32(len(towers)))
		for _, t := range towers {
			w.putU64(t.ActorID)
			w.putI32(int32(t.HP))
			w.putF64(t.Position.X)
			w.putF64(t.Position.Y)
			w.putI32(int32(t.State))
			w.putBool(t.IsBlasting)
		}
	}

	putBotIntents(sub.OwnBots)
	putBotIntents(sub.EnemyBots)
	putTowerIntents(sub.OwnTowers)
	putTowerIntents(sub.EnemyTowers)
	return w.off, nil
}

// DecodeSubmission is the inverse of EncodeSubmission, read by the host
// once the player releases the baton.
func DecodeSubmission(buf []byte) (commandgiver.Submission, error) {
	r := &reader{buf: buf}
	var sub commandgiver.Submission

	getBotIntents := func() []commandgiver.BotIntent {
		n := int(r.getU32())
		out := make([]commandgiver.BotIntent, n)
		for i := range out {
			out[i].ActorID = r.getU64()
			out[i].HP = int(r.getI32())
			out[i].Position = vecmath.DoubleVec2D{X: r.getF64(), Y: r.getF64()}
			out[i].State = actor.BotState(r.getI32())
			out[i].Destination = getVec(r)
			out[i].FinalDestination = getVec(r)
			out[i].TransformDestination = getVec(r)
			out[i].IsBlasting = r.getBool()
			out[i].IsTransforming = r.getBool()
		}
		return out
	}
	getTowerIntents := func() []commandgiver.TowerIntent {
		n := int(r.getU32())
		out := make([]commandgiver.TowerIntent, n)
		for i := range out {
			out[i].ActorID = r.getU64()
			out[i].HP = int(r.getI32())
			out[i].Position = vecmath.DoubleVec2D{X: r.getF64(), Y: r.getF64()}
			out[i].State = actor.TowerState(r.getI32())
			out[i].IsBlasting = r.getBool()
		}
		return out
	}

	sub.OwnBots = getBotIntents()
	sub.EnemyBots = getBotIntents()
	sub.OwnTowers = getTowerIntents()
	sub.EnemyTowers = getTowerIntents()
	if r.err != nil {
		return commandgiver.Submission{}, r.err
	}
	return sub, nil
}

// SubmissionEncodedSize computes the exact wire size of sub.
func SubmissionEncodedSize(sub commandgiver.Submission) int {
	size := 4 + len(sub.OwnBots)*botIntentSize
	size += 4 + len(sub.EnemyBots)*botIntentSize
	size += 4 + len(sub.OwnTowers)*towerIntentSize
	size += 4 + len(sub.EnemyTowers)*towerIntentSize
	return size
}

func putVec(w *writer, v vecmath.DoubleVec2D) {
	w.putF64(v.X)
	w.putF64(v.Y)
}

func getVec(r *reader) vecmath.DoubleVec2D {
	return vecmath.DoubleVec2D{X: r.getF64(), Y: r.getF64()}
}

func (w *writer) putBool(b bool) {
	if b {
		w.putByte(1)
	} else {
		w.putByte(0)
	}
}

func (r *reader) getBool() bool { return r.getByte() != 0 }

// WriteSubmission encodes sub into the payload section of the region, the
// player-side counterpart to Buffer.WriteSnapshot.
func (b *Buffer) WriteSubmission(sub commandgiver.Submission) error {
	payload := b.data[offPayload:b.size]
	n, err := EncodeSubmission(sub, payload)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b.data[offPayloadLen:], uint32(n))
	return nil
}

// ReadSubmission decodes the payload section back into a Submission, the
// host-side counterpart read after the baton is released.
func (b *Buffer) ReadSubmission() (commandgiver.Submission, error) {
	n := binary.LittleEndian.Uint32(b.data[offPayloadLen:])
	if int(offPayload+n) > b.size {
		return commandgiver.Submission{}, fmt.Errorf("shm: recorded payload length %d exceeds region", n)
	}
	return DecodeSubmission(b.data[offPayload : offPayload+int(n)])
}
