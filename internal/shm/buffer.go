// Package shm is the cross-process transport: a named shared-memory
// region per player, mapped by the host and by the player process, whose
// sole synchronization primitive is the is_player_running baton. It also
// provides the one-shot deadline Timer used by MainDriver.
package shm

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"arenahost/internal/worldstate"
)

// DefaultRegionSize is the shared-memory region size allotted to each
// player.
const DefaultRegionSize = 65535

const (
	offBaton       = 0  // uint32, atomic
	offTurnCount   = 8  // uint64, atomic
	offGameCount   = 16 // uint64, atomic
	offPayloadLen  = 24 // uint32
	offPayload     = 28
)

// Buffer is a host-or-player-side handle onto one player's shared-memory
// region. Both sides mmap the same backing file; the baton convention is
// the only synchronization between them.
type Buffer struct {
	file *os.File
	data []byte
	size int
}

// Create creates (or truncates) the backing file at path, sized to size
// bytes, and maps it. Called by the host before a player process starts;
// the path is then handed to the player via shm1.txt / shm2.txt.
func Create(path string, size int) (*Buffer, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("shm: create %s: %w", path, err)
	}
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, fmt.Errorf("shm: truncate %s: %w", path, err)
	}
	return mapFile(f, size)
}

// Open maps an existing backing file created by Create. Called by the
// player process, which reads the path out of shm1.txt / shm2.txt.
func Open(path string, size int) (*Buffer, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("shm: open %s: %w", path, err)
	}
	return mapFile(f, size)
}

func mapFile(f *os.File, size int) (*Buffer, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("shm: mmap: %w", err)
	}
	return &Buffer{file: f, data: data, size: size}, nil
}

// Close unmaps the region and closes the backing file.
func (b *Buffer) Close() error {
	if err := unix.Munmap(b.data); err != nil {
		b.file.Close()
		return fmt.Errorf("shm: munmap: %w", err)
	}
	return b.file.Close()
}

func (b *Buffer) batonPtr() *uint32 {
	return (*uint32)(ptrAt(b.data, offBaton))
}

// SetPlayerRunning stores the baton with release semantics: the host
// sets it true to hand off, the player clears it on completion.
func (b *Buffer) SetPlayerRunning(running bool) {
	var v uint32
	if running {
		v = 1
	}
	atomic.StoreUint32(b.batonPtr(), v)
}

// IsPlayerRunning loads the baton with acquire semantics.
func (b *Buffer) IsPlayerRunning() bool {
	return atomic.LoadUint32(b.batonPtr()) != 0
}

func (b *Buffer) turnCounterPtr() *uint64 { return (*uint64)(ptrAt(b.data, offTurnCount)) }
func (b *Buffer) gameCounterPtr() *uint64 { return (*uint64)(ptrAt(b.data, offGameCount)) }

// TurnInstructionCount loads the player's reported per-turn instruction
// count.
func (b *Buffer) TurnInstructionCount() uint64 { return atomic.LoadUint64(b.turnCounterPtr()) }

// GameInstructionCount loads the player's reported cumulative
// per-game instruction count.
func (b *Buffer) GameInstructionCount() uint64 { return atomic.LoadUint64(b.gameCounterPtr()) }

// ResetTurnInstructionCount clears the per-turn counter; called by the
// host before handing off a fresh turn.
func (b *Buffer) ResetTurnInstructionCount() { atomic.StoreUint64(b.turnCounterPtr(), 0) }

// AddInstructions is called from the player side's instrumentation to
// report executed instructions for both the turn and game counters.
func (b *Buffer) AddInstructions(n uint64) {
	atomic.AddUint64(b.turnCounterPtr(), n)
	atomic.AddUint64(b.gameCounterPtr(), n)
}

// WriteSnapshot encodes ts into the payload section of the region. Must
// only be called while the baton is held by the writing side.
func (b *Buffer) WriteSnapshot(ts *worldstate.TransferState) error {
	payload := b.data[offPayload:b.size]
	n, err := EncodeTransferState(ts, payload)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b.data[offPayloadLen:], uint32(n))
	return nil
}

// ReadSnapshot decodes the payload section back into a TransferState.
func (b *Buffer) ReadSnapshot() (*worldstate.TransferState, error) {
	n := binary.LittleEndian.Uint32(b.data[offPayloadLen:])
	if int(offPayload+n) > b.size {
		return nil, fmt.Errorf("shm: recorded payload length %d exceeds region", n)
	}
	return DecodeTransferState(b.data[offPayload : offPayload+int(n)])
}
