package breakout

import (
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot contains the complete run state for replay and determinism checks.
// Geometry is recomputed from the arena, so only mutable state is stored.
// The RNG is only consulted on Reset and is not part of a snapshot.
type Snapshot struct {
	Tick       int              `msgpack:"tick"`
	Phase      Phase            `msgpack:"phase"`
	Arena      Arena            `msgpack:"arena"`
	Difficulty DifficultyParams `msgpack:"difficulty"`

	BallX     float64 `msgpack:"bx"`
	BallY     float64 `msgpack:"by"`
	BallDX    float64 `msgpack:"bdx"`
	BallDY    float64 `msgpack:"bdy"`
	BallSpeed float64 `msgpack:"bs"`
	PaddleX   float64 `msgpack:"px"`

	// Block states, row-major
	Alive []bool `msgpack:"alive"`
}

// ErrSnapshotMismatch is returned when a snapshot does not fit the simulation.
var ErrSnapshotMismatch = errors.New("breakout: snapshot does not match simulation")

// Snapshot returns the current state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       s.ticks,
		Phase:      s.phase,
		Arena:      s.layout.Arena,
		Difficulty: s.diff,
		BallX:      s.ball.X,
		BallY:      s.ball.Y,
		BallDX:     s.ball.DX,
		BallDY:     s.ball.DY,
		BallSpeed:  s.ball.Speed,
		PaddleX:    s.paddle.X,
	}
	if s.field != nil {
		snap.Alive = make([]bool, 0, s.field.Total())
		for _, row := range s.field.Blocks {
			for _, b := range row {
				snap.Alive = append(snap.Alive, b.Alive)
			}
		}
	}
	return snap
}

// ApplySnapshot restores a snapshot onto the simulation's rules. The
// snapshot is checked against the layout its arena produces before any
// state changes; on error the current run is left as it was.
func (s *Simulation) ApplySnapshot(snap Snapshot) error {
	if !snap.Arena.Valid() {
		return fmt.Errorf("%w: %w: got %vx%v", ErrSnapshotMismatch, ErrInvalidArena, snap.Arena.Width, snap.Arena.Height)
	}
	if err := snap.Difficulty.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotMismatch, err)
	}
	if !snap.Phase.valid() {
		return fmt.Errorf("%w: unknown phase %d", ErrSnapshotMismatch, snap.Phase)
	}
	l := ComputeLayout(snap.Arena, s.params.Layout)
	if total := l.Grid.Rows * l.Grid.Cols; len(snap.Alive) != total {
		return fmt.Errorf("%w: %d blocks, field has %d", ErrSnapshotMismatch, len(snap.Alive), total)
	}

	s.build(l, snap.Difficulty)
	s.ticks = snap.Tick
	s.phase = snap.Phase
	s.ball.X, s.ball.Y = snap.BallX, snap.BallY
	s.ball.DX, s.ball.DY = snap.BallDX, snap.BallDY
	s.ball.Speed = snap.BallSpeed
	s.paddle.X = snap.PaddleX

	for i, alive := range snap.Alive {
		s.field.Blocks[i/s.field.Cols][i%s.field.Cols].Alive = alive
	}
	return nil
}

// Encode serializes the snapshot with msgpack.
func (snap Snapshot) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("breakout: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot produced by Encode.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("breakout: decode snapshot: %w", err)
	}
	return snap, nil
}

// Hash returns an FNV-1a fingerprint of the encoded snapshot.
func (snap Snapshot) Hash() uint64 {
	data, err := snap.Encode()
	if err != nil {
		return 0
	}
	h := fnv.New64a()
	h.Write(data) //nolint:errcheck // hash.Hash never fails
	return h.Sum64()
}
