package breakout

import (
	"errors"
	"math"
	"testing"
)

func TestSnapshotRoundTripContinues(t *testing.T) {
	a := newTestSim(t, DefaultParams(), 3)
	a.field.Kill(GridPos{Row: 2, Col: 5})
	for range 40 {
		a.Advance(Input{MoveRight: true})
	}

	snap := a.Snapshot()
	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot failed: %v", err)
	}

	b := newTestSim(t, DefaultParams(), 99)
	if err := b.ApplySnapshot(decoded); err != nil {
		t.Fatalf("ApplySnapshot failed: %v", err)
	}
	if b.field.Blocks[2][5].Alive {
		t.Error("killed block should stay dead after restore")
	}
	if b.Snapshot().Hash() != snap.Hash() {
		t.Fatal("restored state hashes differently")
	}

	for i := range 200 {
		in := Input{MoveLeft: i%3 == 0}
		a.Advance(in)
		b.Advance(in)
	}
	if a.Snapshot().Hash() != b.Snapshot().Hash() {
		t.Error("runs diverged after restore")
	}
}

func TestApplySnapshotMismatch(t *testing.T) {
	s := newTestSim(t, DefaultParams(), 1)
	s.field.Kill(GridPos{Row: 0, Col: 3})
	for range 50 {
		s.Advance(Input{})
	}
	before := s.Snapshot()

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"short block list", func(snap *Snapshot) { snap.Alive = snap.Alive[:3] }},
		{"zero arena", func(snap *Snapshot) { snap.Arena = Arena{Width: 0, Height: 500} }},
		{"infinite arena", func(snap *Snapshot) { snap.Arena = Arena{Width: math.Inf(1), Height: 500} }},
		{"grid of another arena", func(snap *Snapshot) { snap.Arena = Arena{Width: 320, Height: 276} }},
		{"unknown phase", func(snap *Snapshot) { snap.Phase = Phase(7) }},
		{"bad difficulty", func(snap *Snapshot) { snap.Difficulty.BaseSpeed = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := s.Snapshot()
			snap.Alive = append([]bool(nil), snap.Alive...)
			tc.mutate(&snap)

			if err := s.ApplySnapshot(snap); !errors.Is(err, ErrSnapshotMismatch) {
				t.Fatalf("ApplySnapshot() = %v, expected ErrSnapshotMismatch", err)
			}
			if s.Snapshot().Hash() != before.Hash() {
				t.Error("failed restore changed the running state")
			}
			if s.Ticks() != 50 || s.field.CountAlive() != 39 {
				t.Errorf("ticks=%d alive=%d after failed restore, expected 50/39", s.Ticks(), s.field.CountAlive())
			}
		})
	}
}

func TestApplySnapshotOnFreshSimulation(t *testing.T) {
	src := newTestSim(t, DefaultParams(), 5)
	for range 30 {
		src.Advance(Input{MoveLeft: true})
	}
	snap := src.Snapshot()

	dst := NewSimulation(DefaultParams(), nil)
	if err := dst.ApplySnapshot(snap); err != nil {
		t.Fatalf("ApplySnapshot failed: %v", err)
	}
	if dst.Snapshot().Hash() != snap.Hash() {
		t.Error("restored state differs from the snapshot")
	}
	if d := dst.Advance(Input{}); d.Phase != PhasePlaying {
		t.Errorf("restored simulation should keep playing, got %v", d.Phase)
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeSnapshot([]byte{0xc1}); err == nil {
		t.Error("expected error for invalid msgpack")
	}
}
