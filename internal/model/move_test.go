package model

import (
	"errors"
	"testing"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		want    Move
		wantErr bool
	}{
		{in: "A1B2", want: Move{Src: Position{0, 0}, Dst: Position{1, 1}}},
		{in: "d8c7", want: Move{Src: Position{7, 3}, Dst: Position{6, 2}}},
		{in: "  b3A4\n", want: Move{Src: Position{2, 1}, Dst: Position{3, 0}}},
		{in: "clk", want: ClockMove()},
		{in: "  clk \n", want: ClockMove()},
		{in: "CLK", wantErr: true},
		{in: "Clk", wantErr: true},
		{in: "E1A2", wantErr: true},
		{in: "A9B2", wantErr: true},
		{in: "A1", wantErr: true},
		{in: "", wantErr: true},
		{in: "clock", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnparsable) {
				t.Fatalf("ParseMove(%q) err = %v, want ErrUnparsable", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseMove(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestMoveStringRoundTrip(t *testing.T) {
	for _, src := range allPositions() {
		for _, dst := range allPositions() {
			m := Move{Src: src, Dst: dst}
			got, err := ParseMove(m.String())
			if err != nil || got != m {
				t.Fatalf("round trip %s: got %+v, %v", m, got, err)
			}
		}
	}
	if ClockMove().String() != "clk" {
		t.Fatalf("clock move string = %q", ClockMove().String())
	}
}

func TestMoveReverses(t *testing.T) {
	a1, b2 := Position{0, 0}, Position{1, 1}
	prev := Move{Src: a1, Dst: b2}
	if !(Move{Src: b2, Dst: a1}).Reverses(prev) {
		t.Fatalf("B2A1 should reverse A1B2")
	}
	if (Move{Src: b2, Dst: Position{2, 2}}).Reverses(prev) {
		t.Fatalf("B2C3 should not reverse A1B2")
	}
}
