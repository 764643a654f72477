package gcode

import (
	"math"
	"testing"
	"time"
)

func TestParseGCode_Empty(t *testing.T) {
	moves := ParseGCode("")
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for empty input, got %d", len(moves))
	}
}

func TestParseGCode_CommentsOnly(t *testing.T) {
	code := `; This is a comment
; Another comment
(parenthetical comment)
`
	moves := ParseGCode(code)
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for comments-only input, got %d", len(moves))
	}
}

func TestParseGCode_RapidMove(t *testing.T) {
	moves := ParseGCode("G0 X10.000 Y20.000\n")
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	m := moves[0]
	if m.Type != MoveRapid {
		t.Errorf("expected MoveRapid, got %d", m.Type)
	}
	if m.ToX != 10 || m.ToY != 20 {
		t.Errorf("expected to (10,20), got (%.3f, %.3f)", m.ToX, m.ToY)
	}
}

func TestParseGCode_PenUpDown(t *testing.T) {
	moves := ParseGCode("G0 Z5.000\nG1 Z0.000 F300\nG0 Z5.000\n")
	if len(moves) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(moves))
	}
	want := []MoveType{MoveRetract, MovePlunge, MoveRetract}
	for k, m := range moves {
		if m.Type != want[k] {
			t.Errorf("move %d: expected type %d, got %d", k, want[k], m.Type)
		}
	}
	if moves[1].FeedRate != 300 {
		t.Errorf("expected feed 300, got %.1f", moves[1].FeedRate)
	}
}

func TestParseGCode_Arc(t *testing.T) {
	moves := ParseGCode("G0 X15 Y10\nG2 X15 Y10 I-5 J0 F1000\nG03 X5 Y10 I-5 J0\n")
	if len(moves) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(moves))
	}

	full := moves[1]
	if full.Type != MoveArc || !full.CW {
		t.Errorf("expected clockwise arc, got %+v", full)
	}
	if full.I != -5 || full.J != 0 {
		t.Errorf("expected I-5 J0, got I%.1f J%.1f", full.I, full.J)
	}
	if math.Abs(full.Length()-2*math.Pi*5) > 1e-9 {
		t.Errorf("expected full circle length %.4f, got %.4f", 2*math.Pi*5, full.Length())
	}

	half := moves[2]
	if half.CW {
		t.Error("G03 should be counter-clockwise")
	}
	if math.Abs(half.Length()-math.Pi*5) > 1e-9 {
		t.Errorf("expected half circle length %.4f, got %.4f", math.Pi*5, half.Length())
	}
}

func TestParseGCode_InlineComments(t *testing.T) {
	moves := ParseGCode("G1 X5 Y5 F100 ; move (ignored X99)\n(skip) G0 X1 Y1\n")
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if moves[0].ToX != 5 {
		t.Errorf("comment coordinates leaked into move: %+v", moves[0])
	}
	if moves[1].ToX != 1 {
		t.Errorf("expected move after parenthetical comment, got %+v", moves[1])
	}
}

func TestParseGCode_IgnoresOtherCommands(t *testing.T) {
	moves := ParseGCode("G90\nG21\nM3 S1000\nM5\nM2\n")
	if len(moves) != 0 {
		t.Errorf("expected 0 moves, got %d", len(moves))
	}
}

func TestSummarize(t *testing.T) {
	code := "G0 X3 Y4\nG1 Z0 F100\nG2 X3 Y4 I-1 J0 F1000\nG0 Z5\nG0 X0 Y0\n"
	stats := Summarize(ParseGCode(code))

	if stats.Arcs != 1 {
		t.Errorf("expected 1 arc, got %d", stats.Arcs)
	}
	if math.Abs(stats.DrawLength-2*math.Pi) > 1e-9 {
		t.Errorf("expected draw length 2pi, got %.4f", stats.DrawLength)
	}
	if math.Abs(stats.TravelLength-10) > 1e-9 {
		t.Errorf("expected travel length 10, got %.4f", stats.TravelLength)
	}

	d := stats.EstimateDuration(2*math.Pi, 10)
	if d != 2*time.Minute {
		t.Errorf("expected 2m, got %v", d)
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	result := newTestResult()
	stats := Summarize(ParseGCode(New(newTestSettings()).Generate(result)))

	want := 0.0
	for _, p := range result.Placements {
		want += 2 * math.Pi * p.Circle.Radius
	}
	if stats.Arcs != len(result.Placements) {
		t.Errorf("expected %d arcs, got %d", len(result.Placements), stats.Arcs)
	}
	if math.Abs(stats.DrawLength-want) > 1e-6 {
		t.Errorf("expected draw length %.4f, got %.4f", want, stats.DrawLength)
	}
}
