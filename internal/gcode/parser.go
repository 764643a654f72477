package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MoveType represents the type of plotter movement.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0: rapid positioning (pen up)
	MoveFeed                    // G1: linear feed in the XY plane
	MovePlunge                  // G1 with Z decreasing: pen down
	MoveRetract                 // G0/G1 with Z increasing: pen up
	MoveArc                     // G2/G3: circular feed in the XY plane
)

// GCodeMove represents a single parsed movement from GCode.
type GCodeMove struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	I, J     float64 // Arc center offset from the start point
	CW       bool    // Arc direction
	FeedRate float64
}

var coordRe = regexp.MustCompile(`([XYZFIJ])(-?\d+\.?\d*)`)

// ParseGCode parses a GCode string into a slice of structured moves.
// It tracks absolute position state and classifies each G0/G1/G2/G3
// command by its movement characteristics.
func ParseGCode(code string) []GCodeMove {
	var moves []GCodeMove

	// Current machine state
	curX, curY, curZ := 0.0, 0.0, 0.0
	curFeed := 0.0

	for _, line := range strings.Split(code, "\n") {
		// Strip inline comments (semicolon or parenthetical)
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		if idx := strings.Index(line, "("); idx >= 0 {
			if end := strings.Index(line, ")"); end > idx {
				line = line[:idx] + line[end+1:]
			} else {
				line = line[:idx]
			}
		}
		upper := strings.ToUpper(strings.TrimSpace(line))
		if upper == "" {
			continue
		}

		word := strings.Fields(upper)[0]
		var isRapid, isFeed, isArc, cw bool
		switch word {
		case "G0", "G00":
			isRapid = true
		case "G1", "G01":
			isFeed = true
		case "G2", "G02":
			isArc, cw = true, true
		case "G3", "G03":
			isArc = true
		default:
			continue
		}

		// Parse coordinates from this line
		newX, newY, newZ, newFeed := curX, curY, curZ, curFeed
		var offI, offJ float64
		for _, m := range coordRe.FindAllStringSubmatch(upper[len(word):], -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "Z":
				newZ = val
			case "F":
				newFeed = val
			case "I":
				offI = val
			case "J":
				offJ = val
			}
		}

		move := GCodeMove{
			FromX:    curX,
			FromY:    curY,
			FromZ:    curZ,
			ToX:      newX,
			ToY:      newY,
			ToZ:      newZ,
			FeedRate: newFeed,
		}
		if isArc {
			move.Type = MoveArc
			move.I, move.J, move.CW = offI, offJ, cw
		} else {
			move.Type = classifyMove(isRapid && !isFeed, curZ, newZ, curX, curY, newX, newY)
		}
		moves = append(moves, move)

		curX, curY, curZ, curFeed = newX, newY, newZ, newFeed
	}

	return moves
}

// classifyMove determines the MoveType based on movement characteristics.
func classifyMove(isRapid bool, fromZ, toZ, fromX, fromY, toX, toY float64) MoveType {
	zDelta := toZ - fromZ
	hasXY := fromX != toX || fromY != toY

	switch {
	case isRapid:
		if zDelta > 0 {
			return MoveRetract
		}
		return MoveRapid
	case zDelta < -0.001 && !hasXY:
		return MovePlunge
	case zDelta > 0.001 && !hasXY:
		return MoveRetract
	default:
		return MoveFeed
	}
}

// Length returns the XY path length of the move. An arc whose end equals
// its start is a full circle.
func (m GCodeMove) Length() float64 {
	if m.Type != MoveArc {
		return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
	}

	cx, cy := m.FromX+m.I, m.FromY+m.J
	r := math.Hypot(m.I, m.J)
	a0 := math.Atan2(m.FromY-cy, m.FromX-cx)
	a1 := math.Atan2(m.ToY-cy, m.ToX-cx)

	sweep := a1 - a0
	if m.CW {
		sweep = -sweep
	}
	for sweep <= 1e-9 {
		sweep += 2 * math.Pi
	}
	return r * sweep
}

// PlotStats summarizes a parsed program.
type PlotStats struct {
	DrawLength   float64 // mm traveled with the pen down
	TravelLength float64 // mm traveled with the pen up
	Arcs         int
}

// Summarize accumulates path lengths over moves.
func Summarize(moves []GCodeMove) PlotStats {
	var s PlotStats
	for _, m := range moves {
		switch m.Type {
		case MoveArc:
			s.Arcs++
			s.DrawLength += m.Length()
		case MoveFeed:
			s.DrawLength += m.Length()
		case MoveRapid, MoveRetract:
			s.TravelLength += m.Length()
		}
	}
	return s
}

// EstimateDuration returns the plotting time at the given draw feed and
// rapid rate, both in mm/min.
func (s PlotStats) EstimateDuration(feedRate, rapidRate float64) time.Duration {
	var minutes float64
	if feedRate > 0 {
		minutes += s.DrawLength / feedRate
	}
	if rapidRate > 0 {
		minutes += s.TravelLength / rapidRate
	}
	return time.Duration(minutes * float64(time.Minute))
}
