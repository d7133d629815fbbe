package geom

import (
	"fmt"
	"math"
)

// Direction is a scroll axis lock.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionHorizontal
	DirectionVertical
	DirectionBoth
)

var directionNames = [...]string{
	DirectionNone:       "none",
	DirectionHorizontal: "horizontal",
	DirectionVertical:   "vertical",
	DirectionBoth:       "both",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// AllowsX reports whether the horizontal axis may move under this lock.
func (d Direction) AllowsX() bool {
	return d == DirectionHorizontal || d == DirectionBoth
}

// AllowsY reports whether the vertical axis may move under this lock.
func (d Direction) AllowsY() bool {
	return d == DirectionVertical || d == DirectionBoth
}

// ParseDirection parses "none", "horizontal", "vertical" or "both".
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return DirectionNone, fmt.Errorf("unknown direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ClassifyAngle maps an angle in degrees onto a direction. Angles within
// threshold of 0°/180° are horizontal, within threshold of ±90° vertical;
// anything matching both or neither is DirectionBoth.
func ClassifyAngle(angle, threshold float64) Direction {
	isHorizontal := (angle >= -threshold && angle <= threshold) ||
		angle >= 180-threshold ||
		angle <= -180+threshold

	isVertical := (angle >= 90-threshold && angle <= 90+threshold) ||
		(angle >= -90-threshold && angle <= -90+threshold)

	switch {
	case isHorizontal && !isVertical:
		return DirectionHorizontal
	case !isHorizontal && isVertical:
		return DirectionVertical
	}
	return DirectionBoth
}

// GetDirection classifies the movement from a to b.
func GetDirection(a, b Coord, threshold float64) Direction {
	angle := math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
	return ClassifyAngle(angle, threshold)
}
