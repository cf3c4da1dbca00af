package model

import (
	"encoding/json"
	"fmt"
)

// Direction is one of the four compass directions, in clockwise order
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists all directions in clockwise order
var Directions = [4]Direction{North, East, South, West}

// Opposite returns the reverse direction. It is an involution:
// d.Opposite().Opposite() == d.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Clockwise returns the direction rotated 90 degrees clockwise
func (d Direction) Clockwise() Direction {
	return (d + 1) % 4
}

// CounterClockwise returns the direction rotated 90 degrees counter-clockwise
func (d Direction) CounterClockwise() Direction {
	return (d + 3) % 4
}

// Offset returns the (row, col) unit step for this direction
func (d Direction) Offset() (int, int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	}
	panic(fmt.Sprintf("invalid direction %d", int(d)))
}

// String returns the lowercase direction name
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection converts a direction name to a Direction
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "north":
		return North, nil
	case "east":
		return East, nil
	case "south":
		return South, nil
	case "west":
		return West, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// MarshalJSON serializes the direction as its name
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON parses a direction from its name
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Shape is the passage pattern of a tile before rotation
type Shape int

const (
	// ShapeStraight passes straight through: orientation and its opposite
	ShapeStraight Shape = iota
	// ShapeCorner is an L bend: orientation and its clockwise neighbor
	ShapeCorner
	// ShapeTee is a three-way junction: every direction except the one
	// behind the stem (the orientation's opposite)
	ShapeTee
)

// Shapes lists all tile shapes
var Shapes = [3]Shape{ShapeStraight, ShapeCorner, ShapeTee}

// String returns the lowercase shape name
func (s Shape) String() string {
	switch s {
	case ShapeStraight:
		return "straight"
	case ShapeCorner:
		return "corner"
	case ShapeTee:
		return "tee"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ParseShape converts a shape name to a Shape
func ParseShape(str string) (Shape, error) {
	switch str {
	case "straight":
		return ShapeStraight, nil
	case "corner":
		return ShapeCorner, nil
	case "tee":
		return ShapeTee, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidShape, str)
}

// MarshalJSON serializes the shape as its name
func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a shape from its name
func (s *Shape) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseShape(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Tile is a single maze cell: a passage shape plus a rotation. A tile may
// additionally be marked as some player's target cell. Tiles are value
// types; shifting a lane copies them, no tile is ever shared.
type Tile struct {
	Shape       Shape     `json:"shape"`
	Orientation Direction `json:"orientation"`
	// WhoseTarget marks this tile as a player's goal cell, if set
	WhoseTarget *PlayerID `json:"whose_target,omitempty"`
}

// Paths returns the set of directions this tile permits passage through.
// It is a pure function of (shape, orientation).
func (t Tile) Paths() []Direction {
	switch t.Shape {
	case ShapeStraight:
		return []Direction{t.Orientation, t.Orientation.Opposite()}
	case ShapeCorner:
		return []Direction{t.Orientation, t.Orientation.Clockwise()}
	case ShapeTee:
		return []Direction{
			t.Orientation.CounterClockwise(),
			t.Orientation,
			t.Orientation.Clockwise(),
		}
	}
	panic(fmt.Sprintf("invalid shape %d", int(t.Shape)))
}

// HasPath reports whether the tile permits passage in the given direction
func (t Tile) HasPath(dir Direction) bool {
	for _, d := range t.Paths() {
		if d == dir {
			return true
		}
	}
	return false
}

// Rotate turns the tile 90 degrees clockwise in place
func (t *Tile) Rotate() {
	t.Orientation = t.Orientation.Clockwise()
}
