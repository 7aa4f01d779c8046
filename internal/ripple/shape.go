package ripple

// Shape is the outline of a ripple front.
type Shape uint8

const (
	Circle Shape = iota
	Square
	Triangle
)

func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	}
	return "unknown"
}

// cycleOrder is the round-robin used when shapes are not fixed.
var cycleOrder = [...]Shape{Triangle, Circle, Square}
