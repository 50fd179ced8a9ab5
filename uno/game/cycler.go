package game

const (
	left  = -1
	right = 1
)

// Cycler is a circular sequence of player ids with a rotation direction.
type Cycler struct {
	elements  []int64
	current   int
	direction int
}

func NewCycler(elements []int64) *Cycler {
	return &Cycler{
		elements:  elements,
		current:   0,
		direction: right,
	}
}

func (c *Cycler) Current() int64 {
	return c.elements[c.current]
}

// Peek returns the id one step ahead without rotating.
func (c *Cycler) Peek() int64 {
	elementCount := len(c.elements)
	return c.elements[(c.current+c.direction+elementCount)%elementCount]
}

func (c *Cycler) Next() int64 {
	elementCount := len(c.elements)
	c.current = (c.current + c.direction + elementCount) % elementCount
	return c.elements[c.current]
}

// Reverse flips the rotation direction; the current element keeps its seat.
func (c *Cycler) Reverse() {
	switch c.direction {
	case right:
		c.direction = left
	case left:
		c.direction = right
	}
}

// Remove excises an element. Removing the current element leaves the cursor
// on the element that would have been next in the forward direction.
func (c *Cycler) Remove(element int64) {
	index := -1
	for i, candidate := range c.elements {
		if candidate == element {
			index = i
			break
		}
	}
	if index < 0 {
		return
	}
	c.elements = append(c.elements[:index], c.elements[index+1:]...)
	if len(c.elements) == 0 {
		c.current = 0
		return
	}
	if index < c.current || c.current >= len(c.elements) {
		c.current = (c.current - 1 + len(c.elements)) % len(c.elements)
	}
}

func (c *Cycler) Elements() []int64 {
	elements := make([]int64, len(c.elements))
	copy(elements, c.elements)
	return elements
}

func (c *Cycler) ForEach(function func(int64)) {
	for _, element := range c.elements {
		function(element)
	}
}

func (c *Cycler) Len() int {
	return len(c.elements)
}
