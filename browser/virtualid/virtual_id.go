package virtualid

import (
	"fmt"
	"strconv"
	"strings"
)

// VirtualID is the synthetic element id shown to the model. It is only valid
// for the render that allocated it.
type VirtualID int

type VirtualIDGenerator interface {
	Generate() VirtualID
	IsValidVirtualID(id VirtualID) bool
}

type IncrIntVirtualIDGenerator struct {
	Start int
	Cur   int
}

// A VirtualIDGenerator that increments an integer from start
func NewIncrIntVirtualIDGenerator(start int) VirtualIDGenerator {
	return &IncrIntVirtualIDGenerator{Start: start, Cur: start}
}

func (g *IncrIntVirtualIDGenerator) Generate() VirtualID {
	newID := VirtualID(g.Cur)
	g.Cur++
	return newID
}

func (g *IncrIntVirtualIDGenerator) IsValidVirtualID(id VirtualID) bool {
	return int(id) >= g.Start && int(id) < g.Cur
}

func (id VirtualID) String() string {
	return strconv.Itoa(int(id))
}

// Parse reads an id as written by the model, e.g. "7" or "7,".
func Parse(s string) (VirtualID, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(s), ",.")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid virtual id %q: %w", s, err)
	} else if n < 0 {
		return 0, fmt.Errorf("invalid virtual id %q: negative", s)
	}
	return VirtualID(n), nil
}
