package bulk

import "github.com/youruser/coverapp/internal/cover"

// Direction moves the dataset cursor.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// ParseDirection accepts "next" and "prev" (or "previous").
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "next":
		return Next, true
	case "prev", "previous":
		return Prev, true
	}
	return 0, false
}

// Dataset is the ordered list of row deltas plus a cursor.
type Dataset struct {
	items []cover.Delta
	index int
}

func NewDataset(items []cover.Delta) *Dataset {
	return &Dataset{items: items}
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.items)
}

func (d *Dataset) Index() int {
	if d == nil {
		return 0
	}
	return d.index
}

// At returns the delta at i.
func (d *Dataset) At(i int) (cover.Delta, bool) {
	if d == nil || i < 0 || i >= len(d.items) {
		return cover.Delta{}, false
	}
	return d.items[i], true
}

// Current returns the delta under the cursor.
func (d *Dataset) Current() (cover.Delta, bool) {
	return d.At(d.Index())
}

// Items returns a copy of all deltas.
func (d *Dataset) Items() []cover.Delta {
	if d == nil {
		return nil
	}
	out := make([]cover.Delta, len(d.items))
	copy(out, d.items)
	return out
}

// Move shifts the cursor by dir, clamped to [0, Len()-1], and returns the
// delta now under it. An empty dataset never moves.
func (d *Dataset) Move(dir Direction) (cover.Delta, bool) {
	if d.Len() == 0 {
		return cover.Delta{}, false
	}
	i := d.index + int(dir)
	if i < 0 {
		i = 0
	}
	if i >= len(d.items) {
		i = len(d.items) - 1
	}
	d.index = i
	return d.items[i], true
}
