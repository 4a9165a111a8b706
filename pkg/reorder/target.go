package reorder

import "fmt"

// Direction is the way a block moves.
type Direction int

const (
	// Up moves a block towards the start of the document.
	Up Direction = iota

	// Down moves a block towards the end of the document.
	Down
)

// String returns "up" or "down".
func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// ParseDirection converts "up" or "down" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return Up, fmt.Errorf("unknown direction %q; valid directions: up, down", s)
	}
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

func (d Direction) step() int {
	if d == Down {
		return 1
	}
	return -1
}

// within reports whether line has not yet passed limit when walking in d.
func (d Direction) within(line, limit int) bool {
	if d == Down {
		return line <= limit
	}
	return line >= limit
}

// FindTarget scans from line from towards limit (inclusive) for the nearest
// swap partner of an item indented by indent.
//
// Blank lines and headings end the scan without a result; other non-list
// lines are skipped. When parent is non-zero only a list line at exactly the
// same indentation qualifies and a shallower line ends the scan. Without a
// parent, any list line at the same or a smaller indentation qualifies.
// Returns 0 when no target exists.
func (o *Outline) FindTarget(from, indent, parent int, dir Direction, limit int) int {
	for line := from; dir.within(line, limit) && o.valid(line); line += dir.step() {
		kind := o.kinds[line-1]
		switch {
		case kind.IsBlank(), kind.IsHeading():
			return 0
		case !kind.IsListItem():
			continue
		}

		lineIndent := o.indents[line-1]
		if parent != 0 {
			if lineIndent == indent {
				return line
			}
			if lineIndent < indent {
				return 0
			}
			continue
		}
		if lineIndent <= indent {
			return line
		}
	}
	return 0
}

// hopTarget looks for a swap partner in the adjacent section for a top-level
// item at the edge of its own section. Walking from origin only blank and
// prose lines may separate the item from the section heading; past the
// heading, the nearest list line starts an ordinary scan confined to that
// section. Exactly one heading is ever crossed.
func (o *Outline) hopTarget(origin, indent int, dir Direction) int {
	line := origin
	for ; o.valid(line) && !o.kinds[line-1].IsHeading(); line += dir.step() {
		if o.kinds[line-1].IsListItem() {
			return 0
		}
	}
	if !o.valid(line) {
		return 0
	}
	heading := line

	for line += dir.step(); o.valid(line); line += dir.step() {
		kind := o.kinds[line-1]
		if kind.IsHeading() {
			return 0
		}
		if kind.IsListItem() {
			break
		}
	}
	if !o.valid(line) {
		return 0
	}

	limit := len(o.kinds)
	if dir == Up {
		limit = 1
	}
	target := o.FindTarget(line, indent, 0, dir, limit)
	if target == 0 || !o.adjacentAcross(target, heading, dir) {
		return 0
	}
	return target
}

// adjacentAcross reports whether target lies in the section directly on the
// far side of heading.
func (o *Outline) adjacentAcross(target, heading int, dir Direction) bool {
	if dir == Up {
		return o.headingBelow[target-1] == heading
	}
	return o.headingAbove[target-1] == heading
}
