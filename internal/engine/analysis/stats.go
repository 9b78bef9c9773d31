package analysis

// DropReason names a skippable condition.
type DropReason string

const (
	DropAnonymous            DropReason = "anonymous"
	DropForward              DropReason = "forward_declaration"
	DropUnresolvedLocation   DropReason = "unresolved_location"
	DropUnsupportedContainer DropReason = "unsupported_container"
	DropInvalidKind          DropReason = "invalid_kind"
)

// Stats counts what the population phase did with the event stream.
type Stats struct {
	Events           int
	Declarations     int
	MainDeclarations int
	Usages           int
	Dropped          map[DropReason]int
}

func (s Stats) DroppedTotal() int {
	total := 0
	for _, n := range s.Dropped {
		total += n
	}
	return total
}

func (s Stats) clone() Stats {
	out := s
	out.Dropped = make(map[DropReason]int, len(s.Dropped))
	for k, v := range s.Dropped {
		out.Dropped[k] = v
	}
	return out
}
