package drag

// Position is the discrete spatial relationship between the pointer and a
// drop target.
type Position uint8

const (
	// PositionNone means no drop relationship. Over-events resolving to
	// it are filtered out, so an emitted over-payload never carries it;
	// in start and end payloads it means "not established".
	PositionNone Position = iota
	// PositionBefore drops ahead of the target along the active axis.
	PositionBefore
	// PositionAfter drops behind the target along the active axis.
	PositionAfter
	// PositionIn drops inside the target.
	PositionIn
)

// String returns a human-readable position name.
func (p Position) String() string {
	switch p {
	case PositionBefore:
		return "before"
	case PositionAfter:
		return "after"
	case PositionIn:
		return "in"
	default:
		return "none"
	}
}

// Rule names the mapping from a continuous offset to a Position. The rule
// is selected per (drop element, drag element) pair by the configured
// RuleFunc.
type Rule uint8

const (
	// RuleAround splits the target at its midpoint: before or after.
	RuleAround Rule = iota
	// RuleAll yields before, in, or after using the threshold bands at
	// both edges.
	RuleAll
	// RuleNotAfter yields before within the leading threshold band,
	// otherwise in.
	RuleNotAfter
	// RuleNone always yields no position.
	RuleNone
	// RuleIn always yields in.
	RuleIn
	// RuleBefore always yields before.
	RuleBefore
	// RuleAfter always yields after.
	RuleAfter
)

// String returns the rule's configuration name.
func (r Rule) String() string {
	switch r {
	case RuleAround:
		return "around"
	case RuleAll:
		return "all"
	case RuleNotAfter:
		return "notAfter"
	case RuleNone:
		return "none"
	case RuleIn:
		return "in"
	case RuleBefore:
		return "before"
	case RuleAfter:
		return "after"
	default:
		return "unknown"
	}
}

// ParseRule converts a configuration name into a Rule.
func ParseRule(s string) (Rule, bool) {
	switch s {
	case "around":
		return RuleAround, true
	case "all":
		return RuleAll, true
	case "notAfter":
		return RuleNotAfter, true
	case "none":
		return RuleNone, true
	case "in":
		return RuleIn, true
	case "before":
		return RuleBefore, true
	case "after":
		return RuleAfter, true
	default:
		return RuleAround, false
	}
}

// Position resolves a pointer offset along the active axis, relative to
// the target's origin, into a discrete Position. size is the target's
// extent along that axis and threshold the band fraction in [0, 1].
// Comparisons are strict, so an offset exactly at size*threshold falls on
// the inner side.
func (r Rule) Position(offset, size, threshold float64) Position {
	switch r {
	case RuleAll:
		switch {
		case offset < size*threshold:
			return PositionBefore
		case offset > size*(1-threshold):
			return PositionAfter
		default:
			return PositionIn
		}
	case RuleNotAfter:
		if offset < size*threshold {
			return PositionBefore
		}
		return PositionIn
	case RuleAround:
		if offset < size/2 {
			return PositionBefore
		}
		return PositionAfter
	case RuleIn:
		return PositionIn
	case RuleBefore:
		return PositionBefore
	case RuleAfter:
		return PositionAfter
	default:
		return PositionNone
	}
}
