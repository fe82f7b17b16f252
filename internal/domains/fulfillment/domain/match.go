package domain

// MatchKind enumerates the possible outcomes of matching a resolved part
// against the open lines of an order.
type MatchKind string

const (
	// MatchExact means an open line requests the resolved part directly.
	MatchExact MatchKind = "exact"
	// MatchSubstitution means no open line requests the resolved part, but
	// an open line exists that could be fulfilled by substitution.
	MatchSubstitution MatchKind = "substitution"
	// MatchNoOpenLines means every line on the order is fully shipped.
	MatchNoOpenLines MatchKind = "no-open-lines"
)

// MatchResult carries the matched line (for exact and substitution kinds)
// and the resolved part (for substitution kinds).
type MatchResult struct {
	Kind MatchKind
	Line *LineItem
	Part *Part
}

// Match decides how a resolved catalog part applies to the given line
// sequence. Precedence is fixed: the first open line requesting the part
// wins; failing that, the first open line of any part becomes a
// substitution candidate; failing that, there is nothing to fulfill.
// Ties break on sequence order alone. Pure: no I/O, no mutation.
func Match(resolved Part, lines []LineItem) MatchResult {
	for i := range lines {
		if lines[i].Part == resolved.ID && lines[i].Remaining() > 0 {
			line := lines[i]
			return MatchResult{Kind: MatchExact, Line: &line}
		}
	}
	for i := range lines {
		if lines[i].Remaining() > 0 {
			line := lines[i]
			part := resolved
			return MatchResult{Kind: MatchSubstitution, Line: &line, Part: &part}
		}
	}
	return MatchResult{Kind: MatchNoOpenLines}
}
