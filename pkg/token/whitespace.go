package token

import "strings"

// Whitespace is a bitset describing the whitespace between two tokens.
type Whitespace uint8

// Whitespace bits. When several bits are effective between two tokens the
// renderer picks the strongest: Blank, then Line, then Space or Tab.
const (
	None  Whitespace = 0
	Space Whitespace = 1
	Line  Whitespace = 2
	Blank Whitespace = 4
	Tab   Whitespace = 8 // alignment marker, rendered as a space followed by Token.Padding

	All = Space | Line | Blank | Tab
)

// Newline is the set of bits that produce a line break.
const Newline = Line | Blank

// Has reports whether every bit in bits is set.
func (w Whitespace) Has(bits Whitespace) bool {
	return w&bits == bits
}

// Any reports whether at least one bit in bits is set.
func (w Whitespace) Any(bits Whitespace) bool {
	return w&bits != 0
}

// String implements [fmt.Stringer].
func (w Whitespace) String() string {
	if w == None {
		return "none"
	}
	var parts []string
	for _, b := range []struct {
		bit  Whitespace
		name string
	}{{Space, "space"}, {Line, "line"}, {Blank, "blank"}, {Tab, "tab"}} {
		if w&b.bit != 0 {
			parts = append(parts, b.name)
		}
	}
	return strings.Join(parts, "|")
}

// side holds the whitespace state of one side of a token.
type side struct {
	preferred Whitespace
	mask      Whitespace
	locked    Whitespace
	critical  Whitespace
}

func newSide() side {
	return side{mask: All}
}

// Before returns the whitespace this token prefers before itself.
func (t *Token) Before() Whitespace { return t.before.preferred }

// After returns the whitespace this token prefers after itself.
func (t *Token) After() Whitespace { return t.after.preferred }

// MaskBefore returns the bits still allowed before this token.
func (t *Token) MaskBefore() Whitespace { return t.before.mask }

// MaskAfter returns the bits still allowed after this token.
func (t *Token) MaskAfter() Whitespace { return t.after.mask }

// LockedBefore returns the bits whose state before this token is final.
func (t *Token) LockedBefore() Whitespace { return t.before.locked }

// LockedAfter returns the bits whose state after this token is final.
func (t *Token) LockedAfter() Whitespace { return t.after.locked }

// CriticalBefore returns the bits before this token that no mask can remove.
func (t *Token) CriticalBefore() Whitespace { return t.before.critical }

// CriticalAfter returns the bits after this token that no mask can remove.
func (t *Token) CriticalAfter() Whitespace { return t.after.critical }

// lockedGapBefore returns the bits locked on either side of the gap before t.
func (t *Token) lockedGapBefore() Whitespace {
	locked := t.before.locked
	if p := t.Prev(); p != nil {
		locked |= p.after.locked
	}
	return locked
}

func (t *Token) lockedGapAfter() Whitespace {
	locked := t.after.locked
	if n := t.Next(); n != nil {
		locked |= n.before.locked
	}
	return locked
}

// AddBefore suggests bits before t. Locked bits are left alone.
func (t *Token) AddBefore(bits Whitespace) {
	bits &^= t.lockedGapBefore()
	if bits == 0 || t.before.preferred.Has(bits) {
		return
	}
	t.before.preferred |= bits
	t.touchBefore()
}

// AddAfter suggests bits after t. Locked bits are left alone.
func (t *Token) AddAfter(bits Whitespace) {
	bits &^= t.lockedGapAfter()
	if bits == 0 || t.after.preferred.Has(bits) {
		return
	}
	t.after.preferred |= bits
	t.touchAfter()
}

// RemoveBefore withdraws suggested bits before t without masking them.
func (t *Token) RemoveBefore(bits Whitespace) {
	bits &^= t.lockedGapBefore()
	if t.before.preferred&bits == 0 {
		return
	}
	t.before.preferred &^= bits
	t.touchBefore()
}

// RemoveAfter withdraws suggested bits after t without masking them.
func (t *Token) RemoveAfter(bits Whitespace) {
	bits &^= t.lockedGapAfter()
	if t.after.preferred&bits == 0 {
		return
	}
	t.after.preferred &^= bits
	t.touchAfter()
}

// ForbidBefore narrows the mask before t. Masks never widen.
func (t *Token) ForbidBefore(bits Whitespace) {
	bits &^= t.lockedGapBefore()
	if t.before.mask&bits == 0 {
		return
	}
	t.before.mask &^= bits
	t.touchBefore()
}

// ForbidAfter narrows the mask after t. Masks never widen.
func (t *Token) ForbidAfter(bits Whitespace) {
	bits &^= t.lockedGapAfter()
	if t.after.mask&bits == 0 {
		return
	}
	t.after.mask &^= bits
	t.touchAfter()
}

// LockBefore makes the current state of bits before t final.
func (t *Token) LockBefore(bits Whitespace) {
	t.before.locked |= bits
}

// LockAfter makes the current state of bits after t final.
func (t *Token) LockAfter(bits Whitespace) {
	t.after.locked |= bits
}

// RequireBefore sets bits before t and locks them.
func (t *Token) RequireBefore(bits Whitespace) {
	t.AddBefore(bits)
	t.LockBefore(bits)
}

// RequireAfter sets bits after t and locks them.
func (t *Token) RequireAfter(bits Whitespace) {
	t.AddAfter(bits)
	t.LockAfter(bits)
}

// SuppressBefore forbids bits before t and locks them.
func (t *Token) SuppressBefore(bits Whitespace) {
	t.ForbidBefore(bits)
	t.LockBefore(bits)
}

// SuppressAfter forbids bits after t and locks them.
func (t *Token) SuppressAfter(bits Whitespace) {
	t.ForbidAfter(bits)
	t.LockAfter(bits)
}

// CriticalAfterSet marks bits after t as critical: they are rendered even if
// a mask on either side of the gap forbids them.
func (t *Token) CriticalAfterSet(bits Whitespace) {
	if t.after.critical.Has(bits) {
		return
	}
	t.after.critical |= bits
	t.touchAfter()
}

// override replaces the state of bits in the gap between a and b, ignoring
// locks. It is reserved for the sanctioned helpers in helpers.go.
func override(a, b *Token, set, clear Whitespace) {
	if a != nil {
		a.after.preferred = (a.after.preferred | set) &^ clear
		a.after.mask = (a.after.mask | set) &^ clear
		a.after.locked |= set | clear
	}
	if b != nil {
		b.before.preferred = (b.before.preferred | set) &^ clear
		b.before.mask = (b.before.mask | set) &^ clear
		b.before.locked |= set | clear
		b.touchBefore()
	}
}

// Gap returns the effective whitespace between t and the token before it.
func (t *Token) Gap() Whitespace {
	if t.gap.valid {
		return t.gap.ws
	}
	ws := t.before.critical
	if p := t.Prev(); p != nil {
		ws |= (p.after.preferred|t.before.preferred)&p.after.mask&t.before.mask | p.after.critical
	} else {
		ws |= t.before.preferred & t.before.mask
	}
	t.gap = gapCache{valid: true, ws: ws}
	return ws
}

// GapAfter returns the effective whitespace between t and the next token.
func (t *Token) GapAfter() Whitespace {
	if n := t.Next(); n != nil {
		return n.Gap()
	}
	return (t.after.preferred & t.after.mask) | t.after.critical
}

// HasNewlineBefore reports whether a line break precedes t.
func (t *Token) HasNewlineBefore() bool {
	return t.Gap().Any(Newline)
}

// HasNewlineAfter reports whether a line break follows t.
func (t *Token) HasNewlineAfter() bool {
	return t.GapAfter().Any(Newline)
}

// HasBlankBefore reports whether a blank line precedes t.
func (t *Token) HasBlankBefore() bool {
	return t.Gap().Any(Blank)
}

// IsFirstOnLine reports whether t starts an output line.
func (t *Token) IsFirstOnLine() bool {
	return t.Prev() == nil || t.HasNewlineBefore()
}

// IsLastOnLine reports whether t ends an output line.
func (t *Token) IsLastOnLine() bool {
	return t.Next() == nil || t.HasNewlineAfter()
}

type gapCache struct {
	valid bool
	ws    Whitespace
}

func (t *Token) touchBefore() {
	t.gap.valid = false
	if t.doc != nil {
		t.doc.changed(t)
	}
}

func (t *Token) touchAfter() {
	if n := t.Next(); n != nil {
		n.touchBefore()
	}
}
