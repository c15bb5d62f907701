// Package protocol implements the line-oriented text interface of
// spec.md §4.6/§6: the die and position grammars, the command
// dispatcher, and the move encoders whose output is bit-exact with
// existing tooling. The token grammar follows
// original_source/src/BMC_Parser.cpp; the parse-a-line-into-a-typed-
// struct-or-descriptive-error shape follows the teacher's
// genome/serialization.go.
package protocol

import (
	"fmt"
	"strings"

	"github.com/pappde/bmai-sub000/die"
)

// ParseError is a fatal protocol parse failure (spec.md §7 "Parse
// error"): it carries the offending text and enough context to print a
// human-readable fatal line.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s: %q", e.Line, e.Msg, e.Text)
	}
	return fmt.Sprintf("parse error: %s: %q", e.Msg, e.Text)
}

// DieSpec is one parsed die line plus the swing bookkeeping the player
// needs: values pinned in the text with a "-N" suffix mean the owner's
// swing choice is already locked for this round.
type DieSpec struct {
	Die die.Die

	// DefinedSwing holds swing values the text pinned with "-N",
	// keyed by swing letter type.
	DefinedSwing map[die.SwingType]int

	// OptionDefined is true when an option die's "-chosen" suffix was
	// present.
	OptionDefined bool
}

func dieErr(text, msg string) error {
	return &ParseError{Text: text, Msg: msg}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSwingLetter(c byte) bool {
	_, ok := die.SwingTypeForLetter(c)
	return ok
}

// sideStart reports whether c begins a side specification: a number, a
// swing letter, or a twin open-paren.
func sideStart(c byte) bool {
	return isDigit(c) || isSwingLetter(c) || c == '('
}

// parseNumber reads a decimal integer at *pos, advancing past it.
func parseNumber(s string, pos *int) (int, bool) {
	start := *pos
	v := 0
	for *pos < len(s) && isDigit(s[*pos]) {
		v = v*10 + int(s[*pos]-'0')
		*pos++
	}
	return v, *pos > start
}

// definedSides scans forward from pos (without consuming) for a "-N"
// suffix and returns N, or 0 when absent. Mirrors the original
// ParseDieDefinedSides: the scan runs to the first '-' anywhere in the
// remaining text, so "(X,X)-20" pins both twin sub-dice at 20.
func definedSides(s string, pos int) int {
	for pos < len(s) && s[pos] != '-' {
		pos++
	}
	if pos >= len(s) || s[pos] != '-' {
		return 0
	}
	pos++
	v, ok := parseNumber(s, &pos)
	if !ok {
		return 0
	}
	return v
}

// parseSides parses one sub-die's side specification (number or swing
// letter) into spec.Die.Sides[sub]/SwingType[sub], recording pinned
// swing values.
func parseSides(text string, pos *int, spec *DieSpec, sub int) error {
	d := &spec.Die
	if *pos < len(text) && isSwingLetter(text[*pos]) {
		t, _ := die.SwingTypeForLetter(text[*pos])
		d.SwingType[sub] = t
		d.Sides[sub] = 0
		*pos++
		if sides := definedSides(text, *pos); sides > 0 {
			d.Sides[sub] = sides
			if spec.DefinedSwing == nil {
				spec.DefinedSwing = make(map[die.SwingType]int)
			}
			spec.DefinedSwing[t] = sides
		}
		return nil
	}
	v, ok := parseNumber(text, pos)
	if !ok {
		return dieErr(text, "expecting side count")
	}
	d.SwingType[sub] = die.SwingNone
	d.Sides[sub] = v
	return nil
}

// ParseDie parses one die line of the position format (spec.md §6 "Die
// syntax"): prefix properties, side specification (numeric, swing,
// twin, or option), postfix properties, and an optional current value
// with dizzy marker.
func ParseDie(text string) (DieSpec, error) {
	var spec DieSpec
	d := &spec.Die
	d.Properties = die.Valid

	pos := 0

	// prefix properties
	for pos < len(text) && !sideStart(text[pos]) {
		c := text[pos]
		switch c {
		case '!':
			d.Properties |= die.Turbo
		case '?':
			d.Properties |= die.Mood
		default:
			p, ok := die.PropertyForPrefix(c)
			if !ok {
				return spec, dieErr(text, fmt.Sprintf("unknown prefix property %q", c))
			}
			d.Properties |= p
		}
		pos++
	}
	if pos >= len(text) {
		return spec, dieErr(text, "missing side specification")
	}

	// side specification
	if text[pos] == '(' {
		pos++
		d.Properties |= die.Twin
		if err := parseSides(text, &pos, &spec, 0); err != nil {
			return spec, err
		}
		if pos >= len(text) || text[pos] != ',' {
			return spec, dieErr(text, "expecting ',' in twin die")
		}
		pos++
		if err := parseSides(text, &pos, &spec, 1); err != nil {
			return spec, err
		}
		if pos >= len(text) || text[pos] != ')' {
			return spec, dieErr(text, "expecting ')' in twin die")
		}
		pos++
	} else {
		if err := parseSides(text, &pos, &spec, 0); err != nil {
			return spec, err
		}
		if pos < len(text) && text[pos] == '/' {
			pos++
			d.Properties |= die.Option
			if err := parseSides(text, &pos, &spec, 1); err != nil {
				return spec, err
			}
			if sides := definedSides(text, pos); sides > 0 {
				if sides != d.Sides[0] && sides != d.Sides[1] {
					return spec, dieErr(text, "option choice matches neither side")
				}
				if sides == d.Sides[1] && d.Sides[1] != d.Sides[0] {
					d.SetOption(1)
				} else {
					d.SetOption(0)
				}
				spec.OptionDefined = true
			}
		}
	}

	// postfix properties; '-' here is a defined-sides suffix already
	// consumed by definedSides' lookahead, so just skip its number.
	for pos < len(text) && text[pos] != ':' {
		c := text[pos]
		pos++
		switch c {
		case '!':
			d.Properties |= die.Turbo
		case '?':
			d.Properties |= die.Mood
		case '-':
			if _, ok := parseNumber(text, &pos); !ok {
				return spec, dieErr(text, "expecting number after '-'")
			}
		default:
			return spec, dieErr(text, fmt.Sprintf("unknown postfix property %q", c))
		}
	}

	// state
	if d.Properties.Has(die.Reserve) {
		d.State = die.StateReserve
	} else {
		d.State = die.StateNotSet
	}

	// current value
	if pos < len(text) && text[pos] == ':' {
		pos++
		v, ok := parseNumber(text, &pos)
		if !ok {
			return spec, dieErr(text, "expecting current value after ':'")
		}
		d.State = die.StateReady
		d.Value = v
		if pos < len(text) && text[pos] == 'd' {
			pos++
			d.State = die.StateDizzy
		}
	}

	if pos != len(text) {
		return spec, dieErr(text, fmt.Sprintf("trailing input at %q", text[pos]))
	}

	if d.State == die.StateReady || d.State == die.StateDizzy {
		d.RecomputeAttacks()
	}
	return spec, nil
}

// prefixOrder fixes the canonical emission order for prefix property
// characters, matching the original parser's property table order.
var prefixOrder = []struct {
	ch   byte
	prop die.Property
}{
	{'z', die.Speed},
	{'^', die.TimeAndSpace},
	{'+', die.Auxiliary},
	{'q', die.Queer},
	{'t', die.Trip},
	{'s', die.Shadow},
	{'d', die.Stealth},
	{'p', die.Poison},
	{'n', die.Null},
	{'B', die.Berserk},
	{'f', die.Focus},
	{'H', die.Mighty},
	{'h', die.Weak},
	{'r', die.Reserve},
	{'o', die.Ornery},
	{'D', die.Doppleganger},
	{'c', die.Chance},
	{'m', die.Morphing},
	{'%', die.Radioactive},
	{'`', die.Warrior},
	{'w', die.Slow},
	{'u', die.Unique},
	{'~', die.Unskilled},
	{'g', die.Stinger},
	{'G', die.Rage},
	{'k', die.Konstant},
	{'M', die.Maximum},
}

// EncodeDie renders a die in canonical form: the inverse of ParseDie up
// to structural identity (spec.md §8's round-trip property).
func EncodeDie(d *die.Die) string {
	var b strings.Builder

	for _, e := range prefixOrder {
		if d.Properties.Has(e.prop) {
			b.WriteByte(e.ch)
		}
	}

	encodeSub := func(sub int) {
		if t := d.SwingType[sub]; t.Valid() {
			b.WriteByte(t.Letter())
		} else {
			fmt.Fprintf(&b, "%d", d.Sides[sub])
		}
	}

	switch {
	case d.Properties.Has(die.Twin):
		b.WriteByte('(')
		encodeSub(0)
		b.WriteByte(',')
		encodeSub(1)
		b.WriteByte(')')
		if d.SwingType[0].Valid() && d.Sides[0] > 0 {
			fmt.Fprintf(&b, "-%d", d.Sides[0])
		}
	case d.Properties.Has(die.Option):
		// option sides are stored post-swap; re-emit in declaration
		// order so the original index 0/1 labeling round-trips.
		s0, s1 := d.Sides[0], d.Sides[1]
		if d.OptionChosen == 1 {
			s0, s1 = s1, s0
		}
		fmt.Fprintf(&b, "%d/%d", s0, s1)
		if d.OptionSet {
			fmt.Fprintf(&b, "-%d", d.Sides[0])
		}
	default:
		encodeSub(0)
		if d.SwingType[0].Valid() && d.Sides[0] > 0 {
			fmt.Fprintf(&b, "-%d", d.Sides[0])
		}
	}

	if d.Properties.Has(die.Turbo) {
		b.WriteByte('!')
	}
	if d.Properties.Has(die.Mood) {
		b.WriteByte('?')
	}

	switch d.State {
	case die.StateReady:
		fmt.Fprintf(&b, ":%d", d.Value)
	case die.StateDizzy:
		fmt.Fprintf(&b, ":%dd", d.Value)
	}

	return b.String()
}
