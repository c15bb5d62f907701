// Package move implements the tagged move union of spec.md §3: one
// record per legal action a side may take, in exactly the shape the
// rules engine generates, the search clones and compares by the
// thousand, and the protocol encodes on output.
//
// spec.md §9 "Tagged move variants" asks for a sum type, not the
// original's untagged union with overlapped storage. The teacher's
// genome.Phase models a sum type as a pure interface (one struct per
// kind, a discriminator method, an unexported marker to seal it) — see
// genome/schema.go. That shape needs a heap allocation and a type
// assertion per move, which is too costly for a type the search clones
// and discards thousands of times per top-level call. Move instead
// uses a closed Kind enum plus one payload struct per kind, embedded by
// value inside a single flat Move struct — cheap to copy, cheap to
// zero, and the Kind field alone says which payload is meaningful.
package move

// Kind discriminates the action a Move carries.
type Kind uint8

const (
	Pass Kind = iota
	Surrender
	Attack
	SetSwing
	UseChance
	UseFocus
	UseReserve

	// NoAction is the "last action" sentinel a fresh fight phase starts
	// with, matching original_source's BME_ACTION_MAX: no move has
	// happened yet this phase, so a single pass can't be "mutual" yet.
	NoAction Kind = 255
)

func (k Kind) String() string {
	switch k {
	case Pass:
		return "pass"
	case Surrender:
		return "surrender"
	case Attack:
		return "attack"
	case SetSwing:
		return "swing"
	case UseChance:
		return "chance"
	case UseFocus:
		return "focus"
	case UseReserve:
		return "reserve"
	default:
		return "invalid"
	}
}

// AttackKind names one of the six attack kinds spec.md §4.3 defines.
// Mirrors die.Attack but kept as its own type so this package doesn't
// need to import die just for the enum; game/movegen.go's
// attackKindToDie converts between them.
type AttackKind uint8

const (
	AttackPower AttackKind = iota
	AttackSkill
	AttackBerserk
	AttackSpeed
	AttackTrip
	AttackShadow
)

func (a AttackKind) String() string {
	switch a {
	case AttackPower:
		return "power"
	case AttackSkill:
		return "skill"
	case AttackBerserk:
		return "berserk"
	case AttackSpeed:
		return "speed"
	case AttackTrip:
		return "trip"
	case AttackShadow:
		return "shadow"
	default:
		return "invalid"
	}
}

// TurboOverride records a turbo die's chosen alternate side count for
// one attacking die, keyed by that die's original index.
type TurboOverride struct {
	DieIndex  int
	SideValue int // option: 0 or 1 meaning which side; swing: chosen side count
	IsOption  bool
}

// AttackPayload is the payload for Kind == Attack.
type AttackPayload struct {
	AttackKind     AttackKind
	AttackerPlayer int
	TargetPlayer   int
	Attackers      []int // original die indices on the attacking side
	Targets        []int // original die indices on the target side
	Turbo          []TurboOverride
}

// SwingChoice is one swing-letter/value pair in a SetSwing move.
type SwingChoice struct {
	Letter byte // 'P'..'Z'
	Value  int
}

// OptionChoice is one option-die index/side pair in a SetSwing move.
type OptionChoice struct {
	DieIndex int
	Side     int // 0 or 1
}

// SetSwingPayload is the payload for Kind == SetSwing (preround).
type SetSwingPayload struct {
	Swings  []SwingChoice
	Options []OptionChoice
}

// UseChancePayload is the payload for Kind == UseChance: the set of
// chance dice (by original index) the mover rerolls.
type UseChancePayload struct {
	DieIndices []int
}

// FocusChoice is one focus die's chosen reduced value.
type FocusChoice struct {
	DieIndex int
	Value    int // reduced value, at least 1 and below the die's current value; ValidUseFocus rejects a 0
}

// UseFocusPayload is the payload for Kind == UseFocus.
type UseFocusPayload struct {
	Choices []FocusChoice
}

// UseReservePayload is the payload for Kind == UseReserve: the reserve
// die index to promote, or Pass == true.
type UseReservePayload struct {
	DieIndex int
	Pass     bool
}

// Move is the tagged union. Only the field matching Kind is meaningful;
// the rest are zero values. Move is deliberately a flat value type (no
// pointer payloads beyond the slices attacks/swings need) so it can be
// copied and compared cheaply inside the search's per-ply move lists.
type Move struct {
	Kind Kind

	Attack     AttackPayload
	SetSwing   SetSwingPayload
	UseChance  UseChancePayload
	UseFocus   UseFocusPayload
	UseReserve UseReservePayload
}

// NewPass returns a pass move.
func NewPass() Move { return Move{Kind: Pass} }

// NewSurrender returns a surrender move.
func NewSurrender() Move { return Move{Kind: Surrender} }

// Clone deep-copies a Move's slice fields, matching the Game cloning
// contract (spec.md §9 "Game cloning"): moves generated against one
// game instance must not alias slices with a move replayed against a
// clone.
func (m Move) Clone() Move {
	out := m
	if m.Attack.Attackers != nil {
		out.Attack.Attackers = append([]int(nil), m.Attack.Attackers...)
	}
	if m.Attack.Targets != nil {
		out.Attack.Targets = append([]int(nil), m.Attack.Targets...)
	}
	if m.Attack.Turbo != nil {
		out.Attack.Turbo = append([]TurboOverride(nil), m.Attack.Turbo...)
	}
	if m.SetSwing.Swings != nil {
		out.SetSwing.Swings = append([]SwingChoice(nil), m.SetSwing.Swings...)
	}
	if m.SetSwing.Options != nil {
		out.SetSwing.Options = append([]OptionChoice(nil), m.SetSwing.Options...)
	}
	if m.UseChance.DieIndices != nil {
		out.UseChance.DieIndices = append([]int(nil), m.UseChance.DieIndices...)
	}
	if m.UseFocus.Choices != nil {
		out.UseFocus.Choices = append([]FocusChoice(nil), m.UseFocus.Choices...)
	}
	return out
}

// Equal reports whether two moves are the same action, used by the
// "generated legal moves are pairwise distinct" invariant (spec.md §8).
func Equal(a, b Move) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Pass, Surrender:
		return true
	case Attack:
		return a.Attack.AttackKind == b.Attack.AttackKind &&
			a.Attack.AttackerPlayer == b.Attack.AttackerPlayer &&
			a.Attack.TargetPlayer == b.Attack.TargetPlayer &&
			intsEqual(a.Attack.Attackers, b.Attack.Attackers) &&
			intsEqual(a.Attack.Targets, b.Attack.Targets) &&
			turboEqual(a.Attack.Turbo, b.Attack.Turbo)
	case SetSwing:
		return swingsEqual(a.SetSwing.Swings, b.SetSwing.Swings) &&
			optionsEqual(a.SetSwing.Options, b.SetSwing.Options)
	case UseChance:
		return intsEqual(a.UseChance.DieIndices, b.UseChance.DieIndices)
	case UseFocus:
		if len(a.UseFocus.Choices) != len(b.UseFocus.Choices) {
			return false
		}
		for i := range a.UseFocus.Choices {
			if a.UseFocus.Choices[i] != b.UseFocus.Choices[i] {
				return false
			}
		}
		return true
	case UseReserve:
		return a.UseReserve == b.UseReserve
	}
	return false
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func turboEqual(a, b []TurboOverride) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func swingsEqual(a, b []SwingChoice) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func optionsEqual(a, b []OptionChoice) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
