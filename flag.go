package depmode

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Mask is a bitmask of resolution constraint flags attached to a single
// dependency. Flags are combined with the | operator:
//
//	depmode.DepMask(TypeOf[Cache](), depmode.Optional|depmode.Many)
type Mask uint8

const (
	// Self restricts the search to the current container. Ancestors are never consulted.
	Self Mask = 0b1000

	// SkipSelf starts the search at the parent container, skipping the current one.
	SkipSelf Mask = 0b0100

	// Optional substitutes an absent value (nil) when the identifier cannot be resolved.
	Optional Mask = 0b0010

	// Many resolves every registration for the identifier into an ordered
	// sequence, inserted as a single argument.
	Many Mask = 0b0001
)

// None is the empty mask: ascend the full container tree and require exactly one match.
const None Mask = 0

// maxMask is the largest value representable by the four flags.
const maxMask = Self | SkipSelf | Optional | Many

var flagNames = [...]struct {
	flag Mask
	name string
}{
	{Self, "Self"},
	{SkipSelf, "SkipSelf"},
	{Optional, "Optional"},
	{Many, "Many"},
}

// Flags returns the individual flags, highest bit first.
func Flags() []Mask {
	return []Mask{Self, SkipSelf, Optional, Many}
}

// Has reports whether every bit of flag is set in m.
func (m Mask) Has(flag Mask) bool {
	return m&flag == flag
}

// InRange reports whether m only uses the four known bits.
func (m Mask) InRange() bool {
	return m <= maxMask
}

// IsValid reports whether m is in range and does not combine Self with SkipSelf.
func (m Mask) IsValid() bool {
	return m.InRange() && !(m.Has(Self) && m.Has(SkipSelf))
}

// String returns the flag names joined by "|", or "None" for the empty mask.
// Unknown high bits are rendered as a hex remainder.
func (m Mask) String() string {
	if m == None {
		return "None"
	}

	parts := make([]string, 0, 4)
	for _, f := range flagNames {
		if m.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}

	if rest := m &^ maxMask; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint8(rest)))
	}

	return strings.Join(parts, "|")
}

// MarshalText implements encoding.TextMarshaler.
func (m Mask) MarshalText() ([]byte, error) {
	if !m.InRange() {
		return nil, MaskError{Value: strconv.Itoa(int(m)), Cause: ErrMaskOutOfRange}
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts flag names
// joined by "|" (case-insensitive, surrounding spaces ignored), "None", or a
// decimal number in [0, 15].
func (m *Mask) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		return MaskError{Value: s, Cause: ErrMaskEmpty}
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > int(maxMask) {
			return MaskError{Value: s, Cause: ErrMaskOutOfRange}
		}
		*m = Mask(n)
		return nil
	}

	var parsed Mask
	for _, part := range strings.Split(s, "|") {
		name := strings.TrimSpace(part)
		if strings.EqualFold(name, "None") {
			continue
		}

		flag, ok := flagByName(name)
		if !ok {
			return MaskError{Value: s, Cause: fmt.Errorf("unknown flag %q", name)}
		}
		parsed |= flag
	}

	*m = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Masks are written as numbers so
// external tooling can OR them directly.
func (m Mask) MarshalJSON() ([]byte, error) {
	if !m.InRange() {
		return nil, MaskError{Value: strconv.Itoa(int(m)), Cause: ErrMaskOutOfRange}
	}

	return json.Marshal(uint8(m))
}

// UnmarshalJSON implements json.Unmarshaler. Both numbers and flag-name strings are accepted.
func (m *Mask) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return m.UnmarshalText([]byte(s))
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return MaskError{Value: string(data), Cause: err}
	}

	return m.UnmarshalText([]byte(strconv.Itoa(n)))
}

func flagByName(name string) (Mask, bool) {
	for _, f := range flagNames {
		if strings.EqualFold(f.name, name) {
			return f.flag, true
		}
	}

	return 0, false
}
