package depmode_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/depmode"
)

func TestMask(t *testing.T) {
	t.Run("constants", func(t *testing.T) {
		assert.Equal(t, depmode.Mask(0b1000), depmode.Self)
		assert.Equal(t, depmode.Mask(0b0100), depmode.SkipSelf)
		assert.Equal(t, depmode.Mask(0b0010), depmode.Optional)
		assert.Equal(t, depmode.Mask(0b0001), depmode.Many)
		assert.Equal(t, depmode.Mask(0), depmode.None)
	})

	t.Run("flags are disjoint", func(t *testing.T) {
		flags := depmode.Flags()
		require.Len(t, flags, 4)

		var all depmode.Mask
		for i, a := range flags {
			all |= a
			for j, b := range flags {
				if i != j {
					assert.Zero(t, a&b, "%s and %s overlap", a, b)
				}
			}
		}
		assert.Equal(t, depmode.Mask(15), all)
	})

	t.Run("Has", func(t *testing.T) {
		m := depmode.Optional | depmode.Many
		assert.True(t, m.Has(depmode.Optional))
		assert.True(t, m.Has(depmode.Many))
		assert.True(t, m.Has(depmode.Optional|depmode.Many))
		assert.False(t, m.Has(depmode.Self))
		assert.False(t, m.Has(depmode.Optional|depmode.Self))
	})

	t.Run("IsValid", func(t *testing.T) {
		for m := depmode.Mask(0); m <= 15; m++ {
			conflicting := m&depmode.Self != 0 && m&depmode.SkipSelf != 0
			assert.Equal(t, !conflicting, m.IsValid(), "mask %d", m)
		}
		assert.False(t, depmode.Mask(16).IsValid())
	})

	t.Run("String", func(t *testing.T) {
		tests := []struct {
			mask     depmode.Mask
			expected string
		}{
			{depmode.None, "None"},
			{depmode.Self, "Self"},
			{depmode.Optional | depmode.Many, "Optional|Many"},
			{depmode.Many | depmode.SkipSelf, "SkipSelf|Many"},
			{depmode.Self | depmode.SkipSelf | depmode.Optional | depmode.Many, "Self|SkipSelf|Optional|Many"},
			{depmode.Mask(0x13), "Optional|Many|0x10"},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.mask.String())
		}
	})
}

func TestMask_Marshaling(t *testing.T) {
	t.Run("MarshalText", func(t *testing.T) {
		data, err := (depmode.Self | depmode.Optional).MarshalText()
		require.NoError(t, err)
		assert.Equal(t, "Self|Optional", string(data))

		_, err = depmode.Mask(32).MarshalText()
		assert.ErrorIs(t, err, depmode.ErrMaskOutOfRange)
	})

	t.Run("UnmarshalText", func(t *testing.T) {
		tests := []struct {
			text     string
			expected depmode.Mask
			wantErr  error
		}{
			{"Self", depmode.Self, nil},
			{"optional | many", depmode.Optional | depmode.Many, nil},
			{"SKIPSELF|Optional", depmode.SkipSelf | depmode.Optional, nil},
			{"None", depmode.None, nil},
			{"3", depmode.Optional | depmode.Many, nil},
			{"15", depmode.Mask(15), nil},
			{"16", 0, depmode.ErrMaskOutOfRange},
			{"-1", 0, depmode.ErrMaskOutOfRange},
			{"", 0, depmode.ErrMaskEmpty},
			{"Bogus", 0, nil},
		}

		for _, tt := range tests {
			t.Run(tt.text, func(t *testing.T) {
				var m depmode.Mask
				err := m.UnmarshalText([]byte(tt.text))

				if tt.text == "Bogus" {
					var maskErr depmode.MaskError
					require.True(t, errors.As(err, &maskErr))
					assert.Equal(t, "Bogus", maskErr.Value)
					return
				}

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
					return
				}

				require.NoError(t, err)
				assert.Equal(t, tt.expected, m)
			})
		}
	})

	t.Run("JSON", func(t *testing.T) {
		type decl struct {
			Mode depmode.Mask `json:"mode"`
		}

		data, err := json.Marshal(decl{Mode: depmode.Optional | depmode.Many})
		require.NoError(t, err)
		assert.JSONEq(t, `{"mode":3}`, string(data))

		var fromNumber decl
		require.NoError(t, json.Unmarshal([]byte(`{"mode":9}`), &fromNumber))
		assert.Equal(t, depmode.Self|depmode.Many, fromNumber.Mode)

		var fromNames decl
		require.NoError(t, json.Unmarshal([]byte(`{"mode":"Self|Many"}`), &fromNames))
		assert.Equal(t, depmode.Self|depmode.Many, fromNames.Mode)

		var bad decl
		assert.Error(t, json.Unmarshal([]byte(`{"mode":-1}`), &bad))
		assert.Error(t, json.Unmarshal([]byte(`{"mode":1.5}`), &bad))
	})
}
