package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "sportify/pkg/domain-errors"
)

func TestParseISOCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"uppercase passes", "BR", "BR", ""},
		{"lowercase is normalized", "br", "BR", ""},
		{"surrounding space is trimmed", "  de ", "DE", ""},
		{"too short", "B", "", "exactly 2 characters"},
		{"too long", "BRA", "", "exactly 2 characters"},
		{"digits rejected", "B1", "", "alphabetic"},
		{"non-ascii rejected", "ÇA", "", "alphabetic"},
		{"empty", "", "", "exactly 2 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := ParseISOCode(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, code.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, code.String())
		})
	}
}

func TestNewCountry(t *testing.T) {
	t.Run("defaults to active with trimmed name", func(t *testing.T) {
		c, err := NewCountry("  Brazil ", "br")
		require.NoError(t, err)
		assert.Equal(t, "Brazil", c.Name)
		assert.Equal(t, "BR", c.ISOCode.String())
		assert.True(t, c.IsActive)
		assert.True(t, c.ID.IsNil())
		assert.True(t, c.CreatedAt.IsZero())
	})

	t.Run("name bounds", func(t *testing.T) {
		_, err := NewCountry("   ", "BR")
		assert.ErrorContains(t, err, "cannot be empty")
		_, err = NewCountry("B", "BR")
		assert.ErrorContains(t, err, "at least 2")
		_, err = NewCountry(strings.Repeat("a", 101), "BR")
		assert.ErrorContains(t, err, "cannot exceed 100")
		_, err = NewCountry(strings.Repeat("a", 100), "BR")
		assert.NoError(t, err)
	})

	t.Run("invalid iso code", func(t *testing.T) {
		_, err := NewCountry("Brazil", "BRA")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestCountryBehaviour(t *testing.T) {
	c, err := NewCountry("Brazil", "BR")
	require.NoError(t, err)

	t.Run("rename keeps old name on failure", func(t *testing.T) {
		require.Error(t, c.Rename("X"))
		assert.Equal(t, "Brazil", c.Name)
		require.NoError(t, c.Rename(" Brasil "))
		assert.Equal(t, "Brasil", c.Name)
	})

	t.Run("activation toggles", func(t *testing.T) {
		c.Deactivate()
		assert.False(t, c.IsActive)
		c.Activate()
		assert.True(t, c.IsActive)
	})

	t.Run("sameness is by iso code", func(t *testing.T) {
		other, err := NewCountry("Federative Republic of Brazil", "br")
		require.NoError(t, err)
		other.ID = 99
		assert.True(t, c.SameCountry(other))

		de, err := NewCountry("Germany", "DE")
		require.NoError(t, err)
		assert.False(t, c.SameCountry(de))
		assert.False(t, c.SameCountry(nil))
	})

	t.Run("string form", func(t *testing.T) {
		assert.Equal(t, "Brasil (BR)", c.String())
	})
}

func TestCountryPatch(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		assert.True(t, CountryPatch{}.IsEmpty())
	})

	t.Run("applies only supplied fields", func(t *testing.T) {
		c, err := NewCountry("Brazil", "BR")
		require.NoError(t, err)
		inactive := false

		require.NoError(t, CountryPatch{IsActive: &inactive}.Apply(c))
		assert.Equal(t, "Brazil", c.Name)
		assert.False(t, c.IsActive)
	})

	t.Run("invalid name is rejected", func(t *testing.T) {
		c, err := NewCountry("Brazil", "BR")
		require.NoError(t, err)
		bad := ""
		assert.Error(t, CountryPatch{Name: &bad}.Apply(c))
		assert.Equal(t, "Brazil", c.Name)
	})

	t.Run("replaces iso code", func(t *testing.T) {
		c, err := NewCountry("Brazil", "BR")
		require.NoError(t, err)
		code, err := ParseISOCode("bz")
		require.NoError(t, err)
		require.NoError(t, CountryPatch{ISOCode: &code}.Apply(c))
		assert.Equal(t, "BZ", c.ISOCode.String())
	})
}
