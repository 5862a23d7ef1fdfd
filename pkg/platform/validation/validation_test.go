package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "sportify/pkg/domain-errors"
)

type sample struct {
	Name    string   `json:"name" validate:"required,min=2,max=10"`
	ISOCode string   `json:"iso_code" validate:"required,len=2,alpha"`
	Tags    []string `json:"tags" validate:"max=2"`
}

func TestStruct(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		assert.NoError(t, Struct(sample{Name: "Brazil", ISOCode: "BR"}))
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := Struct(sample{Name: "B", ISOCode: "B1"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Contains(t, err.Error(), "name must be at least 2 characters")
		assert.Contains(t, err.Error(), "iso_code")
	})

	t.Run("missing required field", func(t *testing.T) {
		err := Struct(sample{ISOCode: "BR"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("slice bounds use item wording", func(t *testing.T) {
		err := Struct(sample{Name: "Brazil", ISOCode: "BR", Tags: []string{"a", "b", "c"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tags must contain at most 2 items")
	})
}
