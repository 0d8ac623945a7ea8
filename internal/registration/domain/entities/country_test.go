package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regform/internal/registration/domain/entities"
)

func TestCountryListLifecycle(t *testing.T) {
	t.Run("zero value is pending and empty", func(t *testing.T) {
		var l entities.CountryList
		assert.Equal(t, entities.ListPending, l.State())
		assert.Zero(t, l.Len())
		assert.False(t, l.Contains("PL"))
	})

	t.Run("load keeps order and becomes read-only", func(t *testing.T) {
		var l entities.CountryList
		src := []entities.Country{{Code: "PL", Name: "Poland"}, {Code: "DE", Name: "Germany"}}

		require.NoError(t, l.Load(src))
		src[0].Code = "XX"

		assert.Equal(t, entities.ListLoaded, l.State())
		assert.Equal(t, "PL", l.Countries()[0].Code)
		assert.Equal(t, "DE", l.Countries()[1].Code)
		assert.True(t, l.Contains("DE"))
		assert.ErrorIs(t, l.Load(nil), entities.ErrCountryListSettled)
		assert.ErrorIs(t, l.Fail(errors.New("late")), entities.ErrCountryListSettled)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("failure leaves the list empty", func(t *testing.T) {
		var l entities.CountryList

		require.NoError(t, l.Fail(errors.New("network down")))

		assert.Equal(t, entities.ListFailed, l.State())
		assert.Equal(t, "network down", l.Failure())
		assert.Zero(t, l.Len())
		assert.ErrorIs(t, l.Load([]entities.Country{{Code: "PL"}}), entities.ErrCountryListSettled)
		assert.False(t, l.Contains("PL"))
	})
}

func TestListStateString(t *testing.T) {
	assert.Equal(t, "pending", entities.ListPending.String())
	assert.Equal(t, "loaded", entities.ListLoaded.String())
	assert.Equal(t, "failed", entities.ListFailed.String())
	assert.Equal(t, "unknown", entities.ListState(42).String())
}
