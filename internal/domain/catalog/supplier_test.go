package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	supplier, err := NewSupplier(uuid.New(), "  Distribuidora Sul ")
	require.NoError(t, err)
	assert.Equal(t, "Distribuidora Sul", supplier.Name)
	assert.True(t, supplier.IsActive)

	_, err = NewSupplier(uuid.New(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name cannot be empty")
}

func TestSupplier_SetContact(t *testing.T) {
	supplier, err := NewSupplier(uuid.New(), "Distribuidora Sul")
	require.NoError(t, err)

	t.Run("valid contact", func(t *testing.T) {
		require.NoError(t, supplier.SetContact("Ana", "+55 (11) 99999-0000", "ana@example.com"))
		assert.Equal(t, "ana@example.com", supplier.Email)
	})

	t.Run("invalid phone", func(t *testing.T) {
		err := supplier.SetContact("Ana", "call me", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "phone")
	})

	t.Run("invalid email", func(t *testing.T) {
		err := supplier.SetContact("Ana", "", "not-an-email")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})
}

func TestSupplier_Activation(t *testing.T) {
	supplier, err := NewSupplier(uuid.New(), "Distribuidora Sul")
	require.NoError(t, err)

	supplier.Deactivate()
	assert.False(t, supplier.IsActive)
	supplier.Activate()
	assert.True(t, supplier.IsActive)
	assert.Equal(t, 3, supplier.GetVersion())
}
