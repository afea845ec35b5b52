package stocklocation_test

import (
	"testing"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stocklocation"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockLocation(t *testing.T) {
	parent := kernel.NewUUID()

	l, err := stocklocation.NewStockLocation(kernel.NewUUID(), "Shelf A", &parent)
	require.NoError(t, err)
	assert.Equal(t, "Shelf A", l.Name())
	assert.True(t, l.ParentID().IsEqual(parent))

	_, err = stocklocation.NewStockLocation(kernel.NewUUID(), "", nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = stocklocation.NewStockLocation(parent, "Loop", &parent)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
