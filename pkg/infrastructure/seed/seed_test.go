package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/importdesk/pkg/domain/services"
)

func TestSeedDataIsValid(t *testing.T) {
	for _, m := range Materials() {
		require.NoError(t, m.Validate(), m.Name)
	}

	var last int64
	for _, o := range Orders() {
		require.NoError(t, o.Validate(), o.OrderNumber)

		seq, ok := services.ParseOrderSequence(o.OrderNumber)
		require.True(t, ok)
		assert.Greater(t, seq, last)
		last = seq

		assert.True(t, o.TotalPrice.Equal(services.TotalPrice(&o.Material, o.Quantity, o.LogisticsCost)))
	}
	assert.EqualValues(t, LastOrderSequence, last)
}

func TestSeedReturnsFreshCopies(t *testing.T) {
	first := Materials()
	first[0].Name = "changed"
	first[0].RequiredDocuments[0] = "changed"

	second := Materials()
	assert.Equal(t, "Stainless Steel Sheet 304", second[0].Name)
	assert.Equal(t, "Commercial invoice", second[0].RequiredDocuments[0])
}
