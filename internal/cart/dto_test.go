package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
)

func TestBuildCartDTOTotals(t *testing.T) {
	items := []models.CartItem{
		{ID: uuid.New(), Quantity: 2, UnitPriceCents: 1000, ProductName: "Mug"},
		{ID: uuid.New(), Quantity: 1, UnitPriceCents: 2500, ProductName: "Shirt"},
	}

	dto := BuildCartDTO(items)
	assert.Len(t, dto.Items, 2)
	assert.Equal(t, 3, dto.ItemCount)
	assert.Equal(t, int64(4500), dto.SubtotalCents)
	assert.Equal(t, int64(2000), dto.Items[0].LineSubtotalCents)
	assert.Equal(t, int64(2500), dto.Items[1].LineSubtotalCents)
}

func TestBuildCartDTOEmpty(t *testing.T) {
	dto := BuildCartDTO(nil)
	assert.NotNil(t, dto.Items)
	assert.Empty(t, dto.Items)
	assert.Zero(t, dto.ItemCount)
	assert.Zero(t, dto.SubtotalCents)
}
