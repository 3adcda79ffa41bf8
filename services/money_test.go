package services

import (
	"testing"

	"quotation-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestFilterItemsDropsBlankDescriptions(t *testing.T) {
	items := []models.QuotationItem{
		{Description: "Consulting", Price: 100},
		{Description: "", Price: 50},
		{Description: "   ", Price: 25},
		{Description: "Implementation\n- phase 1\n- phase 2", Price: 200.50},
	}

	kept := FilterItems(items)
	assert.Len(t, kept, 2)
	assert.Equal(t, "Consulting", kept[0].Description)
	assert.Equal(t, 200.50, kept[1].Price)
}

func TestComputeTotalsWithVat(t *testing.T) {
	items := FilterItems([]models.QuotationItem{
		{Description: "A", Price: 100.00},
		{Description: "", Price: 50},
		{Description: "B", Price: 200.50},
	})

	subTotal, vat, grandTotal := ComputeTotals(items, true)
	assert.Equal(t, 300.50, subTotal)
	assert.Equal(t, 21.04, vat) // 300.50 * 0.07 = 21.035, rounded half away from zero
	assert.Equal(t, 321.54, grandTotal)
}

func TestComputeTotalsWithoutVat(t *testing.T) {
	items := []models.QuotationItem{
		{Description: "A", Price: 100.00},
		{Description: "B", Price: 200.50},
	}

	subTotal, vat, grandTotal := ComputeTotals(items, false)
	assert.Equal(t, 300.50, subTotal)
	assert.Equal(t, 0.0, vat)
	assert.Equal(t, 300.50, grandTotal)
}

func TestComputeTotalsEmpty(t *testing.T) {
	subTotal, vat, grandTotal := ComputeTotals(nil, true)
	assert.Equal(t, 0.0, subTotal)
	assert.Equal(t, 0.0, vat)
	assert.Equal(t, 0.0, grandTotal)
}

func TestComputeTotalsZeroPriceItemCounts(t *testing.T) {
	items := []models.QuotationItem{
		{Description: "Free rider", Price: 0},
		{Description: "Paid", Price: 10},
	}

	subTotal, _, grandTotal := ComputeTotals(items, false)
	assert.Equal(t, 10.0, subTotal)
	assert.Equal(t, 10.0, grandTotal)
}
