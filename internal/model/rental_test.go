package model_test

import (
	"testing"

	"waterpark-pos/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRentalItemsQuantities(t *testing.T) {
	items := model.RentalItems{MaleCostume: 2, Tube: 1}

	q := items.Quantities()
	assert.Equal(t, map[string]int{
		model.ItemMaleCostume: 2,
		model.ItemTube:        1,
	}, q)
	assert.Equal(t, 3, items.Total())
}

func TestReturnBreakdownTotalDeduction(t *testing.T) {
	b := model.ReturnBreakdown{
		model.ItemTube:   {ReturnedGood: 1, Lost: 1, Deduction: 100},
		model.ItemLocker: {ReturnedDamaged: 1, Deduction: 30.50},
	}
	assert.InDelta(t, 130.50, b.TotalDeduction(), 0.001)
}

func TestReturnBreakdownEncode(t *testing.T) {
	b := model.ReturnBreakdown{
		model.ItemTube: {ReturnedGood: 2},
	}
	assert.Contains(t, b.Encode(), `"returned_good":2`)
}
