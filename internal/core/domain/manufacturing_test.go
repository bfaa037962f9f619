package domain_test

import (
	"testing"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_ActiveTerminal(t *testing.T) {
	active := []domain.OrderStatus{
		domain.OrderInProgress, domain.OrderCasting, domain.OrderCrafting,
		domain.OrderPolishing, domain.OrderTribolish, domain.OrderQCPending,
	}
	for _, status := range active {
		assert.True(t, status.Active(), "%s should be active", status)
		assert.False(t, status.Terminal(), "%s should not be terminal", status)
	}

	terminal := []domain.OrderStatus{domain.OrderCompleted, domain.OrderCancelled, domain.OrderMerged}
	for _, status := range terminal {
		assert.True(t, status.Terminal(), "%s should be terminal", status)
		assert.False(t, status.Active(), "%s should not be active", status)
	}

	assert.False(t, domain.OrderDraft.Active())
	assert.False(t, domain.OrderDraft.Terminal())
	assert.False(t, domain.OrderQCFailed.Active())
	assert.False(t, domain.OrderQCFailed.Terminal())
}

func TestManufacturingOrder_WeightDerivations(t *testing.T) {
	tests := []struct {
		name         string
		input        int64
		output       int64
		powder       int64
		stones       int64
		wantConsumed int64
		wantScrap    int64
		wantGain     int64
	}{
		{name: "typical loss", input: 100, output: 95, powder: 3, wantConsumed: 98, wantScrap: 2, wantGain: 0},
		{name: "stones reduce consumption", input: 100, output: 95, powder: 3, stones: 5, wantConsumed: 93, wantScrap: 7, wantGain: 0},
		{name: "exact balance", input: 100, output: 98, powder: 2, wantConsumed: 100, wantScrap: 0, wantGain: 0},
		{name: "gain clamps scrap to zero", input: 100, output: 103, powder: 2, wantConsumed: 105, wantScrap: 0, wantGain: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := domain.ManufacturingOrder{
				InputWeight:      decimal.NewFromInt(tt.input),
				OutputWeight:     decimal.NewFromInt(tt.output),
				PowderWeight:     decimal.NewFromInt(tt.powder),
				TotalStoneWeight: decimal.NewFromInt(tt.stones),
			}

			assert.True(t, order.ConsumedWeight().Equal(decimal.NewFromInt(tt.wantConsumed)), "consumed: got %s", order.ConsumedWeight())
			assert.True(t, order.ComputeScrapWeight().Equal(decimal.NewFromInt(tt.wantScrap)), "scrap: got %s", order.ComputeScrapWeight())
			assert.True(t, order.GainWeight().Equal(decimal.NewFromInt(tt.wantGain)), "gain: got %s", order.GainWeight())
		})
	}
}

func TestProductionStage_ComputeLossWeight(t *testing.T) {
	stage := domain.ProductionStage{
		InputWeight:  decimal.NewFromInt(100),
		OutputWeight: decimal.NewFromInt(97),
		PowderWeight: decimal.NewFromInt(1),
	}
	assert.True(t, stage.ComputeLossWeight().Equal(decimal.NewFromInt(2)))

	// Laser welding adds solder; the loss goes negative and stays negative.
	gainStage := domain.ProductionStage{
		InputWeight:  decimal.NewFromInt(100),
		OutputWeight: decimal.NewFromInt(104),
	}
	assert.True(t, gainStage.ComputeLossWeight().Equal(decimal.NewFromInt(-4)))
}

func TestOrderStone_GoldEquivalent(t *testing.T) {
	caratStone := domain.OrderStone{Unit: domain.UnitCarat, Quantity: decimal.NewFromInt(15)}
	assert.True(t, caratStone.GoldEquivalent().Equal(decimal.New(3, 0)))

	gramStone := domain.OrderStone{Unit: domain.UnitGram, Quantity: decimal.NewFromInt(4)}
	assert.True(t, gramStone.GoldEquivalent().Equal(decimal.NewFromInt(4)))
}
