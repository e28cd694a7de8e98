package engine

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestPositionPool_Section104 tests the average-cost pool behaviour.
//
// WHY: the Section 104 pool is the basis of every capital gain figure this
// system reports. The scenario numbers are worked examples that must hold
// exactly.
func TestPositionPool_Section104(t *testing.T) {
	t.Run("buys merge into one average-cost pool and sells remove proportional cost", func(t *testing.T) {
		pool := NewPositionPool("GB00TEST0001")

		// BUY 100 @ £10, BUY 50 @ £15
		pool.Buy(100, 10, 1.0, 0)
		pool.Buy(50, 15, 1.0, 0)

		if !almostEqual(pool.Quantity, 150) {
			t.Errorf("Expected pool quantity 150, got %v", pool.Quantity)
		}
		if !almostEqual(pool.CostBasis, 1750) {
			t.Errorf("Expected pool cost 1750, got %v", pool.CostBasis)
		}

		// SELL 75 @ £20: cost removed = 1750 * 75/150 = 875, gain = 1500 - 875
		gain, warning, ok := pool.Sell(model.Transaction{
			ID: "tx-sell", Quantity: -75, Price: 20, RateToBase: 1.0, Date: day(2024, 6, 1),
		})
		if !ok {
			t.Fatal("Expected disposal to be emitted")
		}
		if warning != nil {
			t.Errorf("Expected no warning, got %q", warning.Message)
		}
		if !almostEqual(gain.ProceedsBase, 1500) {
			t.Errorf("Expected proceeds 1500, got %v", gain.ProceedsBase)
		}
		if !almostEqual(gain.CostBasisBase, 875) {
			t.Errorf("Expected cost removed 875, got %v", gain.CostBasisBase)
		}
		if !almostEqual(gain.GainLossBase, 625) {
			t.Errorf("Expected gain 625, got %v", gain.GainLossBase)
		}
		if !almostEqual(pool.Quantity, 75) || !almostEqual(pool.CostBasis, 875) {
			t.Errorf("Expected pool 75 units / £875 after sale, got %v / %v", pool.Quantity, pool.CostBasis)
		}
	})

	t.Run("buy commission joins the cost basis", func(t *testing.T) {
		pool := NewPositionPool("GB00TEST0001")
		pool.Buy(10, 100, 1.0, 12.50)

		if !almostEqual(pool.CostBasis, 1012.50) {
			t.Errorf("Expected cost 1012.50 including commission, got %v", pool.CostBasis)
		}
	})

	t.Run("foreign-currency buy converts through the rate", func(t *testing.T) {
		pool := NewPositionPool("US0000TEST09")
		// 10 units at $150, $1 = £0.80
		pool.Buy(10, 150, 0.80, 0)

		if !almostEqual(pool.CostBasis, 1200) {
			t.Errorf("Expected cost £1200, got %v", pool.CostBasis)
		}
	})
}

// TestPositionPool_Oversell tests the clamp-and-warn behaviour for sells that
// exceed the pooled quantity.
//
// WHY: an oversell usually means a missed BUY upstream. The disposal is
// clamped so a summary can still be produced, but the condition must surface
// as a warning instead of being swallowed.
func TestPositionPool_Oversell(t *testing.T) {
	t.Run("oversell clamps to pool contents and warns", func(t *testing.T) {
		pool := NewPositionPool("GB00TEST0001")
		pool.Buy(50, 10, 1.0, 0)

		gain, warning, ok := pool.Sell(model.Transaction{
			ID: "tx-over", Quantity: -80, Price: 12, RateToBase: 1.0, Date: day(2024, 7, 1),
		})
		if !ok {
			t.Fatal("Expected disposal to be emitted")
		}
		if warning == nil {
			t.Fatal("Expected oversell warning, got nil")
		}
		// The whole pool cost leaves; proceeds still reflect the reported sale.
		if !almostEqual(gain.CostBasisBase, 500) {
			t.Errorf("Expected full pool cost 500 removed, got %v", gain.CostBasisBase)
		}
		if !almostEqual(pool.Quantity, 0) || !almostEqual(pool.CostBasis, 0) {
			t.Errorf("Expected empty pool after oversell, got %v / %v", pool.Quantity, pool.CostBasis)
		}
	})

	t.Run("sell against empty pool emits nothing", func(t *testing.T) {
		pool := NewPositionPool("GB00TEST0001")

		_, _, ok := pool.Sell(model.Transaction{
			ID: "tx-empty", Quantity: -10, Price: 12, RateToBase: 1.0, Date: day(2024, 7, 1),
		})
		if ok {
			t.Error("Expected no disposal against an empty pool")
		}
	})
}

// TestPositionPool_NonNegativity tests the pool invariants over arbitrary
// sequences.
//
// WHY: quantity and cost must never go negative, and an empty pool must carry
// zero cost, for any transaction sequence.
func TestPositionPool_NonNegativity(t *testing.T) {
	pool := NewPositionPool("GB00TEST0001")

	steps := []struct {
		buyQty  float64
		sellQty float64
	}{
		{buyQty: 10}, {sellQty: 4}, {sellQty: 20}, {buyQty: 5}, {sellQty: 5}, {sellQty: 1},
	}

	for i, step := range steps {
		if step.buyQty > 0 {
			pool.Buy(step.buyQty, 10, 1.0, 0)
		} else {
			pool.Sell(model.Transaction{Quantity: -step.sellQty, Price: 10, RateToBase: 1.0, Date: day(2024, 1, 1+i)})
		}
		if pool.Quantity < 0 {
			t.Fatalf("Step %d: quantity went negative: %v", i, pool.Quantity)
		}
		if pool.CostBasis < 0 {
			t.Fatalf("Step %d: cost basis went negative: %v", i, pool.CostBasis)
		}
		if pool.Quantity == 0 && pool.CostBasis != 0 {
			t.Fatalf("Step %d: empty pool holds cost %v", i, pool.CostBasis)
		}
	}
}

// TestMatchDisposals tests the per-security matching pass.
//
// WHY: the matcher must process in date order, skip empty-pool sells as
// data-quality conditions, and apply splits without touching cost.
func TestMatchDisposals(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("split adjusts quantity without cost change", func(t *testing.T) {
		txs := []model.Transaction{
			{ID: "b1", Kind: model.KindBuy, Quantity: 100, Price: 10, RateToBase: 1.0, Date: day(2024, 5, 1)},
			{ID: "sp", Kind: model.KindSplit, Quantity: 100, RateToBase: 1.0, Date: day(2024, 6, 1)}, // 2-for-1
			{ID: "s1", Kind: model.KindSell, Quantity: -100, Price: 6, RateToBase: 1.0, Date: day(2024, 7, 1)},
		}

		gains, warnings, skipped := matchDisposals(log, "GB00TEST0001", txs)

		if len(warnings) != 0 || len(skipped) != 0 {
			t.Fatalf("Expected clean run, got %d warnings %d skipped", len(warnings), len(skipped))
		}
		if len(gains) != 1 {
			t.Fatalf("Expected 1 disposal, got %d", len(gains))
		}
		// 100 of 200 post-split units: half the £1000 cost leaves.
		if !almostEqual(gains[0].CostBasisBase, 500) {
			t.Errorf("Expected cost removed 500, got %v", gains[0].CostBasisBase)
		}
	})

	t.Run("empty-pool sell is skipped and later sells still match", func(t *testing.T) {
		txs := []model.Transaction{
			{ID: "s0", Kind: model.KindSell, Quantity: -10, Price: 10, RateToBase: 1.0, Date: day(2024, 4, 10)},
			{ID: "b1", Kind: model.KindBuy, Quantity: 10, Price: 10, RateToBase: 1.0, Date: day(2024, 5, 1)},
			{ID: "s1", Kind: model.KindSell, Quantity: -10, Price: 15, RateToBase: 1.0, Date: day(2024, 6, 1)},
		}

		gains, _, skipped := matchDisposals(log, "GB00TEST0001", txs)

		if len(skipped) != 1 || skipped[0].TransactionID != "s0" {
			t.Fatalf("Expected s0 skipped, got %+v", skipped)
		}
		if len(gains) != 1 || !almostEqual(gains[0].GainLossBase, 50) {
			t.Fatalf("Expected one disposal with gain 50, got %+v", gains)
		}
	})
}
