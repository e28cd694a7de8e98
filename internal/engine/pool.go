package engine

import (
	"fmt"
	"log/slog"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
)

// PositionPool is a Section 104 average-cost pool for one security: all
// acquisitions merge into a single running quantity and GBP cost basis, and
// disposals remove cost proportionally.
//
// Invariants: Quantity >= 0, CostBasis >= 0, and Quantity == 0 implies
// CostBasis == 0. A pool is constructed fresh for every calculation run and
// must never be shared across runs.
type PositionPool struct {
	SecurityID string
	Quantity   float64
	CostBasis  float64 // GBP
}

// NewPositionPool returns an empty pool for the given security.
func NewPositionPool(securityID string) *PositionPool {
	return &PositionPool{SecurityID: securityID}
}

// Buy merges an acquisition into the pool. Cost is the full GBP consideration
// including commission.
func (p *PositionPool) Buy(quantity, price, rateToBase, commission float64) {
	p.Quantity += quantity
	p.CostBasis += quantity*price*rateToBase + commission
}

// AdjustQuantity applies a quantity-only corporate action (stock split) to the
// pool. The cost basis is unchanged: a split redistributes the same cost over
// a different share count.
func (p *PositionPool) AdjustQuantity(delta float64) {
	p.Quantity += delta
	if p.Quantity < 0 {
		p.Quantity = 0
	}
	if p.Quantity == 0 {
		p.CostBasis = 0
	}
}

// Sell matches a disposal against the pool and returns the realized gain.
//
// The proportional share of the pooled cost leaves the pool with the disposed
// quantity. An oversell (sellQty > pool quantity) is clamped to the pool
// contents and reported through the returned Warning rather than swallowed:
// it usually means a missed BUY upstream, and the caller should surface it.
//
// ok is false when the pool is empty, in which case no disposal is emitted;
// that is a data-quality condition, not a fatal error.
func (p *PositionPool) Sell(tx model.Transaction) (gain model.DisposalGain, warning *model.Warning, ok bool) {
	sellQty := tx.Quantity
	if sellQty < 0 {
		sellQty = -sellQty
	}

	if p.Quantity <= 0 {
		return model.DisposalGain{}, nil, false
	}

	proportion := sellQty / p.Quantity
	if proportion > 1 {
		proportion = 1
		warning = &model.Warning{
			TransactionID: tx.ID,
			SecurityID:    p.SecurityID,
			Message: fmt.Sprintf("sell of %.4f exceeds pooled quantity %.4f; disposal clamped to pool",
				sellQty, p.Quantity),
		}
	}

	costRemoved := p.CostBasis * proportion
	proceeds := sellQty*tx.Price*tx.RateToBase - tx.Commission

	gain = model.DisposalGain{
		SecurityID:    p.SecurityID,
		DisposalDate:  tx.Date,
		Quantity:      sellQty,
		ProceedsBase:  proceeds,
		CostBasisBase: costRemoved,
		GainLossBase:  proceeds - costRemoved,
	}

	p.Quantity -= sellQty
	if p.Quantity < 0 {
		p.Quantity = 0
	}
	p.CostBasis -= costRemoved
	if p.CostBasis < 0 {
		p.CostBasis = 0
	}
	if p.Quantity == 0 {
		p.CostBasis = 0
	}

	return gain, warning, true
}

// matchDisposals drives one security's transactions, already sorted ascending
// by date, through a fresh Section 104 pool. It returns the realized disposal
// gains plus any oversell warnings and skipped sells.
func matchDisposals(log *slog.Logger, securityID string, txs []model.Transaction) ([]model.DisposalGain, []model.Warning, []model.SkippedTransaction) {
	pool := NewPositionPool(securityID)

	var gains []model.DisposalGain
	var warnings []model.Warning
	var skipped []model.SkippedTransaction

	for _, tx := range txs {
		switch tx.Kind {
		case model.KindBuy:
			pool.Buy(tx.Quantity, tx.Price, tx.RateToBase, tx.Commission)
		case model.KindSplit:
			pool.AdjustQuantity(tx.Quantity)
		case model.KindSell:
			gain, warning, ok := pool.Sell(tx)
			if !ok {
				log.Warn("sell against empty position skipped",
					"transactionId", tx.ID, "securityId", securityID, "date", tx.Date)
				skipped = append(skipped, model.SkippedTransaction{
					TransactionID: tx.ID,
					Kind:          tx.Kind,
					Reason:        "sell against empty position",
				})
				continue
			}
			if warning != nil {
				log.Warn("oversell clamped to pooled quantity",
					"transactionId", tx.ID, "securityId", securityID)
				warnings = append(warnings, *warning)
			}
			gains = append(gains, gain)
		}
	}

	return gains, warnings, skipped
}
