package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
)

// CurrencyLot is one foreign-currency purchase awaiting disposal. Amount and
// CostBase shrink in place while the lot is partially consumed; a fully
// consumed lot is removed from its queue.
type CurrencyLot struct {
	Amount     float64 // foreign units remaining
	RateToBase float64 // GBP per foreign unit at acquisition
	Acquired   time.Time
	CostBase   float64 // GBP cost remaining
}

// CurrencyLotQueue holds the unconsumed purchase lots for one currency,
// oldest first. Unlike share holdings, currency disposals match their
// originating purchases under UK rules rather than pooling, so disposal is
// strict FIFO rather than Section 104 averaging.
//
// A queue is constructed fresh for every calculation run and must never be
// shared across runs.
type CurrencyLotQueue struct {
	Currency string
	lots     []*CurrencyLot
}

// NewCurrencyLotQueue returns an empty queue for the given currency.
func NewCurrencyLotQueue(currency string) *CurrencyLotQueue {
	return &CurrencyLotQueue{Currency: currency}
}

// Purchase appends a new lot to the back of the queue.
func (q *CurrencyLotQueue) Purchase(amount, rateToBase float64, acquired time.Time) {
	q.lots = append(q.lots, &CurrencyLot{
		Amount:     amount,
		RateToBase: rateToBase,
		Acquired:   acquired,
		CostBase:   amount * rateToBase,
	})
}

// Remaining returns the total foreign amount still held in the queue.
func (q *CurrencyLotQueue) Remaining() float64 {
	var total float64
	for _, lot := range q.lots {
		total += lot.Amount
	}
	return total
}

// Dispose consumes amount foreign units from the front of the queue and
// realizes the gain against the current rate.
//
// Lots are consumed whole from the front; the last lot touched is split in
// place. If the queue empties before the disposal is satisfied the queue is
// left untouched and ErrInsufficientCurrency is returned: the disposal asks
// for more than was ever purchased, which is fatal for that transaction only.
func (q *CurrencyLotQueue) Dispose(amount, currentRate float64, date time.Time) (model.CurrencyGainLoss, error) {
	if amount > q.Remaining() {
		return model.CurrencyGainLoss{}, fmt.Errorf(
			"%w: %s: requested %.2f, held %.2f", ErrInsufficientCurrency, q.Currency, amount, q.Remaining())
	}

	remaining := amount
	var costConsumed float64
	var rateWeighted float64 // sum(consumed amount * acquisition rate)

	for remaining > 0 && len(q.lots) > 0 {
		front := q.lots[0]
		if front.Amount <= remaining {
			// Consume the lot whole.
			remaining -= front.Amount
			costConsumed += front.CostBase
			rateWeighted += front.Amount * front.RateToBase
			q.lots = q.lots[1:]
			continue
		}
		// Split: take the remainder proportionally and shrink the lot in place.
		portion := remaining / front.Amount
		cost := front.CostBase * portion
		costConsumed += cost
		rateWeighted += remaining * front.RateToBase
		front.Amount -= remaining
		front.CostBase -= cost
		remaining = 0
	}

	proceeds := amount * currentRate

	return model.CurrencyGainLoss{
		Currency:             q.Currency,
		DisposalDate:         date,
		AmountForeign:        amount,
		ProceedsBase:         proceeds,
		CostBasisBase:        costConsumed,
		GainLossBase:         proceeds - costConsumed,
		ExchangeRateOriginal: rateWeighted / amount,
	}, nil
}

// matchCurrency drives one currency's exchange transactions, already sorted
// ascending by date, through a fresh FIFO lot queue. Positive quantities are
// purchases of the foreign currency, negative quantities disposals.
func matchCurrency(log *slog.Logger, currency string, txs []model.Transaction) ([]model.CurrencyGainLoss, []model.SkippedTransaction) {
	queue := NewCurrencyLotQueue(currency)

	var gains []model.CurrencyGainLoss
	var skipped []model.SkippedTransaction

	for _, tx := range txs {
		if tx.Kind != model.KindCurrencyExchange {
			continue
		}
		if tx.Quantity > 0 {
			queue.Purchase(tx.Quantity, tx.RateToBase, tx.Date)
			continue
		}
		if tx.Quantity == 0 {
			continue
		}

		gain, err := queue.Dispose(-tx.Quantity, tx.RateToBase, tx.Date)
		if err != nil {
			log.Warn("currency disposal skipped",
				"transactionId", tx.ID, "currency", currency, "error", err)
			skipped = append(skipped, model.SkippedTransaction{
				TransactionID: tx.ID,
				Kind:          tx.Kind,
				Reason:        err.Error(),
			})
			continue
		}
		gains = append(gains, gain)
	}

	return gains, skipped
}
