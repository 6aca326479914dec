package listing

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidPrice rejects price input that is not an integer >= 1.
var ErrInvalidPrice = errors.New("listing: price must be a positive integer")

// ErrImageLimit rejects media beyond the per-listing cap.
var ErrImageLimit = errors.New("listing: image limit reached")

type priceKind int

const (
	priceUnset priceKind = iota
	priceAwaiting
	priceFree
	priceAmount
)

// Price is a tagged variant replacing the 0/-1 sentinel integers of the
// wire format: Unset (purpose not chosen yet), Awaiting (numeric input
// pending), Free (no price clause), or a whole-ruble Amount.
type Price struct {
	kind   priceKind
	amount int
}

// AwaitingPrice marks the draft as waiting for numeric price input.
func AwaitingPrice() Price { return Price{kind: priceAwaiting} }

// FreePrice resolves the price stage for free categories.
func FreePrice() Price { return Price{kind: priceFree} }

// PriceOf wraps a concrete amount in whole rubles.
func PriceOf(amount int) Price { return Price{kind: priceAmount, amount: amount} }

// Unset reports whether no purpose has resolved the price yet.
func (p Price) Unset() bool { return p.kind == priceUnset }

// Awaiting reports whether numeric input is still required.
func (p Price) Awaiting() bool { return p.kind == priceAwaiting }

// Free reports whether the listing publishes without a price clause.
func (p Price) Free() bool { return p.kind == priceFree }

// Resolved reports whether the price stage is finished.
func (p Price) Resolved() bool { return p.kind == priceFree || p.kind == priceAmount }

// Amount returns the concrete price when one was entered.
func (p Price) Amount() (int, bool) {
	if p.kind != priceAmount {
		return 0, false
	}
	return p.amount, true
}

// ParsePrice validates stage-2 text input. Anything that is not an
// integer >= 1 is rejected and the stage does not advance.
func ParsePrice(text string) (Price, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return Price{}, ErrInvalidPrice
	}
	return PriceOf(n), nil
}
