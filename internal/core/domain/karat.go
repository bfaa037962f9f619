package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Karat is the closed set of gold purity grades the ledger tracks.
// Each grade has its own weight balance on treasuries and workshops.
type Karat string

const (
	Karat18 Karat = "18"
	Karat21 Karat = "21"
	Karat24 Karat = "24"

	// KaratNone marks records that carry no gold weight (pure cash movements).
	KaratNone Karat = ""
)

// ErrUnsupportedKarat is returned when a weight-bearing record names a purity
// grade outside the closed 18/21/24 set. The affected update is rejected, never
// silently dropped.
var ErrUnsupportedKarat = errors.New("unsupported karat")

// ParseKarat resolves a free-form purity label ("18", "18K", "عيار 21", ...)
// to its Karat grade. Labels that do not contain a known grade fail with
// ErrUnsupportedKarat.
func ParseKarat(label string) (Karat, error) {
	switch {
	case strings.Contains(label, "18"):
		return Karat18, nil
	case strings.Contains(label, "21"):
		return Karat21, nil
	case strings.Contains(label, "24"):
		return Karat24, nil
	}
	return KaratNone, ErrUnsupportedKarat
}

// Valid reports whether k is one of the tracked grades.
func (k Karat) Valid() bool {
	return k == Karat18 || k == Karat21 || k == Karat24
}

// KaratWeights holds one gold-weight balance per tracked karat, in grams.
type KaratWeights struct {
	K18 decimal.Decimal `json:"k18"`
	K21 decimal.Decimal `json:"k21"`
	K24 decimal.Decimal `json:"k24"`
}

// Get returns the weight balance for the given karat.
func (w KaratWeights) Get(k Karat) (decimal.Decimal, error) {
	switch k {
	case Karat18:
		return w.K18, nil
	case Karat21:
		return w.K21, nil
	case Karat24:
		return w.K24, nil
	}
	return decimal.Zero, ErrUnsupportedKarat
}

// Add applies a signed weight delta to the balance of the given karat.
func (w *KaratWeights) Add(k Karat, delta decimal.Decimal) error {
	switch k {
	case Karat18:
		w.K18 = w.K18.Add(delta)
	case Karat21:
		w.K21 = w.K21.Add(delta)
	case Karat24:
		w.K24 = w.K24.Add(delta)
	default:
		return ErrUnsupportedKarat
	}
	return nil
}

// Total returns the sum of all karat balances.
func (w KaratWeights) Total() decimal.Decimal {
	return w.K18.Add(w.K21).Add(w.K24)
}

// StoneUnit is the measurement unit of a gemstone quantity.
type StoneUnit string

const (
	UnitCarat StoneUnit = "carat"
	UnitGram  StoneUnit = "gram"
	UnitCm    StoneUnit = "cm"
)

// caratToGram is the tahyaaf factor: one gemstone carat displaces 0.2 grams of
// gold when computing net gold weight.
var caratToGram = decimal.New(2, -1)

// StoneGoldEquivalent converts a gemstone quantity to its gold-gram
// equivalent. Carat quantities use the 0.2 g/ct tahyaaf factor, gram
// quantities count at face weight, and any other unit contributes zero.
func StoneGoldEquivalent(unit StoneUnit, quantity decimal.Decimal) decimal.Decimal {
	switch unit {
	case UnitCarat:
		return quantity.Mul(caratToGram)
	case UnitGram:
		return quantity
	}
	return decimal.Zero
}
