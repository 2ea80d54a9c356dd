package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPriceProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	bases := gen.Int64Range(1, 1_000_000)
	percents := gen.Int64Range(0, 100)

	properties.Property("price is never negative", prop.ForAll(
		func(base, discount, tax int64) bool {
			return Price(base, discount, tax) >= 0
		},
		bases, percents, percents,
	))

	properties.Property("zero discount and tax keeps the base price", prop.ForAll(
		func(base int64) bool {
			return Price(base, 0, 0) == base
		},
		bases,
	))

	properties.Property("discount and tax are floored separately", prop.ForAll(
		func(base, discount, tax int64) bool {
			return Price(base, discount, tax) == base-(base*discount)/100+(base*tax)/100
		},
		bases, percents, percents,
	))

	properties.Property("a bigger discount never costs more", prop.ForAll(
		func(base, discount, tax int64) bool {
			if discount == 100 {
				return true
			}
			return Price(base, discount+1, tax) <= Price(base, discount, tax)
		},
		bases, percents, percents,
	))

	properties.TestingRun(t)
}
