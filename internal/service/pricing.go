package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/models"
)

// ComputeTotal derives the order total from the base unit price, the
// extras registry, and the base quantity:
//
//	(price + Σ extra.quantity * extra.value) * foodQuantity
//
// Pure function; callers recompute it on every read instead of caching.
func ComputeTotal(basePrice float64, extras []models.Extra, foodQuantity int) float64 {
	var extraTotal float64
	for _, extra := range extras {
		extraTotal += float64(extra.Quantity) * extra.Value
	}

	return (basePrice + extraTotal) * float64(foodQuantity)
}

// FormatValue renders a numeric value as a pt-BR currency string,
// e.g. 1234.5 -> "R$ 1.234,50".
func FormatValue(value float64) string {
	negative := value < 0 || math.Signbit(value)

	cents := int64(math.Round(math.Abs(value) * 100))
	intPart := cents / 100
	fracPart := cents % 100

	digits := strconv.FormatInt(intPart, 10)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	frac := strconv.FormatInt(fracPart, 10)
	if len(frac) == 1 {
		frac = "0" + frac
	}

	sign := ""
	if negative && cents != 0 {
		sign = "-"
	}

	return "R$ " + sign + b.String() + "," + frac
}
