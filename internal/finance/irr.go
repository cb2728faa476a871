package finance

import "math"

const (
	irrLowerBound   = -0.9999
	irrUpperBound   = 10.0
	irrWidenFactor  = 1.5
	irrMaxWidenings = 20
	irrUpperLimit   = 1e6
	irrMaxIter      = 200
	irrTolerance    = 1e-6

	singularityEps = 1e-12
)

// NPV discounts flows at rate per period; flows[0] is undiscounted.
// A rate within 1e-12 of -1 is nudged off the singularity.
func NPV(rate float64, flows []float64) float64 {
	if math.Abs(1+rate) < singularityEps {
		rate = -1 + singularityEps
	}
	base := 1 + rate
	sum := 0.0
	for t, cf := range flows {
		sum += cf / math.Pow(base, float64(t))
	}
	return sum
}

// IRR returns the periodic rate at which NPV(rate, flows) is zero, found by
// bisection. It returns 0 when flows cannot change sign, when no bracket is
// found, or when the search leaves the finite range. The result always lies
// inside the bracket.
func IRR(flows []float64) float64 {
	if len(flows) == 0 || !hasSignChange(flows) {
		return 0
	}

	lo, fLo, ok := finiteLowerBound(flows)
	if !ok {
		return 0
	}
	hi := irrUpperBound
	fHi := NPV(hi, flows)

	for tries := 0; !opposite(fLo, fHi) && tries < irrMaxWidenings; tries++ {
		hi *= irrWidenFactor
		if hi > irrUpperLimit {
			return 0
		}
		fHi = NPV(hi, flows)
	}
	if !opposite(fLo, fHi) {
		return 0
	}

	for i := 0; i < irrMaxIter; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(mid, flows)
		if math.Abs(fMid) < irrTolerance {
			return mid
		}
		// lo is finite, but keep NaN moving lo in case a sum overflows above it.
		if math.IsNaN(fMid) || opposite(fMid, fHi) {
			lo = mid
		} else {
			hi, fHi = mid, fMid
		}
	}
	mid := (lo + hi) / 2
	if math.IsNaN(mid) || math.IsInf(mid, 0) {
		return 0
	}
	return mid
}

// finiteLowerBound walks the lower endpoint up from just above -1 until NPV
// is finite there. Long series overflow near -1 and mixed-sign terms then sum
// to NaN, which would hide a bracketed root.
func finiteLowerBound(flows []float64) (float64, float64, bool) {
	for d := 1 + irrLowerBound; d < 1; d *= 2 {
		lo := -1 + d
		if f := NPV(lo, flows); !math.IsNaN(f) && !math.IsInf(f, 0) {
			return lo, f, true
		}
	}
	return 0, 0, false
}

// Annualize compounds a monthly rate over twelve periods.
func Annualize(monthly float64) float64 {
	r := math.Pow(1+monthly, 12) - 1
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

func hasSignChange(flows []float64) bool {
	var pos, neg bool
	for _, cf := range flows {
		if cf > 0 {
			pos = true
		} else if cf < 0 {
			neg = true
		}
	}
	return pos && neg
}

// opposite reports whether a and b are strictly of opposite sign.
// NaN never brackets; ±Inf keeps its sign.
func opposite(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return (a < 0 && b > 0) || (a > 0 && b < 0)
}
