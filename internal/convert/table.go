package convert

import (
	"fmt"
	"strconv"
	"sync"
)

// Known direct conversions. Everything else in the table is derived from
// these by inversion and composition.
var knownConversions = [][3]string{
	{"lb", "kg", "0.45359237"},
	{"lb", "g", "453.59237"},
	{"kg", "lb", "2.20462262"},
	{"kg", "metric ton", "0.001"},
}

// resultDigits is the fixed number of fractional digits in a conversion
// result.
const resultDigits = 8

// Table holds one conversion rule for every ordered pair of units,
// including self pairs. It is built once and read-only afterwards.
type Table struct {
	rules map[pair]Rule
}

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// Default returns the process-wide table, building it on first use.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = NewTable()
	})
	return defaultTable
}

// NewTable derives the complete conversion table from the known direct
// conversions. A malformed entry in the known set is a programming error
// and panics.
func NewTable() *Table {
	seeds := make([]Rule, 0, len(knownConversions))
	for _, known := range knownConversions {
		seeds = append(seeds, parseKnownConversion(known))
	}

	return &Table{rules: closure(seeds)}
}

func parseKnownConversion(known [3]string) Rule {
	from, err := ParseUnit(known[0])
	if err != nil {
		panic(fmt.Sprintf("known conversion table: %v", err))
	}
	to, err := ParseUnit(known[1])
	if err != nil {
		panic(fmt.Sprintf("known conversion table: %v", err))
	}
	factor, err := strconv.ParseFloat(known[2], 64)
	if err != nil {
		panic(fmt.Sprintf("known conversion table: parse factor %q: %v", known[2], err))
	}

	return Rule{From: from, To: to, Factor: factor}
}

// closure expands the seed rules until every ordered pair of units has a
// rule. Each pass iterates an immutable snapshot of the working set in
// insertion order and merges new rules afterwards, so derived factors are
// identical across runs.
func closure(seeds []Rule) map[pair]Rule {
	target := len(Units()) * len(Units())

	rules := make(map[pair]Rule, target)
	order := make([]pair, 0, target)
	insert := func(r Rule) bool {
		if _, ok := rules[r.key()]; ok {
			return false
		}
		rules[r.key()] = r
		order = append(order, r.key())
		return true
	}

	for _, seed := range seeds {
		insert(seed)
		insert(seed.invert())
	}

	for len(rules) < target {
		snapshot := make([]pair, len(order))
		copy(snapshot, order)

		before := len(rules)
		for _, rk := range snapshot {
			rule := rules[rk]
			for _, sk := range snapshot {
				if sk.from != rk.to {
					continue
				}
				combined := rule.combine(rules[sk])
				if insert(combined) {
					insert(combined.invert())
				}
			}
		}

		if len(rules) == before {
			panic(fmt.Sprintf("conversion closure stalled at %d of %d rules", len(rules), target))
		}
	}

	return rules
}

// Rule returns the conversion rule for the ordered unit pair.
func (t *Table) Rule(from, to Unit) (Rule, bool) {
	rule, ok := t.rules[pair{from: from, to: to}]
	return rule, ok
}

// Len reports the number of rules in the table.
func (t *Table) Len() int {
	return len(t.rules)
}

// Convert applies the (from, to) rule to quantity and rounds the result
// to eight fractional digits. A missing rule means the closure did not
// cover the unit set, which is a programming error, not a caller error.
func (t *Table) Convert(from, to Unit, quantity float64) float64 {
	rule, ok := t.Rule(from, to)
	if !ok {
		panic(fmt.Sprintf("conversion table has no rule for %s -> %s", from, to))
	}

	return roundResult(rule.apply(quantity))
}

// roundResult rounds through fixed-precision formatting, mirroring the
// wire representation of results.
func roundResult(value float64) float64 {
	formatted := strconv.FormatFloat(value, 'f', resultDigits, 64)
	rounded, err := strconv.ParseFloat(formatted, 64)
	if err != nil {
		panic(fmt.Sprintf("re-parse formatted result %q: %v", formatted, err))
	}
	return rounded
}
