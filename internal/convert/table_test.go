package convert

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableCompleteness(t *testing.T) {
	table := NewTable()

	units := Units()
	require.Equal(t, len(units)*len(units), table.Len())

	for _, from := range units {
		for _, to := range units {
			rule, ok := table.Rule(from, to)
			require.True(t, ok, "missing rule %s -> %s", from, to)
			assert.Equal(t, from, rule.From)
			assert.Equal(t, to, rule.To)
		}
	}
}

func TestConvertIdentity(t *testing.T) {
	table := NewTable()

	for _, unit := range Units() {
		for _, quantity := range []float64{0, 1, 2.5, 1234.5678, 1e6} {
			assert.Equal(t, quantity, table.Convert(unit, unit, quantity),
				"%s -> %s", unit, unit)
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	table := NewTable()

	for _, from := range Units() {
		for _, to := range Units() {
			if from == to {
				continue
			}
			quantity := 3.5
			back := table.Convert(to, from, table.Convert(from, to, quantity))
			assert.InEpsilon(t, quantity, back, 1e-5, "%s -> %s -> %s", from, to, from)
		}
	}
}

func TestConvertMetricIntegerCorrection(t *testing.T) {
	table := NewTable()

	// Derived metric-to-metric factors must land on exact values, with no
	// residue from chaining through pound.
	assert.Equal(t, 1000.0, table.Convert(Kilogram, Gram, 1.0))
	assert.Equal(t, 1000.0, table.Convert(MetricTon, Kilogram, 1.0))
	assert.Equal(t, 0.001, table.Convert(Kilogram, MetricTon, 1.0))
}

func TestConvertScenarios(t *testing.T) {
	tests := []struct {
		name     string
		from     Unit
		to       Unit
		quantity float64
		want     float64
	}{
		{name: "pound to gram", from: Pound, to: Gram, quantity: 1.0, want: 453.59237},
		{name: "pound to kilogram", from: Pound, to: Kilogram, quantity: 1.0, want: 0.45359237},
		{name: "pound to metric ton", from: Pound, to: MetricTon, quantity: 1.0, want: 0.00045359},
		{name: "kilogram to pound", from: Kilogram, to: Pound, quantity: 1.0, want: 2.20462262},
		{name: "gram to pound", from: Gram, to: Pound, quantity: 1.0, want: 0.00220462},
		{name: "gram to kilogram", from: Gram, to: Kilogram, quantity: 1.0, want: 0.001},
		{name: "gram to metric ton", from: Gram, to: MetricTon, quantity: 1.0, want: 0.000001},
		{name: "metric ton to pound", from: MetricTon, to: Pound, quantity: 1.0, want: 2204.62262185},
		{name: "metric ton to gram", from: MetricTon, to: Gram, quantity: 1.0, want: 1000000.0},
		{name: "ten pounds to kilogram", from: Pound, to: Kilogram, quantity: 10.0, want: 4.5359237},
	}

	table := NewTable()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, table.Convert(tt.from, tt.to, tt.quantity), 1e-5)
		})
	}
}

func TestConvertRounding(t *testing.T) {
	table := NewTable()

	// 2.20462262184877... truncates to eight fractional digits on the wire.
	got := table.Convert(Kilogram, Pound, 1.0)
	assert.Equal(t, 2.20462262, got)
}

func TestDefaultTableBuiltOnce(t *testing.T) {
	var (
		wg     sync.WaitGroup
		tables [8]*Table
	)
	for i := range tables {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			tables[i] = Default()
		}()
	}
	wg.Wait()

	for _, table := range tables {
		require.Same(t, tables[0], table)
	}
	assert.Equal(t, 16, tables[0].Len())
}
