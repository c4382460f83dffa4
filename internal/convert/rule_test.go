package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleInvert(t *testing.T) {
	rule := Rule{From: Pound, To: Kilogram, Factor: 0.45359237}
	inverted := rule.invert()

	assert.Equal(t, Kilogram, inverted.From)
	assert.Equal(t, Pound, inverted.To)
	assert.InDelta(t, 2.20462262, inverted.Factor, 1e-7)
}

func TestRuleCombine(t *testing.T) {
	lbToKg := Rule{From: Pound, To: Kilogram, Factor: 0.45359237}
	kgToTon := Rule{From: Kilogram, To: MetricTon, Factor: 0.001}

	combined := lbToKg.combine(kgToTon)
	assert.Equal(t, Pound, combined.From)
	assert.Equal(t, MetricTon, combined.To)
	assert.InDelta(t, 0.00045359237, combined.Factor, 1e-12)
}

func TestRuleCombineSelfLoop(t *testing.T) {
	lbToKg := Rule{From: Pound, To: Kilogram, Factor: 0.45359237}
	kgToLb := lbToKg.invert()

	combined := lbToKg.combine(kgToLb)
	assert.Equal(t, Pound, combined.From)
	assert.Equal(t, Pound, combined.To)
	assert.Equal(t, 1.0, combined.Factor)
}

func TestRuleCombineMetricCeil(t *testing.T) {
	// kg -> lb -> g multiplies to just under 1000; a metric pair above
	// 1.0 is corrected to the exact integer.
	kgToLb := Rule{From: Pound, To: Kilogram, Factor: 0.45359237}.invert()
	lbToG := Rule{From: Pound, To: Gram, Factor: 453.59237}

	combined := kgToLb.combine(lbToG)
	assert.Equal(t, 1000.0, combined.Factor)
}

func TestRuleCombineNoCeilBelowOne(t *testing.T) {
	gToKg := Rule{From: Gram, To: Kilogram, Factor: 0.001}
	kgToTon := Rule{From: Kilogram, To: MetricTon, Factor: 0.001}

	combined := gToKg.combine(kgToTon)
	assert.InDelta(t, 0.000001, combined.Factor, 1e-12)
	assert.Less(t, combined.Factor, 1.0)
}

func TestRuleCombineNoCeilForPound(t *testing.T) {
	kgToLb := Rule{From: Kilogram, To: Pound, Factor: 2.20462262}
	tonToKg := Rule{From: MetricTon, To: Kilogram, Factor: 1000.0}

	// metric -> pound keeps its fractional factor even above 1.0
	combined := tonToKg.combine(kgToLb)
	assert.InDelta(t, 2204.62262, combined.Factor, 1e-4)
	assert.NotEqual(t, float64(int64(combined.Factor)), combined.Factor)
}
