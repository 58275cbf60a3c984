package scoring

import (
	"fmt"

	"github.com/dotcommander/bananaq/internal/types"
)

// visualRule is one guarded case of a visual characteristic.
type visualRule struct {
	value string
	when  func(r types.Record) bool
}

// ruleChain resolves a characteristic from an ordered list of guarded cases.
// Every rule is evaluated top to bottom and the last matching rule wins; the
// fallback applies when none match.
type ruleChain struct {
	fallback string
	rules    []visualRule
}

func (c ruleChain) resolve(r types.Record) string {
	value := c.fallback
	for _, rule := range c.rules {
		if rule.when(r) {
			value = rule.value
		}
	}
	return value
}

var colorRules = ruleChain{
	fallback: "yellow",
	rules: []visualRule{
		{"green-yellow", func(r types.Record) bool { return r.Ripeness < 1.0 }},
		{"yellow-brown", func(r types.Record) bool { return r.Ripeness > 3.0 }},
	},
}

// Spotting tiers: "significant" overrides "moderate" when both match.
var spottingRules = ruleChain{
	fallback: "minimal",
	rules: []visualRule{
		{"moderate", func(r types.Record) bool { return r.Ripeness > 2.5 || r.HarvestTime > 0 }},
		{"significant", func(r types.Record) bool { return r.Ripeness > 3.5 || r.HarvestTime > 1 }},
	},
}

var shapeRules = ruleChain{
	fallback: "classic curved",
	rules: []visualRule{
		{"short and thick", func(r types.Record) bool { return r.Size < -1.5 && r.Weight > 2.0 }},
		{"long and thin", func(r types.Record) bool { return r.Size > 0 && r.Weight < 1.0 }},
		{"small and compact", func(r types.Record) bool { return r.Size < -2.0 && r.Weight < 1.0 }},
	},
}

// VisualCharacteristics derives color, spotting and shape tags from r.
func VisualCharacteristics(r types.Record) Visual {
	color := colorRules.resolve(r)
	spotting := spottingRules.resolve(r)
	shape := shapeRules.resolve(r)

	return Visual{
		Color:       color,
		Spotting:    spotting,
		Shape:       shape,
		Description: fmt.Sprintf("This banana appears %s with %s brown spotting. It has a %s shape.", color, spotting, shape),
	}
}
