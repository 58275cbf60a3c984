package scoring

import "github.com/dotcommander/bananaq/internal/types"

// Fixed recommendation messages.
const (
	MessageAllOptimal = "All banana parameters are within optimal ranges. This is an excellent quality banana!"
	MessageStorageTip = "Store bananas at room temperature to allow proper ripening and development of sweetness."
)

// advice holds the messages for a value below or above a field's optimal range.
type advice struct {
	below string
	above string
}

var fieldAdvice = map[types.Field]advice{
	types.FieldSize: {
		below: "The banana size is too small. Look for larger varieties or improve growing conditions.",
		above: "The banana size is too large. Consider harvesting earlier or using different varieties.",
	},
	types.FieldWeight: {
		below: "The banana is underweight. Improve nutrition during growing phase.",
		above: "The banana is overweight. This might affect texture and taste.",
	},
	types.FieldSweetness: {
		below: "Sweetness is low. Consider allowing more time for ripening before consumption.",
		above: "Sweetness is very high. Ideal for desserts and smoothies.",
	},
	types.FieldSoftness: {
		below: "The banana is too firm. Allow more ripening time for better texture.",
		above: "The banana is too soft. Consider consuming sooner or using for baking.",
	},
	types.FieldHarvestTime: {
		below: "The banana was harvested quite early. May affect final ripening quality.",
		above: "The banana was harvested late. Monitor for faster ripening and shorter shelf life.",
	},
	types.FieldRipeness: {
		below: "Ripeness is low. Allow more time before consumption for optimal flavor.",
		above: "Ripeness is high. Consume soon or use for baking.",
	},
	types.FieldAcidity: {
		below: "Acidity is low. This banana will have a milder taste.",
		above: "Acidity is high. May have a stronger, tangier flavor.",
	},
}

// GenerateRecommendations returns one message per out-of-range field in field
// order, or MessageAllOptimal when every field is in range, followed by
// MessageStorageTip.
func (e *Engine) GenerateRecommendations(r types.Record) []string {
	var recommendations []string

	for _, f := range types.Fields {
		value := r.Value(f)
		rng := e.profile.Range(f)
		switch {
		case value < rng.Min:
			recommendations = append(recommendations, fieldAdvice[f].below)
		case value > rng.Max:
			recommendations = append(recommendations, fieldAdvice[f].above)
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, MessageAllOptimal)
	}

	return append(recommendations, MessageStorageTip)
}
