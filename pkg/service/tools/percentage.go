package tools

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
)

// CalculatePercentage computes value * percentage / 100 and the value
// increased and decreased by it. No rounding is applied.
func CalculatePercentage(value, percentage float64) (*model.PercentageResult, error) {
	result := value * percentage / 100
	out := &model.PercentageResult{
		OriginalValue:  value,
		Percentage:     percentage,
		Result:         result,
		IncreasedValue: value + result,
		DecreasedValue: value - result,
	}

	for _, v := range []float64{out.Result, out.IncreasedValue, out.DecreasedValue} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, newOperationError("result is out of range", nil,
				goerr.V("value", value),
				goerr.V("percentage", percentage))
		}
	}
	return out, nil
}
