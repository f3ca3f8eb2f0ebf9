package tools_test

import (
	"errors"
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/toolhub/pkg/service/tools"
)

func TestCalculatePercentage(t *testing.T) {
	got, err := tools.CalculatePercentage(200, 15)
	gt.NoError(t, err).Required()
	gt.Value(t, got.OriginalValue).Equal(200.0)
	gt.Value(t, got.Percentage).Equal(15.0)
	gt.Value(t, got.Result).Equal(30.0)
	gt.Value(t, got.IncreasedValue).Equal(230.0)
	gt.Value(t, got.DecreasedValue).Equal(170.0)
}

func TestCalculatePercentage_NoRounding(t *testing.T) {
	got, err := tools.CalculatePercentage(10, 33.3333)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Result).Equal(10 * 33.3333 / 100)
}

func TestCalculatePercentage_Linear(t *testing.T) {
	cases := [][2]float64{
		{0, 50},
		{100, 0},
		{-40, 25},
		{1234.5678, -12.5},
		{1e10, 0.001},
		{0.1, 0.2},
	}

	for _, c := range cases {
		got, err := tools.CalculatePercentage(c[0], c[1])
		gt.NoError(t, err).Required()
		gt.Value(t, got.Result).Equal(c[0] * c[1] / 100)

		diff := got.IncreasedValue - got.DecreasedValue
		gt.Bool(t, math.Abs(diff-2*got.Result) <= 1e-9*math.Max(1, math.Abs(got.Result))).True()
	}
}

func TestCalculatePercentage_Overflow(t *testing.T) {
	_, err := tools.CalculatePercentage(math.MaxFloat64, math.MaxFloat64)
	gt.Value(t, err).NotNil()
	gt.Bool(t, errors.Is(err, tools.ErrOperation)).True()

	msg, ok := tools.OperationMessage(err)
	gt.Bool(t, ok).True()
	gt.Value(t, msg).Equal("result is out of range")
}
