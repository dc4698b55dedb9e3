package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.00000001":         "0.00000001",
		"0.000000011":        "0.00000002",
		"1.0000000000000001": "1.00000001",
		"99.999999990000001": "100",
		"5":                  "5",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 8)
			t.Log(k, c)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}
