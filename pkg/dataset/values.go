package dataset

import (
	"math"
	"strconv"
)

// NaN marks a missing numeric value. The figure serializer encodes NaN as
// JSON null, which the charting library treats as a gap.
var NaN = math.NaN()

// formatCell renders a single cell as a display string.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return ""
	}
}
