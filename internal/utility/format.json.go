package utility

import (
	"encoding/json"
)

// P2Float64 chuyển đổi interface thành float64
func P2Float64(input interface{}) float64 {
	jsonNumber, ok := input.(json.Number)
	if !ok {
		return 0
	}
	number, err := jsonNumber.Float64()
	if err != nil {
		return 0
	}

	return number
}

// P2Int64 chuyển đổi interface thành int64
func P2Int64(input interface{}) int64 {
	jsonNumber, ok := input.(json.Number)
	if !ok {
		return 0
	}
	result, err := jsonNumber.Int64()
	if err != nil {
		return 0
	}

	return result
}
