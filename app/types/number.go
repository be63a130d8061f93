package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a request field that accepts a JSON number or a numeric string.
// Browser forms post every value as a string, so both {"seats":3} and
// {"seats":"3"} bind. null and "" leave it empty.
type Number string

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(s))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = Number(num.String())
	return nil
}

func (n Number) Empty() bool {
	return strings.TrimSpace(string(n)) == ""
}

func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
}

func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
}
