package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Fee is a club membership fee. Clients send it as either a JSON number or a
// numeric string; it is always stored as a number.
type Fee float64

func (f *Fee) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		if str == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return err
		}
		*f = Fee(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Fee(v)
	return nil
}
