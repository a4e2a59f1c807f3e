// AngelaMos | 2026
// number.go

package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a loosely typed numeric input. It keeps the raw literal so
// that coercion and its failure are decided by the field validator, not
// by the JSON decoder.
type Number struct {
	raw    string
	quoted bool
}

func Float(f float64) Number {
	return Number{raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

func Int(i int) Number {
	return Number{raw: strconv.Itoa(i)}
}

// String builds a Number from a quoted literal, as a JSON string would.
func String(s string) Number {
	return Number{raw: s, quoted: true}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n.raw = s
		n.quoted = true
		return nil
	}

	n.raw = string(b)
	n.quoted = false
	return nil
}

// Float64 coerces the value to a finite float.
func (n Number) Float64() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(n.raw), 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Integer accepts only unquoted integer literals.
func (n Number) Integer() (int, bool) {
	if n.quoted {
		return 0, false
	}
	i, err := strconv.Atoi(n.raw)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (n Number) String() string {
	return n.raw
}
