package mapping

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// rawRecord is a decoded JSON object from the backend.
type rawRecord map[string]any

// toRecord turns the accepted raw shapes into a rawRecord. ok is false for anything
// that is not an object.
func toRecord(raw any) (rawRecord, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return rawRecord(v), true
	case rawRecord:
		return v, true
	case json.RawMessage:
		return decodeRecord(v)
	case []byte:
		return decodeRecord(v)
	default:
		return nil, false
	}
}

func decodeRecord(data []byte) (rawRecord, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil || m == nil {
		return nil, false
	}
	return rawRecord(m), true
}

// first returns the value under the first key (in priority order) that holds a non-nil
// value. Keys may be dotted paths into nested objects, e.g. "fromAccount.id".
func (r rawRecord) first(keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := r.path(key); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r rawRecord) path(key string) (any, bool) {
	parts := strings.Split(key, ".")
	var cur any = map[string]any(r)
	for _, part := range parts {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func (r rawRecord) string(keys ...string) string {
	for _, key := range keys {
		v, ok := r.path(key)
		if !ok {
			continue
		}
		if s, ok := asString(v); ok && s != "" {
			return s
		}
	}
	return ""
}

func (r rawRecord) decimal(keys ...string) (decimal.Decimal, bool) {
	for _, key := range keys {
		v, ok := r.path(key)
		if !ok {
			continue
		}
		if d, ok := asDecimal(v); ok {
			return d, true
		}
	}
	return decimal.Zero, false
}

func (r rawRecord) time(keys ...string) (time.Time, bool) {
	for _, key := range keys {
		v, ok := r.path(key)
		if !ok {
			continue
		}
		if t, ok := asTime(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// asString renders identifiers and codes. Numeric ids (1, 1.0, "1") all become "1".
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case json.Number:
		return s.String(), true
	case float64:
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return "", false
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case int:
		return strconv.Itoa(s), true
	case int32:
		return strconv.FormatInt(int64(s), 10), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case uint64:
		return strconv.FormatUint(s, 10), true
	case decimal.Decimal:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return "", false
	}
}

func asDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero, false
		}
		return *n, true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		if cleaned == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(cleaned)
		return d, err == nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	default:
		return decimal.Zero, false
	}
}

// asBool accepts real booleans and the string spellings seen in backend payloads.
func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToUpper(strings.TrimSpace(b)) {
		case "TRUE", "Y", "YES", "1":
			return true, true
		case "FALSE", "N", "NO", "0":
			return false, true
		}
	case json.Number:
		switch b.String() {
		case "1":
			return true, true
		case "0":
			return false, true
		}
	case float64:
		return b != 0, true
	}
	return false, false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
const epochMillisThreshold = 1e11

// asTime parses backend timestamps. Zone-less values are taken as UTC.
func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t.UTC(), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), true
			}
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return epochToTime(d)
		}
		return time.Time{}, false
	case []any:
		return jacksonArrayToTime(t)
	default:
		if d, ok := asDecimal(v); ok {
			return epochToTime(d)
		}
		return time.Time{}, false
	}
}

func epochToTime(d decimal.Decimal) (time.Time, bool) {
	if !d.IsPositive() {
		return time.Time{}, false
	}
	if d.GreaterThanOrEqual(decimal.NewFromFloat(epochMillisThreshold)) {
		return time.UnixMilli(d.IntPart()).UTC(), true
	}
	return time.Unix(d.IntPart(), 0).UTC(), true
}

// jacksonArrayToTime handles LocalDateTime serialized as [year, month, day, hour, minute, second, nanos].
func jacksonArrayToTime(parts []any) (time.Time, bool) {
	if len(parts) < 3 {
		return time.Time{}, false
	}
	fields := make([]int, 7)
	for i := 0; i < len(parts) && i < len(fields); i++ {
		d, ok := asDecimal(parts[i])
		if !ok {
			return time.Time{}, false
		}
		fields[i] = int(d.IntPart())
	}
	if fields[1] < 1 || fields[1] > 12 || fields[2] < 1 || fields[2] > 31 {
		return time.Time{}, false
	}
	return time.Date(fields[0], time.Month(fields[1]), fields[2], fields[3], fields[4], fields[5], fields[6], time.UTC), true
}
