// internal/domain/homework/response.go
package homework

import (
	"encoding/json"
	"fmt"
	"math"
)

const (
	fieldHomeworks   = "homeworks"
	fieldCurrentDate = "current_date"
)

// Response is a validated API answer. Homeworks are ordered most recent first.
type Response struct {
	Homeworks      []any
	CurrentDate    int64
	HasCurrentDate bool
}

// ValidateResponse checks the shape of a decoded API answer before any of its
// fields are trusted. An empty homeworks list is valid.
func ValidateResponse(raw any) (*Response, error) {
	body, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: response is %T, expected an object", ErrType, raw)
	}

	value, ok := body[fieldHomeworks]
	if !ok {
		return nil, fmt.Errorf("%w: response has no %q field", ErrKey, fieldHomeworks)
	}
	homeworks, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, expected a list", ErrType, fieldHomeworks, value)
	}

	resp := &Response{Homeworks: homeworks}
	if value, ok := body[fieldCurrentDate]; ok && value != nil {
		date, err := toInt64(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrType, fieldCurrentDate, err)
		}
		resp.CurrentDate = date
		resp.HasCurrentDate = true
	}
	return resp, nil
}

// toInt64 accepts the numeric forms encoding/json can produce.
func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case json.Number:
		return v.Int64()
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%T is not an integer", value)
	}
}
