package value

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/matzehuels/sparklines/pkg/errors"
)

// ParseJSON decodes a serialized series. The document must be an array whose
// elements are numbers, strings, null or {"label": ..., "value": ...} objects.
func ParseJSON(data []byte) ([]Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.Value("values document is empty")
	}
	if trimmed[0] != '[' {
		return nil, errors.Value("values must be an array")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeValue, err, "malformed values document")
	}

	out := make([]Value, len(raw))
	for i, item := range raw {
		if err := out[i].UnmarshalJSON(item); err != nil {
			return nil, errors.Value("value at index %d: %s", i, errors.UserMessage(err))
		}
	}
	return out, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Label *string         `json:"label"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return errors.Wrap(errors.ErrCodeValue, err, "malformed value object")
		}
		if obj.Label == nil {
			return errors.Value("value object must have a label")
		}
		s := None()
		if len(obj.Value) > 0 {
			var err error
			if s, err = decodeScalar(obj.Value); err != nil {
				return err
			}
		}
		*v = WithLabel(*obj.Label, s)
		return nil
	}

	s, err := decodeScalar(data)
	if err != nil {
		return err
	}
	*v = Of(s)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Labeled {
		return v.Scalar.MarshalJSON()
	}
	return json.Marshal(struct {
		Label string `json:"label"`
		Value Scalar `json:"value"`
	}{v.Label, v.Scalar})
}

// MarshalJSON implements json.Marshaler. Non-finite numbers cannot be encoded.
func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case KindNumber:
		if math.IsNaN(s.num) || math.IsInf(s.num, 0) {
			return nil, errors.Value("cannot encode non-finite number %s", s.String())
		}
		return []byte(strconv.FormatFloat(s.num, 'g', -1, 64)), nil
	case KindString:
		return json.Marshal(s.str)
	default:
		return []byte("null"), nil
	}
}

func decodeScalar(data []byte) (Scalar, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Scalar{}, errors.Value("empty value")
	}
	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return Scalar{}, errors.Value("malformed value %s", data)
		}
		return None(), nil
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return Scalar{}, errors.Wrap(errors.ErrCodeValue, err, "malformed string value")
		}
		return Str(str), nil
	case 't', 'f':
		return Scalar{}, errors.Value("unsupported boolean value %s", data)
	case '{', '[':
		return Scalar{}, errors.Value("nested values are not supported")
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return Scalar{}, errors.Value("invalid infinite number %s", data)
		}
		return Scalar{}, errors.Value("malformed value %s", data)
	}
	return Num(f), nil
}
