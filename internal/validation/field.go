package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind описывает объявленный тип поля ресурса
type Kind int

const (
	KindAny      Kind = iota // любое JSON значение
	KindString               // строка
	KindInteger              // целое число
	KindFloat                // число с плавающей точкой
	KindBoolean              // true/false
	KindChoice               // строка из закрытого набора значений
	KindID                   // ссылка на другой ресурс (целое число или null)
	KindJSON                 // произвольная JSON структура
	KindDateTime             // RFC3339 timestamp
)

var kindNames = map[Kind]string{
	KindAny:      "any",
	KindString:   "string",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindBoolean:  "boolean",
	KindChoice:   "choice",
	KindID:       "id",
	KindJSON:     "json",
	KindDateTime: "datetime",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var (
	// ErrValueNotAllowed indicates that the value is outside the declared allowed set
	ErrValueNotAllowed = errors.New("value not permitted")

	// ErrTypeMismatch indicates that the value does not match the declared kind
	ErrTypeMismatch = errors.New("type mismatch")
)

// ValidationError describes a rejected field write. Nothing was mutated.
type ValidationError struct {
	Value any
	Err   error
	Field string
	Kind  Kind
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Err, ErrValueNotAllowed) {
		return fmt.Sprintf("field %q: value %v not permitted", e.Field, e.Value)
	}
	return fmt.Sprintf("field %q: expected %s, got %T", e.Field, e.Kind, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SetField проверяет value на принадлежность allowed (если задан) и на
// соответствие kind, после чего передает нормализованное значение в apply.
// При ошибке apply не вызывается.
func SetField(name string, value any, kind Kind, allowed []any, apply func(string, any)) error {
	normalized, err := Validate(name, value, kind, allowed)
	if err != nil {
		return err
	}
	apply(name, normalized)
	return nil
}

// Validate returns value normalized for kind (integers as int64, floats as float64)
// or a *ValidationError.
func Validate(name string, value any, kind Kind, allowed []any) (any, error) {
	if len(allowed) > 0 && !contains(allowed, value) {
		return nil, &ValidationError{Field: name, Value: value, Kind: kind, Err: ErrValueNotAllowed}
	}

	normalized, ok := normalize(value, kind)
	if !ok {
		return nil, &ValidationError{Field: name, Value: value, Kind: kind, Err: ErrTypeMismatch}
	}
	return normalized, nil
}

func normalize(value any, kind Kind) (any, bool) {
	switch kind {
	case KindAny:
		return value, true
	case KindString, KindChoice:
		s, ok := value.(string)
		return s, ok
	case KindDateTime:
		switch v := value.(type) {
		case string:
			return v, true
		case time.Time:
			return v.UTC().Format(time.RFC3339), true
		}
		return nil, false
	case KindBoolean:
		b, ok := value.(bool)
		return b, ok
	case KindInteger:
		return boxInt64(value)
	case KindID:
		// ссылку можно сбросить в null
		if value == nil {
			return nil, true
		}
		return boxInt64(value)
	case KindFloat:
		if i, ok := toInt64(value); ok {
			return float64(i), true
		}
		switch v := value.(type) {
		case float64:
			return v, true
		case float32:
			return float64(v), true
		}
		return nil, false
	case KindJSON:
		if !isJSONValue(value) {
			return nil, false
		}
		return value, true
	}
	return nil, false
}

func boxInt64(value any) (any, bool) {
	i, ok := toInt64(value)
	if !ok {
		return nil, false
	}
	return i, true
}

// 2^63, первое значение float64 за пределами int64
const int64Bound = float64(1 << 63)

// FloatToInt64 converts a whole float64 to int64, rejecting fractions and
// values outside the int64 range.
func FloatToInt64(v float64) (int64, bool) {
	if v != math.Trunc(v) || math.IsInf(v, 0) || v < -int64Bound || v >= int64Bound {
		return 0, false
	}
	return int64(v), true
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float64:
		// JSON декодирует числа как float64
		return FloatToInt64(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func isJSONValue(value any) bool {
	switch v := value.(type) {
	case nil, string, bool, float64, float32, json.Number,
		int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case map[string]any:
		for _, item := range v {
			if !isJSONValue(item) {
				return false
			}
		}
		return true
	case []any:
		for _, item := range v {
			if !isJSONValue(item) {
				return false
			}
		}
		return true
	}
	return false
}

func contains(allowed []any, value any) bool {
	for _, candidate := range allowed {
		if Equal(candidate, value) {
			return true
		}
	}
	return false
}

// Equal compares two scalar values, treating numbers of different Go types as equal
// when they hold the same value.
func Equal(a, b any) bool {
	if ai, ok := toInt64(a); ok {
		bi, ok := toInt64(b)
		return ok && ai == bi
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return false
}

// ParseValue converts command line text into a value of the given kind.
func ParseValue(kind Kind, text string) (any, error) {
	switch kind {
	case KindString, KindChoice, KindDateTime:
		return text, nil
	case KindBoolean:
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("%w: %q is not a boolean", ErrTypeMismatch, text)
	case KindInteger, KindID:
		trimmed := strings.TrimSpace(text)
		if kind == KindID && (trimmed == "null" || trimmed == "") {
			return nil, nil
		}
		i, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, text)
		}
		return i, nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrTypeMismatch, text)
		}
		return f, nil
	case KindJSON:
		var v any
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON: %v", ErrTypeMismatch, err)
		}
		return v, nil
	case KindAny:
		var v any
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			return text, nil
		}
		return v, nil
	}
	return nil, fmt.Errorf("unsupported kind %s", kind)
}
