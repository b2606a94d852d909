package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice stores a []string as a JSON array in a text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	return jsonValue([]string(s))
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	var out []string
	if err := jsonScan(value, &out); err != nil {
		return fmt.Errorf("StringSlice: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*s = out
	return nil
}

// JSONList stores an ordered list of structs as a JSON array in a text column.
type JSONList[T any] []T

func (l JSONList[T]) Value() (driver.Value, error) {
	return jsonValue([]T(l))
}

func (l *JSONList[T]) Scan(value interface{}) error {
	var out []T
	if err := jsonScan(value, &out); err != nil {
		return fmt.Errorf("JSONList: %w", err)
	}
	if out == nil {
		out = []T{}
	}
	*l = out
	return nil
}

func jsonValue[T any](v []T) (driver.Value, error) {
	if v == nil {
		// nil 슬라이스는 빈 JSON 배열로 저장
		return "[]", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func jsonScan(value interface{}, dest interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported scan type %T", value)
	}
	// NULL, 빈 문자열, "null" 은 모두 빈 목록으로 처리
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
