package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice stores a string list as a JSON array in a text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	data, err := scanText(value, "StringSlice")
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*s = StringSlice{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("StringSlice Scan: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*s = out
	return nil
}

// FloatSlice stores a float list as a JSON array in a text column.
type FloatSlice []float64

// Value implements the driver.Valuer interface
func (f FloatSlice) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (f *FloatSlice) Scan(value interface{}) error {
	data, err := scanText(value, "FloatSlice")
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*f = FloatSlice{}
		return nil
	}
	var out []float64
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("FloatSlice Scan: %w", err)
	}
	if out == nil {
		out = []float64{}
	}
	*f = out
	return nil
}

// JSONMap stores an arbitrary JSON object. A nil map is stored as NULL.
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *JSONMap) Scan(value interface{}) error {
	data, err := scanText(value, "JSONMap")
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("JSONMap Scan: %w", err)
	}
	*m = out
	return nil
}

// scanText normalizes a driver value to bytes. NULL, "" and "null" all scan as empty.
func scanText(value interface{}, typeName string) ([]byte, error) {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil, fmt.Errorf("%s Scan: unsupported type %T", typeName, value)
	}
	if string(data) == "null" {
		return nil, nil
	}
	return data, nil
}
