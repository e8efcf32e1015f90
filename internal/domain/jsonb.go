package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// scanJSON decodes a jsonb column value into dst
func scanJSON(src interface{}, dst interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}

// valueJSON encodes v as JSON text for a jsonb parameter
func valueJSON(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (i *OrderItems) Scan(src interface{}) error { return scanJSON(src, i) }

// Value implements driver.Valuer
func (i OrderItems) Value() (driver.Value, error) {
	if i == nil {
		return "[]", nil
	}
	return valueJSON(i)
}

// Scan implements sql.Scanner
func (h *StatusHistory) Scan(src interface{}) error { return scanJSON(src, h) }

// Value implements driver.Valuer
func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	return valueJSON(h)
}

// Scan implements sql.Scanner
func (a *Address) Scan(src interface{}) error { return scanJSON(src, a) }

// Value implements driver.Valuer
func (a Address) Value() (driver.Value, error) {
	return valueJSON(a)
}
