package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// StringList is a jsonb-backed []string column (image URLs).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSONColumn(src, l)
}

func (items CartItems) Value() (driver.Value, error) {
	if items == nil {
		items = CartItems{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (items *CartItems) Scan(src interface{}) error {
	return scanJSONColumn(src, items)
}

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		items = OrderItems{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (items *OrderItems) Scan(src interface{}) error {
	return scanJSONColumn(src, items)
}

func scanJSONColumn(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.Errorf("unsupported column type %T", src)
	}
}
