package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ImageList is the ordered list of stored image filenames for a record,
// persisted as a JSON array in a text column. Earlier revisions of the
// schema comma-joined the names, which broke for filenames containing
// commas; migration 0003 rewrites those rows into JSON.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ImageList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("imagelist: cannot scan %T", src)
	}
	if len(b) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(b, l)
}
