// Package model defines database models for persistence layer.
package model

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// OffsetList stores reminder offsets as a Postgres integer array ("{-3,0}").
// Other dialects keep the same literal in a text column.
type OffsetList []int

// Value implements driver.Valuer.
func (o OffsetList) Value() (driver.Value, error) {
	if o == nil {
		return pq.Int64Array{}.Value()
	}
	values := make(pq.Int64Array, len(o))
	for i, offset := range o {
		values[i] = int64(offset)
	}
	return values.Value()
}

// Scan implements sql.Scanner.
func (o *OffsetList) Scan(src interface{}) error {
	var values pq.Int64Array
	if err := values.Scan(src); err != nil {
		return err
	}
	list := make(OffsetList, len(values))
	for i, value := range values {
		list[i] = int(value)
	}
	*o = list
	return nil
}

// GormDBDataType picks the column type per dialect.
func (OffsetList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "integer[]"
	}
	return "text"
}
