package model

import (
	"time"

	"arcade/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID        = "id"
	FieldName      = "name"
	FieldPhone     = "phone"
	FieldHours     = "hours"
	FieldDiscount  = "discount"
	FieldLastVisit = "last_visit"
)

// Customer is one ledger entry. Phone is the natural key; Hours is the
// cumulative play-hours balance credited at every checkout.
type Customer struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Phone     string    `db:"phone"`
	Hours     int       `db:"hours"`
	Discount  int       `db:"discount"`
	LastVisit time.Time `db:"last_visit"`
	model.Metadata
}
