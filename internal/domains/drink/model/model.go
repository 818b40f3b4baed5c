package model

import "arcade/shared/model"

const (
	TableName  = "drinks"
	EntityName = "drink"

	FieldID    = "id"
	FieldName  = "name"
	FieldPrice = "price"
)

type Drink struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Price int    `db:"price"`
	model.Metadata
}
