package models

import "strings"

const (
	EntityUser         = "User"
	EntityOrder        = "Order"
	EntityProduct      = "Product"
	EntityOrderProduct = "OrderProduct"
)

// UserPrimaryKey is the constraint Postgres names for the users primary key.
const UserPrimaryKey = "users_pkey"

type OnDelete string

const (
	Cascade  OnDelete = "CASCADE"
	Restrict OnDelete = "RESTRICT"
	SetNull  OnDelete = "SET NULL"
)

type ForeignKey struct {
	Name      string
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  OnDelete
}

type Entity struct {
	Name        string
	Model       any
	ForeignKeys []ForeignKey
}

func (e Entity) Table() string { return TableName(e.Name) }

// TableName derives the storage name of an entity: lowercase plus "s".
func TableName(entity string) string {
	return strings.ToLower(entity) + "s"
}

// Entities lists every entity in dependency order: a referenced table always
// comes before the tables that reference it.
func Entities() []Entity {
	users := TableName(EntityUser)
	orders := TableName(EntityOrder)
	products := TableName(EntityProduct)
	links := TableName(EntityOrderProduct)

	return []Entity{
		{
			Name:  EntityUser,
			Model: &User{},
			ForeignKeys: []ForeignKey{
				{Name: users + "_referrer_id_fkey", Column: "referrer_id", RefTable: users, RefColumn: "telegram_id", OnDelete: SetNull},
			},
		},
		{
			Name:  EntityOrder,
			Model: &Order{},
			ForeignKeys: []ForeignKey{
				{Name: orders + "_user_id_fkey", Column: "user_id", RefTable: users, RefColumn: "telegram_id", OnDelete: Cascade},
			},
		},
		{
			Name:  EntityProduct,
			Model: &Product{},
		},
		{
			Name:  EntityOrderProduct,
			Model: &OrderProduct{},
			ForeignKeys: []ForeignKey{
				{Name: links + "_order_id_fkey", Column: "order_id", RefTable: orders, RefColumn: "order_id", OnDelete: Cascade},
				{Name: links + "_product_id_fkey", Column: "product_id", RefTable: products, RefColumn: "product_id", OnDelete: Restrict},
			},
		},
	}
}
