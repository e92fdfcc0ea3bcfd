// Package model содержит доменные сущности клиента: покупателей, товары и очереди (заказы).
package model

import "github.com/shopspring/decimal"

// User представляет аутентифицированного пользователя сервиса.
type User struct {
	ID    int64
	Name  string
	Email string
}

// Session содержит пользователя и выданный сервером токен.
type Session struct {
	User  User
	Token string
}

// UserPatch описывает изменяемые поля профиля текущего пользователя.
type UserPatch struct {
	Name     *string
	Password *string
}

// Customer описывает покупателя, принадлежащего пользователю OwnerUserID.
type Customer struct {
	ID          int64
	Name        string
	Balance     decimal.Decimal
	OwnerUserID int64
}

// OwnerID возвращает идентификатор владельца записи.
func (c Customer) OwnerID() int64 { return c.OwnerUserID }

// CustomerInput содержит данные для создания покупателя.
type CustomerInput struct {
	Name    string
	Balance decimal.Decimal
}

// CustomerPatch содержит изменяемые поля покупателя; nil означает «не менять».
type CustomerPatch struct {
	Name    *string
	Balance *decimal.Decimal
}

// Product описывает товар, принадлежащий пользователю OwnerUserID.
type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	OwnerUserID int64
}

// OwnerID возвращает идентификатор владельца записи.
func (p Product) OwnerID() int64 { return p.OwnerUserID }

// ProductInput содержит данные для создания товара.
type ProductInput struct {
	Name  string
	Price decimal.Decimal
}

// ProductPatch содержит изменяемые поля товара; nil означает «не менять».
type ProductPatch struct {
	Name  *string
	Price *decimal.Decimal
}

// Owned реализуют записи, которые фильтруются по владельцу.
type Owned interface {
	OwnerID() int64
}
