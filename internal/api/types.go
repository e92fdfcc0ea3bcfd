package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Number возвращает десятичное значение в виде JSON-числа без потери точности.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// LoginRequest описывает тело POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest описывает тело POST /users.
type RegisterRequest struct {
	Nama     string `json:"nama"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest описывает тело PUT /users/current.
type UpdateUserRequest struct {
	Nama     *string `json:"nama,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserResponse описывает пользователя в ответах API; Token заполняется при входе и регистрации.
type UserResponse struct {
	ID    int64  `json:"id,omitempty"`
	Nama  string `json:"nama"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

// CustomerRequest описывает тело POST /customers.
type CustomerRequest struct {
	Nama    string      `json:"nama"`
	Balance json.Number `json:"balance"`
}

// CustomerPatchRequest описывает тело PUT /customers/{id}.
type CustomerPatchRequest struct {
	Nama    *string      `json:"nama,omitempty"`
	Balance *json.Number `json:"balance,omitempty"`
}

// CustomerResponse описывает покупателя в ответах API.
type CustomerResponse struct {
	ID      int64           `json:"id"`
	Nama    string          `json:"nama"`
	Balance decimal.Decimal `json:"balance"`
	UserID  int64           `json:"userId"`
}

// ProductRequest описывает тело POST /products.
type ProductRequest struct {
	Nama  string      `json:"nama"`
	Price json.Number `json:"price"`
}

// ProductPatchRequest описывает тело PUT /products/{id}.
type ProductPatchRequest struct {
	Nama  *string      `json:"nama,omitempty"`
	Price *json.Number `json:"price,omitempty"`
}

// ProductResponse описывает товар в ответах API.
type ProductResponse struct {
	ID     int64           `json:"id"`
	Nama   string          `json:"nama"`
	Price  decimal.Decimal `json:"price"`
	UserID int64           `json:"userId"`
}

// OrderRequest описывает строку заказа в теле POST /queue.
type OrderRequest struct {
	ProductID int64       `json:"productId"`
	Quantity  int         `json:"quantity"`
	Discount  json.Number `json:"discount"`
}

// QueueRequest описывает тело POST /queue.
type QueueRequest struct {
	CustomerID int64          `json:"customerId"`
	StatusID   int64          `json:"statusId"`
	PaymentID  *int64         `json:"paymentId,omitempty"`
	Note       *string        `json:"note,omitempty"`
	Orders     []OrderRequest `json:"orders"`
}

// QueuePatchRequest описывает тело PUT /queue/{id}.
type QueuePatchRequest struct {
	StatusID  *int64  `json:"statusId,omitempty"`
	PaymentID *int64  `json:"paymentId,omitempty"`
	Note      *string `json:"note,omitempty"`
}

// OrderResponse описывает строку сохранённой очереди.
type OrderResponse struct {
	ProductID  int64            `json:"productId"`
	Product    *ProductResponse `json:"product,omitempty"`
	Quantity   int              `json:"quantity"`
	Discount   decimal.Decimal  `json:"discount"`
	TotalPrice decimal.Decimal  `json:"totalPrice"`
}

// QueueResponse описывает сохранённую очередь.
type QueueResponse struct {
	ID         int64             `json:"id"`
	CustomerID int64             `json:"customerId"`
	Customer   *CustomerResponse `json:"customer,omitempty"`
	StatusID   int64             `json:"statusId"`
	PaymentID  *int64            `json:"paymentId,omitempty"`
	Note       *string           `json:"note,omitempty"`
	Total      decimal.Decimal   `json:"total"`
	UserID     int64             `json:"userId"`
	Orders     []OrderResponse   `json:"orders"`
}
