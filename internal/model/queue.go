package model

import "github.com/shopspring/decimal"

// OrderLine описывает строку собираемой очереди. TotalPrice всегда вычисляется
// как Product.Price*Quantity - Discount и не задаётся вызывающим кодом.
type OrderLine struct {
	Product    Product
	Quantity   int
	Discount   decimal.Decimal
	TotalPrice decimal.Decimal
}

// OrderItem описывает строку заказа в том виде, в котором она уходит на сервер.
type OrderItem struct {
	ProductID int64
	Quantity  int
	Discount  decimal.Decimal
}

// QueueSubmission содержит тело запроса на создание очереди. Итоговые суммы
// в запрос не входят, их считает сервер.
type QueueSubmission struct {
	CustomerID int64
	StatusID   int64
	PaymentID  *int64
	Note       *string
	Orders     []OrderItem
}

// QueuePatch содержит изменяемые поля сохранённой очереди.
type QueuePatch struct {
	StatusID  *int64
	PaymentID *int64
	Note      *string
}

// QueueItem описывает строку сохранённой очереди, как её вернул сервер.
type QueueItem struct {
	ProductID  int64
	Product    *Product
	Quantity   int
	Discount   decimal.Decimal
	TotalPrice decimal.Decimal
}

// Queue описывает сохранённую очередь (заказ покупателя).
type Queue struct {
	ID          int64
	CustomerID  int64
	Customer    *Customer
	StatusID    int64
	PaymentID   *int64
	Note        *string
	Total       decimal.Decimal
	OwnerUserID int64
	Items       []QueueItem
}

// OwnerID возвращает идентификатор владельца записи.
func (q Queue) OwnerID() int64 { return q.OwnerUserID }

// Summary содержит сводку для главного экрана.
type Summary struct {
	Customers    int
	Products     int
	Queues       int
	TotalBalance decimal.Decimal
	Revenue      decimal.Decimal
}
