// Package builder хранит собираемую очередь: выбранного покупателя и строки заказа.
//
// Один экземпляр QueueBuilder передаётся явно трём участникам сценария создания
// очереди: выбору покупателя, выбору товаров и подтверждению заказа.
package builder

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/antrian-client/internal/model"
	"github.com/mmeshcher/antrian-client/internal/money"
	"github.com/mmeshcher/antrian-client/internal/validation"
)

// PreconditionError возвращается при попытке собрать запрос из неполного состояния.
type PreconditionError struct {
	MissingCustomer bool
	MissingLines    bool
}

func (e *PreconditionError) Error() string {
	switch {
	case e.MissingCustomer && e.MissingLines:
		return "queue is not ready: no customer selected and no products added"
	case e.MissingCustomer:
		return "queue is not ready: no customer selected"
	default:
		return "queue is not ready: no products added"
	}
}

// Snapshot содержит неизменяемую копию состояния с производными итогами.
type Snapshot struct {
	Customer      *model.Customer
	Lines         []model.OrderLine
	GrandTotal    decimal.Decimal
	TotalDiscount decimal.Decimal
}

// Ready сообщает, можно ли отправлять очередь.
func (s Snapshot) Ready() bool {
	return s.Customer != nil && len(s.Lines) > 0
}

// QueueBuilder хранит общее изменяемое состояние сценария создания очереди.
// Каждый метод выполняется целиком под одной блокировкой.
type QueueBuilder struct {
	mu       sync.Mutex
	customer *model.Customer
	lines    []model.OrderLine
	// rev увеличивается при каждом изменении состояния.
	rev uint64
}

// New создаёт пустой построитель очереди.
func New() *QueueBuilder {
	return &QueueBuilder{}
}

// SelectCustomer заменяет выбранного покупателя.
func (b *QueueBuilder) SelectCustomer(c model.Customer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.customer = &c
	b.rev++
}

// AddOrReplaceLine добавляет строку для товара или заменяет существующую строку
// с тем же идентификатором товара. Количества не суммируются.
func (b *QueueBuilder) AddOrReplaceLine(p model.Product, quantity int, discount decimal.Decimal) (model.OrderLine, error) {
	if err := validation.Quantity("quantity", quantity); err != nil {
		return model.OrderLine{}, err
	}
	if err := validation.NonNegative("discount", discount); err != nil {
		return model.OrderLine{}, err
	}

	line := model.OrderLine{
		Product:    p,
		Quantity:   quantity,
		Discount:   discount,
		TotalPrice: money.LineTotal(p.Price, quantity, discount),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.rev++

	for i := range b.lines {
		if b.lines[i].Product.ID == p.ID {
			b.lines[i] = line
			return line, nil
		}
	}
	b.lines = append(b.lines, line)
	return line, nil
}

// RemoveLine удаляет строку товара; отсутствие строки не считается ошибкой.
func (b *QueueBuilder) RemoveLine(productID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.lines[:0]
	for _, l := range b.lines {
		if l.Product.ID != productID {
			kept = append(kept, l)
		}
	}
	clear(b.lines[len(kept):])
	b.lines = kept
	b.rev++
}

// ClearLines удаляет все строки.
func (b *QueueBuilder) ClearLines() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
	b.rev++
}

// ClearCustomer сбрасывает выбранного покупателя.
func (b *QueueBuilder) ClearCustomer() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.customer = nil
	b.rev++
}

// ClearAll возвращает построитель в исходное состояние.
func (b *QueueBuilder) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

// ClearAllIfUnchanged сбрасывает состояние, только если после ревизии rev
// построитель не изменялся. Возвращает true, если сброс выполнен.
func (b *QueueBuilder) ClearAllIfUnchanged(rev uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rev != rev {
		return false
	}
	b.reset()
	return true
}

func (b *QueueBuilder) reset() {
	b.customer = nil
	b.lines = nil
	b.rev++
}

// Customer возвращает выбранного покупателя.
func (b *QueueBuilder) Customer() (model.Customer, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.customer == nil {
		return model.Customer{}, false
	}
	return *b.customer, true
}

// Lines возвращает копию строк в порядке добавления.
func (b *QueueBuilder) Lines() []model.OrderLine {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.OrderLine(nil), b.lines...)
}

// GrandTotal пересчитывает сумму итогов строк при каждом вызове.
func (b *QueueBuilder) GrandTotal() decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return grandTotal(b.lines)
}

// TotalDiscount пересчитывает сумму скидок при каждом вызове.
func (b *QueueBuilder) TotalDiscount() decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return totalDiscount(b.lines)
}

// Snapshot возвращает согласованную копию состояния.
func (b *QueueBuilder) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Snapshot{
		Lines:         append([]model.OrderLine(nil), b.lines...),
		GrandTotal:    grandTotal(b.lines),
		TotalDiscount: totalDiscount(b.lines),
	}
	if b.customer != nil {
		c := *b.customer
		s.Customer = &c
	}
	return s
}

// BuildSubmissionPayload собирает тело запроса на создание очереди.
// Пустая или состоящая из пробелов заметка не передаётся.
func (b *QueueBuilder) BuildSubmissionPayload(statusID int64, paymentID *int64, note string) (model.QueueSubmission, error) {
	payload, _, err := b.BuildSubmission(statusID, paymentID, note)
	return payload, err
}

// BuildSubmission работает как BuildSubmissionPayload и дополнительно
// возвращает ревизию, из которой собран запрос.
func (b *QueueBuilder) BuildSubmission(statusID int64, paymentID *int64, note string) (model.QueueSubmission, uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.customer == nil || len(b.lines) == 0 {
		return model.QueueSubmission{}, 0, &PreconditionError{
			MissingCustomer: b.customer == nil,
			MissingLines:    len(b.lines) == 0,
		}
	}

	orders := make([]model.OrderItem, 0, len(b.lines))
	for _, l := range b.lines {
		orders = append(orders, model.OrderItem{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			Discount:  l.Discount,
		})
	}

	payload := model.QueueSubmission{
		CustomerID: b.customer.ID,
		StatusID:   statusID,
		Orders:     orders,
	}
	if paymentID != nil {
		id := *paymentID
		payload.PaymentID = &id
	}
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		payload.Note = &trimmed
	}
	return payload, b.rev, nil
}

func grandTotal(lines []model.OrderLine) decimal.Decimal {
	totals := make([]decimal.Decimal, 0, len(lines))
	for _, l := range lines {
		totals = append(totals, l.TotalPrice)
	}
	return money.Sum(totals...)
}

func totalDiscount(lines []model.OrderLine) decimal.Decimal {
	discounts := make([]decimal.Decimal, 0, len(lines))
	for _, l := range lines {
		discounts = append(discounts, l.Discount)
	}
	return money.Sum(discounts...)
}
