package controller

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/antrian-client/internal/apperr"
	"github.com/mmeshcher/antrian-client/internal/builder"
	"github.com/mmeshcher/antrian-client/internal/model"
	"github.com/mmeshcher/antrian-client/internal/result"
)

// ErrSubmitInProgress возвращается при повторной отправке очереди до завершения первой.
var ErrSubmitInProgress = errors.New("queue submission already in progress")

// QueueRepository описывает операции с очередями, используемые контроллером.
type QueueRepository interface {
	Create(ctx context.Context, s model.QueueSubmission) (*model.Queue, error)
	GetAll(ctx context.Context) ([]model.Queue, error)
	Update(ctx context.Context, id int64, patch model.QueuePatch) (*model.Queue, error)
	Delete(ctx context.Context, id int64) error
}

// QueueController управляет сохранёнными очередями и сценарием создания новой.
// Построитель передаётся снаружи: тот же экземпляр используют экраны выбора
// покупателя и товаров.
type QueueController struct {
	repo       QueueRepository
	builder    *builder.QueueBuilder
	list       *lister[model.Queue]
	submitting atomic.Bool
}

// NewQueueController создаёт контроллер очередей.
func NewQueueController(repo QueueRepository, b *builder.QueueBuilder, users UserResolver, logger *zap.Logger) *QueueController {
	return &QueueController{
		repo:    repo,
		builder: b,
		list:    newLister[model.Queue](entityQueue, users, logger),
	}
}

// State возвращает ячейку состояния списка очередей.
func (c *QueueController) State() *result.Cell[[]model.Queue] {
	return c.list.state
}

// SelectCustomer выбирает покупателя для новой очереди.
func (c *QueueController) SelectCustomer(customer model.Customer) {
	c.builder.SelectCustomer(customer)
}

// AddOrReplaceLine добавляет товар в новую очередь или заменяет его строку.
func (c *QueueController) AddOrReplaceLine(p model.Product, quantity int, discount decimal.Decimal) (model.OrderLine, error) {
	line, err := c.builder.AddOrReplaceLine(p, quantity, discount)
	if err != nil {
		return model.OrderLine{}, translate(entityQueue, opAddLine, err)
	}
	return line, nil
}

// RemoveLine убирает товар из новой очереди.
func (c *QueueController) RemoveLine(productID int64) {
	c.builder.RemoveLine(productID)
}

// ClearLines убирает все товары из новой очереди.
func (c *QueueController) ClearLines() {
	c.builder.ClearLines()
}

// ClearCustomer сбрасывает выбранного покупателя.
func (c *QueueController) ClearCustomer() {
	c.builder.ClearCustomer()
}

// Cancel отменяет создание очереди.
func (c *QueueController) Cancel() {
	c.builder.ClearAll()
}

// Draft возвращает текущее состояние новой очереди с итогами.
func (c *QueueController) Draft() builder.Snapshot {
	return c.builder.Snapshot()
}

// Submit отправляет собранную очередь. После успешной отправки построитель
// очищается, если за время запроса его не меняли, а список очередей
// перезагружается.
//
// Если очередь создана, но перезагрузить список не удалось, возвращаются
// и созданная очередь, и ошибка перезагрузки: повторять отправку не нужно.
func (c *QueueController) Submit(ctx context.Context, statusID int64, paymentID *int64, note string) (*model.Queue, error) {
	if !c.submitting.CompareAndSwap(false, true) {
		return nil, apperr.New(apperr.KindConflict, "The queue is already being submitted", ErrSubmitInProgress)
	}
	defer c.submitting.Store(false)

	payload, rev, err := c.builder.BuildSubmission(statusID, paymentID, note)
	if err != nil {
		return nil, c.list.reject(opSubmit, err)
	}

	created, err := c.repo.Create(ctx, payload)
	if err != nil {
		return nil, c.list.reject(opSubmit, err)
	}

	if !c.builder.ClearAllIfUnchanged(rev) {
		c.list.logger.Debug("queue draft changed during submit, keeping it", zap.Int64("queueID", created.ID))
	}

	if err := c.list.fetch(ctx, opFetch, c.repo.GetAll, "Queue created"); err != nil {
		if !errors.Is(err, ErrSuperseded) {
			c.list.logger.Warn("queue created, list refresh failed", zap.Int64("queueID", created.ID), zap.Error(err))
		}
		return created, err
	}
	return created, nil
}

// GetAll загружает очереди текущего пользователя.
func (c *QueueController) GetAll(ctx context.Context) error {
	return c.list.fetch(ctx, opFetch, c.repo.GetAll, "")
}

// Update изменяет статус, способ оплаты или заметку очереди.
func (c *QueueController) Update(ctx context.Context, id int64, patch model.QueuePatch) error {
	if _, err := c.repo.Update(ctx, id, patch); err != nil {
		return c.list.reject(opUpdate, err)
	}
	return c.list.fetch(ctx, opFetch, c.repo.GetAll, "Queue updated")
}

// Delete удаляет очередь.
func (c *QueueController) Delete(ctx context.Context, id int64) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return c.list.reject(opDelete, err)
	}
	return c.list.fetch(ctx, opFetch, c.repo.GetAll, "Queue deleted")
}
