package repository

import (
	"context"

	"github.com/mmeshcher/antrian-client/internal/api"
	"github.com/mmeshcher/antrian-client/internal/model"
)

// QueueRepository предоставляет доступ к очередям (заказам).
type QueueRepository struct {
	client *api.Client
}

// NewQueueRepository создаёт репозиторий очередей.
func NewQueueRepository(client *api.Client) *QueueRepository {
	return &QueueRepository{client: client}
}

// Create отправляет собранную очередь. В запрос уходят только входные данные строк.
func (r *QueueRepository) Create(ctx context.Context, s model.QueueSubmission) (*model.Queue, error) {
	orders := make([]api.OrderRequest, 0, len(s.Orders))
	for _, o := range s.Orders {
		orders = append(orders, api.OrderRequest{
			ProductID: o.ProductID,
			Quantity:  o.Quantity,
			Discount:  api.Number(o.Discount),
		})
	}

	resp, err := r.client.CreateQueue(ctx, api.QueueRequest{
		CustomerID: s.CustomerID,
		StatusID:   s.StatusID,
		PaymentID:  s.PaymentID,
		Note:       s.Note,
		Orders:     orders,
	})
	if err != nil {
		return nil, err
	}
	q := toQueue(*resp)
	return &q, nil
}

// GetAll возвращает все очереди без фильтрации по владельцу.
func (r *QueueRepository) GetAll(ctx context.Context) ([]model.Queue, error) {
	resp, err := r.client.ListQueues(ctx)
	if err != nil {
		return nil, err
	}
	return toQueues(resp), nil
}

// Update изменяет статус, оплату или заметку очереди.
func (r *QueueRepository) Update(ctx context.Context, id int64, patch model.QueuePatch) (*model.Queue, error) {
	resp, err := r.client.UpdateQueue(ctx, id, api.QueuePatchRequest{
		StatusID:  patch.StatusID,
		PaymentID: patch.PaymentID,
		Note:      patch.Note,
	})
	if err != nil {
		return nil, err
	}
	q := toQueue(*resp)
	return &q, nil
}

// Delete удаляет очередь.
func (r *QueueRepository) Delete(ctx context.Context, id int64) error {
	return r.client.DeleteQueue(ctx, id)
}
