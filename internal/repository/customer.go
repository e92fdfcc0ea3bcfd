package repository

import (
	"context"

	"github.com/mmeshcher/antrian-client/internal/api"
	"github.com/mmeshcher/antrian-client/internal/model"
)

// CustomerRepository предоставляет доступ к покупателям.
type CustomerRepository struct {
	client *api.Client
}

// NewCustomerRepository создаёт репозиторий покупателей.
func NewCustomerRepository(client *api.Client) *CustomerRepository {
	return &CustomerRepository{client: client}
}

// GetAll возвращает всех покупателей без фильтрации по владельцу.
func (r *CustomerRepository) GetAll(ctx context.Context) ([]model.Customer, error) {
	resp, err := r.client.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return toCustomers(resp), nil
}

// Search ищет покупателей по строке запроса.
func (r *CustomerRepository) Search(ctx context.Context, query string) ([]model.Customer, error) {
	resp, err := r.client.SearchCustomers(ctx, query)
	if err != nil {
		return nil, err
	}
	return toCustomers(resp), nil
}

// Create создаёт покупателя.
func (r *CustomerRepository) Create(ctx context.Context, in model.CustomerInput) (*model.Customer, error) {
	resp, err := r.client.CreateCustomer(ctx, api.CustomerRequest{
		Nama:    in.Name,
		Balance: api.Number(in.Balance),
	})
	if err != nil {
		return nil, err
	}
	c := toCustomer(*resp)
	return &c, nil
}

// Update изменяет покупателя.
func (r *CustomerRepository) Update(ctx context.Context, id int64, patch model.CustomerPatch) (*model.Customer, error) {
	req := api.CustomerPatchRequest{Nama: patch.Name}
	if patch.Balance != nil {
		n := api.Number(*patch.Balance)
		req.Balance = &n
	}

	resp, err := r.client.UpdateCustomer(ctx, id, req)
	if err != nil {
		return nil, err
	}
	c := toCustomer(*resp)
	return &c, nil
}

// Delete удаляет покупателя.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	return r.client.DeleteCustomer(ctx, id)
}

