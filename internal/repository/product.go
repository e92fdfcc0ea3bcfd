package repository

import (
	"context"

	"github.com/mmeshcher/antrian-client/internal/api"
	"github.com/mmeshcher/antrian-client/internal/model"
)

// ProductRepository предоставляет доступ к товарам.
type ProductRepository struct {
	client *api.Client
}

// NewProductRepository создаёт репозиторий товаров.
func NewProductRepository(client *api.Client) *ProductRepository {
	return &ProductRepository{client: client}
}

// GetAll возвращает все товары без фильтрации по владельцу.
func (r *ProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	resp, err := r.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return toProducts(resp), nil
}

// Search ищет товары по названию.
func (r *ProductRepository) Search(ctx context.Context, query string) ([]model.Product, error) {
	resp, err := r.client.SearchProducts(ctx, query)
	if err != nil {
		return nil, err
	}
	return toProducts(resp), nil
}

// Create создаёт товар.
func (r *ProductRepository) Create(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	resp, err := r.client.CreateProduct(ctx, api.ProductRequest{
		Nama:  in.Name,
		Price: api.Number(in.Price),
	})
	if err != nil {
		return nil, err
	}
	p := toProduct(*resp)
	return &p, nil
}

// Update изменяет товар.
func (r *ProductRepository) Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	req := api.ProductPatchRequest{Nama: patch.Name}
	if patch.Price != nil {
		n := api.Number(*patch.Price)
		req.Price = &n
	}

	resp, err := r.client.UpdateProduct(ctx, id, req)
	if err != nil {
		return nil, err
	}
	p := toProduct(*resp)
	return &p, nil
}

// Delete удаляет товар.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.client.DeleteProduct(ctx, id)
}
