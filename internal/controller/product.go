package controller

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/antrian-client/internal/model"
	"github.com/mmeshcher/antrian-client/internal/result"
	"github.com/mmeshcher/antrian-client/internal/validation"
)

// ProductRepository описывает операции с товарами, используемые контроллером.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]model.Product, error)
	Search(ctx context.Context, query string) ([]model.Product, error)
	Create(ctx context.Context, in model.ProductInput) (*model.Product, error)
	Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

// ProductController управляет списком товаров текущего пользователя.
type ProductController struct {
	repo ProductRepository
	list *lister[model.Product]
}

// NewProductController создаёт контроллер товаров.
func NewProductController(repo ProductRepository, users UserResolver, logger *zap.Logger) *ProductController {
	return &ProductController{
		repo: repo,
		list: newLister[model.Product](entityProduct, users, logger),
	}
}

// State возвращает ячейку состояния списка товаров.
func (c *ProductController) State() *result.Cell[[]model.Product] {
	return c.list.state
}

// GetAll загружает все товары текущего пользователя.
func (c *ProductController) GetAll(ctx context.Context) error {
	return c.list.fetch(ctx, opFetch, c.repo.GetAll, "")
}

// Search ищет товары по названию.
func (c *ProductController) Search(ctx context.Context, query string) error {
	return c.list.fetch(ctx, opSearch, func(ctx context.Context) ([]model.Product, error) {
		return c.repo.Search(ctx, query)
	}, "")
}

// Query выбирает между списком и поиском: пустой запрос означает полный список.
func (c *ProductController) Query(ctx context.Context, query string) error {
	q := strings.TrimSpace(query)
	if q == "" {
		return c.GetAll(ctx)
	}
	return c.Search(ctx, q)
}

// Create создаёт товар и перезагружает список.
func (c *ProductController) Create(ctx context.Context, name, price string) error {
	if err := validation.Required("name", name); err != nil {
		return c.list.reject(opCreate, err)
	}
	parsed, err := validation.Price("price", price)
	if err != nil {
		return c.list.reject(opCreate, err)
	}

	in := model.ProductInput{Name: strings.TrimSpace(name), Price: parsed}
	if _, err := c.repo.Create(ctx, in); err != nil {
		return c.list.reject(opCreate, err)
	}
	return c.list.fetch(ctx, opFetch, c.repo.GetAll, "Product created")
}

// Update изменяет переданные поля товара; nil означает «не менять».
func (c *ProductController) Update(ctx context.Context, id int64, name, price *string) error {
	var patch model.ProductPatch
	if name != nil {
		if err := validation.Required("name", *name); err != nil {
			return c.list.reject(opUpdate, err)
		}
		trimmed := strings.TrimSpace(*name)
		patch.Name = &trimmed
	}
	if price != nil {
		parsed, err := validation.Price("price", *price)
		if err != nil {
			return c.list.reject(opUpdate, err)
		}
		patch.Price = &parsed
	}

	if _, err := c.repo.Update(ctx, id, patch); err != nil {
		return c.list.reject(opUpdate, err)
	}
	return c.list.fetch(ctx, opFetch, c.repo.GetAll, "Product updated")
}

// Delete удаляет товар и перезагружает список.
func (c *ProductController) Delete(ctx context.Context, id int64) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return c.list.reject(opDelete, err)
	}
	return c.list.fetch(ctx, opFetch, c.repo.GetAll, "Product deleted")
}
