package controller

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/antrian-client/internal/model"
	"github.com/mmeshcher/antrian-client/internal/result"
	"github.com/mmeshcher/antrian-client/internal/validation"
)

// CustomerRepository описывает операции с покупателями, используемые контроллером.
type CustomerRepository interface {
	GetAll(ctx context.Context) ([]model.Customer, error)
	Search(ctx context.Context, query string) ([]model.Customer, error)
	Create(ctx context.Context, in model.CustomerInput) (*model.Customer, error)
	Update(ctx context.Context, id int64, patch model.CustomerPatch) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// CustomerController управляет списком покупателей текущего пользователя.
type CustomerController struct {
	repo CustomerRepository
	list *lister[model.Customer]
}

// NewCustomerController создаёт контроллер покупателей.
func NewCustomerController(repo CustomerRepository, users UserResolver, logger *zap.Logger) *CustomerController {
	return &CustomerController{
		repo: repo,
		list: newLister[model.Customer](entityCustomer, users, logger),
	}
}

// State возвращает ячейку состояния списка покупателей.
func (c *CustomerController) State() *result.Cell[[]model.Customer] {
	return c.list.state
}

// GetAll загружает всех покупателей текущего пользователя.
func (c *CustomerController) GetAll(ctx context.Context) error {
	return c.list.fetch(ctx, opFetch, c.repo.GetAll, "")
}

// Search ищет покупателей по имени.
func (c *CustomerController) Search(ctx context.Context, query string) error {
	return c.list.fetch(ctx, opSearch, func(ctx context.Context) ([]model.Customer, error) {
		return c.repo.Search(ctx, query)
	}, "")
}

// Query выбирает между списком и поиском: пустой запрос означает полный список.
func (c *CustomerController) Query(ctx context.Context, query string) error {
	q := strings.TrimSpace(query)
	if q == "" {
		return c.GetAll(ctx)
	}
	return c.Search(ctx, q)
}

// Create создаёт покупателя и перезагружает список.
func (c *CustomerController) Create(ctx context.Context, name, balance string) error {
	if err := validation.Required("name", name); err != nil {
		return c.list.reject(opCreate, err)
	}
	amount, err := validation.Amount("balance", balance)
	if err != nil {
		return c.list.reject(opCreate, err)
	}

	in := model.CustomerInput{Name: strings.TrimSpace(name), Balance: amount}
	if _, err := c.repo.Create(ctx, in); err != nil {
		return c.list.reject(opCreate, err)
	}
	return c.list.fetch(ctx, opFetch, c.repo.GetAll, "Customer created")
}

// Update изменяет переданные поля покупателя; nil означает «не менять».
func (c *CustomerController) Update(ctx context.Context, id int64, name, balance *string) error {
	var patch model.CustomerPatch
	if name != nil {
		if err := validation.Required("name", *name); err != nil {
			return c.list.reject(opUpdate, err)
		}
		trimmed := strings.TrimSpace(*name)
		patch.Name = &trimmed
	}
	if balance != nil {
		amount, err := validation.Amount("balance", *balance)
		if err != nil {
			return c.list.reject(opUpdate, err)
		}
		patch.Balance = &amount
	}

	if _, err := c.repo.Update(ctx, id, patch); err != nil {
		return c.list.reject(opUpdate, err)
	}
	return c.list.fetch(ctx, opFetch, c.repo.GetAll, "Customer updated")
}

// Delete удаляет покупателя и перезагружает список.
func (c *CustomerController) Delete(ctx context.Context, id int64) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return c.list.reject(opDelete, err)
	}
	return c.list.fetch(ctx, opFetch, c.repo.GetAll, "Customer deleted")
}
