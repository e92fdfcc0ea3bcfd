package api

import (
	"context"
	"net/http"
	"net/url"
)

// Login выполняет вход по email и паролю.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register регистрирует нового пользователя.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodPost, "/users", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser возвращает профиль владельца токена.
func (c *Client) CurrentUser(ctx context.Context) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/current", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCurrentUser изменяет профиль владельца токена.
func (c *Client) UpdateCurrentUser(ctx context.Context, req UpdateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodPut, "/users/current", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout завершает сессию на сервере.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/users/logout", nil, nil, nil)
}

// ListCustomers возвращает всех покупателей, которых отдаёт сервер.
func (c *Client) ListCustomers(ctx context.Context) ([]CustomerResponse, error) {
	var out []CustomerResponse
	if err := c.do(ctx, http.MethodGet, "/customers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchCustomers ищет покупателей по строке q.
func (c *Client) SearchCustomers(ctx context.Context, q string) ([]CustomerResponse, error) {
	var out []CustomerResponse
	if err := c.do(ctx, http.MethodGet, "/customers/search", url.Values{"q": {q}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCustomer создаёт покупателя.
func (c *Client) CreateCustomer(ctx context.Context, req CustomerRequest) (*CustomerResponse, error) {
	var out CustomerResponse
	if err := c.do(ctx, http.MethodPost, "/customers", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCustomer изменяет покупателя.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, req CustomerPatchRequest) (*CustomerResponse, error) {
	var out CustomerResponse
	if err := c.do(ctx, http.MethodPut, idPath("/customers", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCustomer удаляет покупателя.
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/customers", id), nil, nil, nil)
}

// ListProducts возвращает все товары, которые отдаёт сервер.
func (c *Client) ListProducts(ctx context.Context) ([]ProductResponse, error) {
	var out []ProductResponse
	if err := c.do(ctx, http.MethodGet, "/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchProducts ищет товары по названию.
func (c *Client) SearchProducts(ctx context.Context, nama string) ([]ProductResponse, error) {
	var out []ProductResponse
	if err := c.do(ctx, http.MethodGet, "/products/search", url.Values{"nama": {nama}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct создаёт товар.
func (c *Client) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	var out ProductResponse
	if err := c.do(ctx, http.MethodPost, "/products", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct изменяет товар.
func (c *Client) UpdateProduct(ctx context.Context, id int64, req ProductPatchRequest) (*ProductResponse, error) {
	var out ProductResponse
	if err := c.do(ctx, http.MethodPut, idPath("/products", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct удаляет товар.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/products", id), nil, nil, nil)
}

// CreateQueue отправляет собранную очередь.
func (c *Client) CreateQueue(ctx context.Context, req QueueRequest) (*QueueResponse, error) {
	var out QueueResponse
	if err := c.do(ctx, http.MethodPost, "/queue", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListQueues возвращает все очереди, которые отдаёт сервер.
func (c *Client) ListQueues(ctx context.Context) ([]QueueResponse, error) {
	var out []QueueResponse
	if err := c.do(ctx, http.MethodGet, "/queue", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateQueue изменяет статус, оплату или заметку очереди.
func (c *Client) UpdateQueue(ctx context.Context, id int64, req QueuePatchRequest) (*QueueResponse, error) {
	var out QueueResponse
	if err := c.do(ctx, http.MethodPut, idPath("/queue", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteQueue удаляет очередь.
func (c *Client) DeleteQueue(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/queue", id), nil, nil, nil)
}
