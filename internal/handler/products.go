package handler

import (
	"context"
	"fmt"
)

const (
	productUpdateUsage = "products update <id> [-name <name>] [-price <amount>]"
	productDeleteUsage = "products delete <id>"
)

// ListProducts печатает товары текущего пользователя.
func (h *Handler) ListProducts(ctx context.Context, _ []string) error {
	if err := h.products.GetAll(ctx); err != nil {
		return err
	}
	return h.printProducts(h.products.State().Get().Data)
}

// SearchProducts ищет товары по названию.
func (h *Handler) SearchProducts(ctx context.Context, args []string) error {
	if err := h.products.Query(ctx, joinQuery(args)); err != nil {
		return err
	}
	return h.printProducts(h.products.State().Get().Data)
}

// CreateProduct добавляет товар: products create -name <name> -price <amount>.
func (h *Handler) CreateProduct(ctx context.Context, args []string) error {
	fs := h.flagSet("products create")
	name := fs.String("name", "", "product name")
	price := fs.String("price", "", "unit price")
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	if err := h.products.Create(ctx, *name, *price); err != nil {
		return err
	}
	st := h.products.State().Get()
	if err := h.println(st.Message); err != nil {
		return err
	}
	return h.printProducts(st.Data)
}

// UpdateProduct изменяет название и/или цену товара.
func (h *Handler) UpdateProduct(ctx context.Context, args []string) error {
	id, rest, err := splitID(args, productUpdateUsage)
	if err != nil {
		return err
	}

	fs := h.flagSet("products update")
	name := fs.String("name", "", "new name")
	price := fs.String("price", "", "new price")
	if err := fs.Parse(rest); err != nil {
		return usageError(err)
	}

	set := visited(fs)
	if !set["name"] && !set["price"] {
		return fmt.Errorf("%w: %s", ErrUsage, productUpdateUsage)
	}
	if err := h.products.Update(ctx, id, optional(set, "name", name), optional(set, "price", price)); err != nil {
		return err
	}
	return h.println(h.products.State().Get().Message)
}

// DeleteProduct удаляет товар.
func (h *Handler) DeleteProduct(ctx context.Context, args []string) error {
	id, _, err := splitID(args, productDeleteUsage)
	if err != nil {
		return err
	}
	if err := h.products.Delete(ctx, id); err != nil {
		return err
	}
	return h.println(h.products.State().Get().Message)
}
