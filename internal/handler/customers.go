package handler

import (
	"context"
	"fmt"
)

const (
	customerUpdateUsage = "customers update <id> [-name <name>] [-balance <amount>]"
	customerDeleteUsage = "customers delete <id>"
)

// ListCustomers печатает покупателей текущего пользователя.
func (h *Handler) ListCustomers(ctx context.Context, _ []string) error {
	if err := h.customers.GetAll(ctx); err != nil {
		return err
	}
	return h.printCustomers(h.customers.State().Get().Data)
}

// SearchCustomers ищет покупателей; пустой запрос печатает полный список.
func (h *Handler) SearchCustomers(ctx context.Context, args []string) error {
	if err := h.customers.Query(ctx, joinQuery(args)); err != nil {
		return err
	}
	return h.printCustomers(h.customers.State().Get().Data)
}

// CreateCustomer добавляет покупателя: customers create -name <name> [-balance <amount>].
func (h *Handler) CreateCustomer(ctx context.Context, args []string) error {
	fs := h.flagSet("customers create")
	name := fs.String("name", "", "customer name")
	balance := fs.String("balance", "0", "opening balance")
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	if err := h.customers.Create(ctx, *name, *balance); err != nil {
		return err
	}
	return h.showCustomers()
}

// UpdateCustomer изменяет имя и/или баланс покупателя.
func (h *Handler) UpdateCustomer(ctx context.Context, args []string) error {
	id, rest, err := splitID(args, customerUpdateUsage)
	if err != nil {
		return err
	}

	fs := h.flagSet("customers update")
	name := fs.String("name", "", "new name")
	balance := fs.String("balance", "", "new balance")
	if err := fs.Parse(rest); err != nil {
		return usageError(err)
	}

	set := visited(fs)
	if !set["name"] && !set["balance"] {
		return fmt.Errorf("%w: %s", ErrUsage, customerUpdateUsage)
	}
	if err := h.customers.Update(ctx, id, optional(set, "name", name), optional(set, "balance", balance)); err != nil {
		return err
	}
	return h.showCustomers()
}

// DeleteCustomer удаляет покупателя.
func (h *Handler) DeleteCustomer(ctx context.Context, args []string) error {
	id, _, err := splitID(args, customerDeleteUsage)
	if err != nil {
		return err
	}
	if err := h.customers.Delete(ctx, id); err != nil {
		return err
	}
	return h.showCustomers()
}

func (h *Handler) showCustomers() error {
	st := h.customers.State().Get()
	if err := h.println(st.Message); err != nil {
		return err
	}
	return h.printCustomers(st.Data)
}
