package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/antrian-client/internal/apperr"
	"github.com/mmeshcher/antrian-client/internal/model"
	"github.com/mmeshcher/antrian-client/internal/validation"
)

const (
	queueCreateUsage = "queue create -customer <id> -line <product:qty[:discount]>... [-status <id>] [-payment <id>] [-note <text>]"
	queueUpdateUsage = "queue update <id> [-status <id>] [-payment <id>] [-note <text>]"
	queueDeleteUsage = "queue delete <id>"
)

// lineArg хранит строку заказа из аргумента -line.
type lineArg struct {
	productID int64
	quantity  int
	discount  decimal.Decimal
}

// lineFlags собирает повторяющийся флаг -line.
type lineFlags []lineArg

func (l *lineFlags) String() string {
	parts := make([]string, 0, len(*l))
	for _, s := range *l {
		parts = append(parts, fmt.Sprintf("%d:%d:%s", s.productID, s.quantity, s.discount))
	}
	return strings.Join(parts, ",")
}

func (l *lineFlags) Set(v string) error {
	s, err := parseLine(v)
	if err != nil {
		return err
	}
	*l = append(*l, s)
	return nil
}

// parseLine разбирает "product:qty" или "product:qty:discount".
func parseLine(v string) (lineArg, error) {
	parts := strings.Split(v, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return lineArg{}, fmt.Errorf("line %q: expected product:qty[:discount]", v)
	}

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id <= 0 {
		return lineArg{}, fmt.Errorf("line %q: invalid product id", v)
	}
	qty, err := strconv.Atoi(parts[1])
	if err != nil {
		return lineArg{}, fmt.Errorf("line %q: invalid quantity", v)
	}

	discount := decimal.Zero
	if len(parts) == 3 {
		discount, err = validation.Amount("discount", parts[2])
		if err != nil {
			return lineArg{}, fmt.Errorf("line %q: %w", v, err)
		}
	}
	return lineArg{productID: id, quantity: qty, discount: discount}, nil
}

// int64Flag реализует необязательный числовой флаг.
type int64Flag struct {
	value *int64
}

func (f *int64Flag) String() string {
	if f.value == nil {
		return ""
	}
	return strconv.FormatInt(*f.value, 10)
}

func (f *int64Flag) Set(v string) error {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", v)
	}
	f.value = &n
	return nil
}

// ListQueues печатает очереди текущего пользователя.
func (h *Handler) ListQueues(ctx context.Context, _ []string) error {
	if err := h.queues.GetAll(ctx); err != nil {
		return err
	}
	return h.printQueues(h.queues.State().Get().Data)
}

// CreateQueue собирает и отправляет новую очередь. Покупатель и товары берутся
// из списков текущего пользователя, как при выборе на экране.
func (h *Handler) CreateQueue(ctx context.Context, args []string) error {
	fs := h.flagSet("queue create")
	customerID := fs.Int64("customer", 0, "customer id")
	statusID := fs.Int64("status", 1, "queue status id")
	note := fs.String("note", "", "note for the queue")
	var payment int64Flag
	var lines lineFlags
	fs.Var(&payment, "payment", "payment method id")
	fs.Var(&lines, "line", "order line product:qty[:discount], repeatable")
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	if *customerID <= 0 || len(lines) == 0 {
		return fmt.Errorf("%w: %s", ErrUsage, queueCreateUsage)
	}

	// Построитель общий для всех команд процесса, незавершённый черновик не должен остаться.
	defer h.queues.Cancel()

	customer, err := h.findCustomer(ctx, *customerID)
	if err != nil {
		return err
	}
	h.queues.SelectCustomer(customer)

	products, err := h.ownProducts(ctx)
	if err != nil {
		return err
	}
	for _, l := range lines {
		p, ok := products[l.productID]
		if !ok {
			return apperr.New(apperr.KindNotFound, fmt.Sprintf("Product %d not found", l.productID), nil)
		}
		if _, err := h.queues.AddOrReplaceLine(p, l.quantity, l.discount); err != nil {
			return err
		}
	}

	if err := h.printDraft(h.queues.Draft()); err != nil {
		return err
	}

	created, err := h.queues.Submit(ctx, *statusID, payment.value, *note)
	if err != nil {
		if created != nil {
			// Очередь уже создана на сервере: сообщаем номер, чтобы её не отправили повторно.
			if perr := h.println(fmt.Sprintf("Queue created: #%d", created.ID)); perr != nil {
				return perr
			}
		}
		return err
	}
	h.logger.Debug("queue submitted", zap.Int64("queueID", created.ID))
	return h.println(fmt.Sprintf("%s: #%d", h.queues.State().Get().Message, created.ID))
}

// UpdateQueue изменяет статус, способ оплаты или заметку очереди.
func (h *Handler) UpdateQueue(ctx context.Context, args []string) error {
	id, rest, err := splitID(args, queueUpdateUsage)
	if err != nil {
		return err
	}

	fs := h.flagSet("queue update")
	var status, payment int64Flag
	note := fs.String("note", "", "note for the queue")
	fs.Var(&status, "status", "queue status id")
	fs.Var(&payment, "payment", "payment method id")
	if err := fs.Parse(rest); err != nil {
		return usageError(err)
	}

	set := visited(fs)
	if len(set) == 0 {
		return fmt.Errorf("%w: %s", ErrUsage, queueUpdateUsage)
	}
	patch := model.QueuePatch{
		StatusID:  status.value,
		PaymentID: payment.value,
		Note:      optional(set, "note", note),
	}
	if err := h.queues.Update(ctx, id, patch); err != nil {
		return err
	}
	return h.println(h.queues.State().Get().Message)
}

// DeleteQueue удаляет очередь.
func (h *Handler) DeleteQueue(ctx context.Context, args []string) error {
	id, _, err := splitID(args, queueDeleteUsage)
	if err != nil {
		return err
	}
	if err := h.queues.Delete(ctx, id); err != nil {
		return err
	}
	return h.println(h.queues.State().Get().Message)
}

func (h *Handler) findCustomer(ctx context.Context, id int64) (model.Customer, error) {
	if err := h.customers.GetAll(ctx); err != nil {
		return model.Customer{}, err
	}
	for _, c := range h.customers.State().Get().Data {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Customer{}, apperr.New(apperr.KindNotFound, fmt.Sprintf("Customer %d not found", id), nil)
}

func (h *Handler) ownProducts(ctx context.Context) (map[int64]model.Product, error) {
	if err := h.products.GetAll(ctx); err != nil {
		return nil, err
	}
	byID := make(map[int64]model.Product)
	for _, p := range h.products.State().Get().Data {
		byID[p.ID] = p
	}
	return byID, nil
}
