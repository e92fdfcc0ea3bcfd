package controller

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/antrian-client/internal/model"
	"github.com/mmeshcher/antrian-client/internal/money"
	"github.com/mmeshcher/antrian-client/internal/result"
)

// Source отдаёт полный список записей одного вида.
type Source[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
}

// DashboardController собирает сводку для главного экрана.
type DashboardController struct {
	customers Source[model.Customer]
	products  Source[model.Product]
	queues    Source[model.Queue]
	users     UserResolver
	logger    *zap.Logger
	state     *result.Cell[model.Summary]
	flight    flight
}

// NewDashboardController создаёт контроллер сводки.
func NewDashboardController(
	customers Source[model.Customer],
	products Source[model.Product],
	queues Source[model.Queue],
	users UserResolver,
	logger *zap.Logger,
) *DashboardController {
	return &DashboardController{
		customers: customers,
		products:  products,
		queues:    queues,
		users:     users,
		logger:    logger,
		state:     result.NewCell[model.Summary](),
	}
}

// State возвращает ячейку состояния сводки.
func (c *DashboardController) State() *result.Cell[model.Summary] {
	return c.state
}

// Load параллельно загружает покупателей, товары и очереди и считает сводку
// по записям текущего пользователя. Первая ошибка отменяет остальные запросы.
func (c *DashboardController) Load(ctx context.Context) error {
	ctx, seq := c.flight.begin(ctx, func() {
		c.state.Set(result.Loading[model.Summary](loadingMessage(activityFetch)))
	})

	userID, err := c.users.CurrentUserID()
	if err != nil {
		return c.fail(seq, err)
	}

	var (
		customers []model.Customer
		products  []model.Product
		queues    []model.Queue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := c.customers.GetAll(gctx)
		customers = ownedBy(items, userID)
		return err
	})
	g.Go(func() error {
		items, err := c.products.GetAll(gctx)
		products = ownedBy(items, userID)
		return err
	})
	g.Go(func() error {
		items, err := c.queues.GetAll(gctx)
		queues = ownedBy(items, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return c.fail(seq, err)
	}

	summary := summarize(customers, products, queues)
	if !c.flight.settle(seq, func() { c.state.Set(result.Success(summary, "")) }) {
		return ErrSuperseded
	}
	return nil
}

func (c *DashboardController) fail(seq uint64, err error) error {
	appErr := translate(entityDashboard, opFetch, err)
	if !c.flight.settle(seq, func() { c.state.Set(result.Failure[model.Summary](appErr.Message)) }) {
		return ErrSuperseded
	}
	logFailure(c.logger, entityDashboard, opFetch, appErr)
	return appErr
}

func summarize(customers []model.Customer, products []model.Product, queues []model.Queue) model.Summary {
	balances := make([]decimal.Decimal, 0, len(customers))
	for _, cu := range customers {
		balances = append(balances, cu.Balance)
	}
	totals := make([]decimal.Decimal, 0, len(queues))
	for _, q := range queues {
		totals = append(totals, q.Total)
	}

	return model.Summary{
		Customers:    len(customers),
		Products:     len(products),
		Queues:       len(queues),
		TotalBalance: money.Sum(balances...),
		Revenue:      money.Sum(totals...),
	}
}
