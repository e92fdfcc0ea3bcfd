package controller

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/antrian-client/internal/apperr"
	"github.com/mmeshcher/antrian-client/internal/builder"
	"github.com/mmeshcher/antrian-client/internal/model"
	"github.com/mmeshcher/antrian-client/internal/repository"
)

// stubQueueRepo позволяет задержать создание очереди.
type stubQueueRepo struct {
	created chan struct{}
	release chan struct{}
	queues  []model.Queue
	listErr error
}

func (s *stubQueueRepo) Create(ctx context.Context, sub model.QueueSubmission) (*model.Queue, error) {
	if s.created != nil {
		s.created <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	q := model.Queue{ID: 1, CustomerID: sub.CustomerID, OwnerUserID: 7}
	s.queues = append(s.queues, q)
	return &q, nil
}

func (s *stubQueueRepo) GetAll(context.Context) ([]model.Queue, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.queues, nil
}

func (s *stubQueueRepo) Update(context.Context, int64, model.QueuePatch) (*model.Queue, error) {
	return nil, errors.New("not implemented")
}

func (s *stubQueueRepo) Delete(context.Context, int64) error {
	return errors.New("not implemented")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestQueueController_SubmitEndToEnd(t *testing.T) {
	e := newEnv(t, 7)
	e.srv.AddCustomer(1, "Budi", "0", 7)
	e.srv.AddProduct(1, "Kopi", "100.50", 7)

	b := builder.New()
	c := NewQueueController(repository.NewQueueRepository(e.client), b, e.gate, zap.NewNop())

	c.SelectCustomer(model.Customer{ID: 1, Name: "Budi", OwnerUserID: 7})
	line, err := c.AddOrReplaceLine(model.Product{ID: 1, Name: "Kopi", Price: dec("100.50")}, 2, dec("10"))
	require.NoError(t, err)
	assert.True(t, dec("191.00").Equal(line.TotalPrice))
	assert.True(t, dec("191").Equal(c.Draft().GrandTotal))

	created, err := c.Submit(context.Background(), 1, nil, "   ")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, dec("191").Equal(created.Total))

	req, ok := e.srv.LastRequest("POST /queue")
	require.True(t, ok)
	assert.JSONEq(t, `{"customerId":1,"statusId":1,"orders":[{"productId":1,"quantity":2,"discount":10}]}`, string(req.Body))

	all, err := repository.NewQueueRepository(e.client).GetAll(context.Background())
	require.NoError(t, err)
	st := c.State().Get()
	require.True(t, st.IsSuccess())
	assert.Equal(t, "Queue created", st.Message)
	assert.Equal(t, all, st.Data)

	draft := c.Draft()
	assert.Nil(t, draft.Customer)
	assert.Empty(t, draft.Lines)
}

func TestQueueController_SubmitRequiresReadyBuilder(t *testing.T) {
	e := newEnv(t, 7)
	c := NewQueueController(repository.NewQueueRepository(e.client), builder.New(), e.gate, zap.NewNop())

	_, err := c.Submit(context.Background(), 1, nil, "")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Equal(t, "Select a customer and add at least one product", appErr.Message)
	assert.Zero(t, e.srv.TotalCalls())
}

func TestQueueController_SubmitFailureKeepsDraft(t *testing.T) {
	e := newEnv(t, 7)
	e.srv.FailWith("POST /queue", http.StatusInternalServerError)
	c := NewQueueController(repository.NewQueueRepository(e.client), builder.New(), e.gate, zap.NewNop())

	c.SelectCustomer(model.Customer{ID: 1})
	_, err := c.AddOrReplaceLine(model.Product{ID: 1, Price: dec("5")}, 1, decimal.Zero)
	require.NoError(t, err)

	_, err = c.Submit(context.Background(), 1, nil, "")
	require.Error(t, err)
	assert.Equal(t, "The server could not submit the queue, please try again later", err.Error())
	assert.True(t, c.State().Get().IsError())
	assert.True(t, c.Draft().Ready())
}

func TestQueueController_RejectsConcurrentSubmit(t *testing.T) {
	repo := &stubQueueRepo{created: make(chan struct{}), release: make(chan struct{})}
	c := NewQueueController(repo, builder.New(), stubUsers{id: 7}, zap.NewNop())
	c.SelectCustomer(model.Customer{ID: 3})
	_, err := c.AddOrReplaceLine(model.Product{ID: 1, Price: dec("5")}, 1, decimal.Zero)
	require.NoError(t, err)

	first := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), 1, nil, "")
		first <- err
	}()
	<-repo.created

	_, err = c.Submit(context.Background(), 1, nil, "")
	require.ErrorIs(t, err, ErrSubmitInProgress)

	close(repo.release)
	select {
	case err := <-first:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("first submit did not finish")
	}
	assert.Len(t, repo.queues, 1)
}

func TestQueueController_SubmitKeepsDraftEditedInFlight(t *testing.T) {
	repo := &stubQueueRepo{created: make(chan struct{}), release: make(chan struct{})}
	c := NewQueueController(repo, builder.New(), stubUsers{id: 7}, zap.NewNop())
	c.SelectCustomer(model.Customer{ID: 3})
	_, err := c.AddOrReplaceLine(model.Product{ID: 1, Price: dec("5")}, 1, decimal.Zero)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), 1, nil, "")
		done <- err
	}()
	<-repo.created

	_, err = c.AddOrReplaceLine(model.Product{ID: 2, Price: dec("7")}, 3, decimal.Zero)
	require.NoError(t, err)

	close(repo.release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("submit did not finish")
	}

	draft := c.Draft()
	require.Len(t, draft.Lines, 2)
	assert.Equal(t, int64(2), draft.Lines[1].Product.ID)
	assert.True(t, draft.Ready())
}

func TestQueueController_SubmitReturnsCreatedWhenRefreshFails(t *testing.T) {
	repo := &stubQueueRepo{listErr: errors.New("connection reset")}
	c := NewQueueController(repo, builder.New(), stubUsers{id: 7}, zap.NewNop())
	c.SelectCustomer(model.Customer{ID: 3})
	_, err := c.AddOrReplaceLine(model.Product{ID: 1, Price: dec("5")}, 1, decimal.Zero)
	require.NoError(t, err)

	created, err := c.Submit(context.Background(), 1, nil, "")
	require.Error(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(1), created.ID)
	assert.Len(t, repo.queues, 1)
	assert.False(t, c.Draft().Ready())
}

func TestQueueController_AddLineValidation(t *testing.T) {
	c := NewQueueController(&stubQueueRepo{}, builder.New(), stubUsers{id: 7}, zap.NewNop())

	_, err := c.AddOrReplaceLine(model.Product{ID: 1, Price: dec("5")}, 0, decimal.Zero)
	require.Error(t, err)
	assert.Equal(t, "Quantity must be at least 1", err.Error())

	_, err = c.AddOrReplaceLine(model.Product{ID: 1, Price: dec("5")}, 1, dec("-1"))
	require.Error(t, err)
	assert.Equal(t, "Discount must not be negative", err.Error())
	assert.Empty(t, c.Draft().Lines)
}

func TestQueueController_BuilderPassThrough(t *testing.T) {
	b := builder.New()
	c := NewQueueController(&stubQueueRepo{}, b, stubUsers{id: 7}, zap.NewNop())

	c.SelectCustomer(model.Customer{ID: 3})
	_, _ = c.AddOrReplaceLine(model.Product{ID: 1, Price: dec("10")}, 1, decimal.Zero)
	_, _ = c.AddOrReplaceLine(model.Product{ID: 2, Price: dec("20")}, 1, decimal.Zero)

	c.RemoveLine(1)
	assert.Len(t, b.Lines(), 1)

	c.ClearCustomer()
	_, ok := b.Customer()
	assert.False(t, ok)

	c.ClearLines()
	assert.Empty(t, b.Lines())

	c.SelectCustomer(model.Customer{ID: 3})
	c.Cancel()
	assert.False(t, c.Draft().Ready())
	assert.Nil(t, c.Draft().Customer)
}

func TestQueueController_ListUpdateDelete(t *testing.T) {
	e := newEnv(t, 7)
	e.srv.AddCustomer(1, "Budi", "0", 7)
	e.srv.AddProduct(1, "Kopi", "10", 7)

	c := NewQueueController(repository.NewQueueRepository(e.client), builder.New(), e.gate, zap.NewNop())
	c.SelectCustomer(model.Customer{ID: 1})
	_, err := c.AddOrReplaceLine(model.Product{ID: 1, Price: dec("10")}, 3, decimal.Zero)
	require.NoError(t, err)
	created, err := c.Submit(context.Background(), 1, nil, "antar sore")
	require.NoError(t, err)
	require.NotNil(t, created.Note)
	assert.Equal(t, "antar sore", *created.Note)

	status := int64(2)
	require.NoError(t, c.Update(context.Background(), created.ID, model.QueuePatch{StatusID: &status}))
	st := c.State().Get()
	require.Len(t, st.Data, 1)
	assert.Equal(t, int64(2), st.Data[0].StatusID)
	assert.Equal(t, "Queue updated", st.Message)

	require.NoError(t, c.Delete(context.Background(), created.ID))
	assert.Empty(t, c.State().Get().Data)
}

func TestQueueController_FiltersForeignQueues(t *testing.T) {
	e := newEnv(t, 7)
	e.srv.AddCustomer(1, "Budi", "0", 9)
	e.srv.AddProduct(1, "Kopi", "10", 9)

	// Очередь создаёт пользователь 9 на том же сервере.
	foreign := NewQueueController(repository.NewQueueRepository(clientFor(t, e, 9)), builder.New(), stubUsers{id: 9}, zap.NewNop())
	foreign.SelectCustomer(model.Customer{ID: 1})
	_, err := foreign.AddOrReplaceLine(model.Product{ID: 1, Price: dec("10")}, 1, decimal.Zero)
	require.NoError(t, err)
	_, err = foreign.Submit(context.Background(), 1, nil, "")
	require.NoError(t, err)

	mine := NewQueueController(repository.NewQueueRepository(e.client), builder.New(), e.gate, zap.NewNop())
	require.NoError(t, mine.GetAll(context.Background()))
	assert.Empty(t, mine.State().Get().Data)
	assert.Len(t, foreign.State().Get().Data, 1)
}
