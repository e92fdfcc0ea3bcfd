package handler

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/antrian-client/internal/api"
	"github.com/mmeshcher/antrian-client/internal/apitest"
	"github.com/mmeshcher/antrian-client/internal/builder"
	"github.com/mmeshcher/antrian-client/internal/controller"
	"github.com/mmeshcher/antrian-client/internal/middleware"
	"github.com/mmeshcher/antrian-client/internal/repository"
	"github.com/mmeshcher/antrian-client/internal/session"
)

type testApp struct {
	srv    *apitest.Server
	gate   *session.Gate
	out    *bytes.Buffer
	router *Router
}

func newTestApp(t *testing.T, userID int64) *testApp {
	t.Helper()

	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	srv := apitest.NewServer(t)
	store := session.NewMemoryStore("")
	if userID > 0 {
		require.NoError(t, store.Save(apitest.Token(userID)))
	}
	gate := session.NewGate(store)
	transport := middleware.Chain(api.DefaultTransport(), middleware.RequestID(), middleware.BearerAuth(gate))
	client := api.NewClient(srv.URL, transport, time.Second)

	customers := repository.NewCustomerRepository(client)
	products := repository.NewProductRepository(client)
	queues := repository.NewQueueRepository(client)

	out := &bytes.Buffer{}
	h := NewHandler(Controllers{
		Auth:      controller.NewAuthController(repository.NewAuthRepository(client), gate, logger),
		Customers: controller.NewCustomerController(customers, gate, logger),
		Products:  controller.NewProductController(products, gate, logger),
		Queues:    controller.NewQueueController(queues, builder.New(), gate, logger),
		Dashboard: controller.NewDashboardController(customers, products, queues, gate, logger),
	}, out, logger)

	return &testApp{srv: srv, gate: gate, out: out, router: h.SetupRouter()}
}

func (a *testApp) run(t *testing.T, line string) error {
	t.Helper()
	a.out.Reset()
	return a.router.Run(context.Background(), strings.Fields(line))
}

func TestRouter_UnknownCommand(t *testing.T) {
	app := newTestApp(t, 0)

	err := app.run(t, "customers fly")
	require.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, app.out.String(), "customers list")

	require.ErrorIs(t, app.run(t, ""), ErrUsage)
	require.NoError(t, app.run(t, "help"))
	assert.Contains(t, app.out.String(), "dashboard")
}

func TestHandler_LoginWhoAmILogout(t *testing.T) {
	app := newTestApp(t, 0)
	app.srv.AddUser(7, "Budi", "budi@toko.id", "rahasia")

	require.NoError(t, app.run(t, "login -email budi@toko.id -password rahasia"))
	assert.Equal(t, "Welcome back, Budi\n", app.out.String())
	assert.True(t, app.gate.Authenticated())

	require.NoError(t, app.run(t, "whoami"))
	assert.Equal(t, "Budi <budi@toko.id>\n", app.out.String())

	require.NoError(t, app.run(t, "profile -name Budiman"))
	assert.Equal(t, "Profile updated\n", app.out.String())

	require.NoError(t, app.run(t, "logout"))
	assert.False(t, app.gate.Authenticated())

	err := app.run(t, "whoami")
	require.Error(t, err)
	assert.Equal(t, "Please log in to continue", err.Error())
}

func TestHandler_LoginBadFlag(t *testing.T) {
	app := newTestApp(t, 0)

	err := app.run(t, "login -user budi")
	assert.ErrorIs(t, err, ErrUsage)
	assert.Zero(t, app.srv.TotalCalls())
}

func TestHandler_Customers(t *testing.T) {
	app := newTestApp(t, 7)
	app.srv.AddCustomer(1, "Budi", "1500000", 7)
	app.srv.AddCustomer(2, "Siti", "10", 9)

	require.NoError(t, app.run(t, "customers list"))
	out := app.out.String()
	assert.Contains(t, out, "Budi")
	assert.Contains(t, out, "Rp 1.500.000,00")
	assert.NotContains(t, out, "Siti")

	require.NoError(t, app.run(t, "customers create -name Ani -balance 25.5"))
	assert.Contains(t, app.out.String(), "Customer created")
	assert.Contains(t, app.out.String(), "Rp 25,50")

	require.NoError(t, app.run(t, "customers update 1 -balance 0"))
	assert.Contains(t, app.out.String(), "Customer updated")
	req, ok := app.srv.LastRequest("PUT /customers/{id}")
	require.True(t, ok)
	assert.JSONEq(t, `{"balance":0}`, string(req.Body))

	require.NoError(t, app.run(t, "customers search an"))
	assert.Contains(t, app.out.String(), "Ani")
	assert.NotContains(t, app.out.String(), "Budi")

	require.NoError(t, app.run(t, "customers delete 1"))
	assert.Contains(t, app.out.String(), "Customer deleted")

	assert.ErrorIs(t, app.run(t, "customers update 1"), ErrUsage)
	assert.ErrorIs(t, app.run(t, "customers delete abc"), ErrUsage)
}

func TestHandler_Products(t *testing.T) {
	app := newTestApp(t, 7)
	app.srv.AddProduct(1, "Kopi", "18000", 7)

	require.NoError(t, app.run(t, "products create -name Teh -price 5000"))
	assert.Contains(t, app.out.String(), "Product created")
	assert.Contains(t, app.out.String(), "Rp 5.000,00")

	err := app.run(t, "products create -name Roti -price -1")
	require.Error(t, err)
	assert.Equal(t, "Price must be a valid number", err.Error())

	require.NoError(t, app.run(t, "products update 1 -price 20000"))
	assert.Equal(t, "Product updated\n", app.out.String())

	require.NoError(t, app.run(t, "products search kop"))
	assert.Contains(t, app.out.String(), "Rp 20.000,00")

	require.NoError(t, app.run(t, "products delete 1"))
	require.NoError(t, app.run(t, "products list"))
	assert.NotContains(t, app.out.String(), "Kopi")
}

func TestHandler_QueueCreate(t *testing.T) {
	app := newTestApp(t, 7)
	app.srv.AddCustomer(1, "Budi", "0", 7)
	app.srv.AddProduct(1, "Kopi", "100.50", 7)

	require.NoError(t, app.run(t, "queue create -customer 1 -line 1:2:10 -note pagi"))
	out := app.out.String()
	assert.Contains(t, out, "Rp 191,00")
	assert.Contains(t, out, "Queue created: #")

	req, ok := app.srv.LastRequest("POST /queue")
	require.True(t, ok)
	assert.JSONEq(t, `{"customerId":1,"statusId":1,"note":"pagi","orders":[{"productId":1,"quantity":2,"discount":10}]}`, string(req.Body))

	require.NoError(t, app.run(t, "queue list"))
	assert.Contains(t, app.out.String(), "Budi")
	assert.Contains(t, app.out.String(), "pagi")
}

func TestHandler_QueueCreateReportsCreatedWhenRefreshFails(t *testing.T) {
	app := newTestApp(t, 7)
	app.srv.AddCustomer(1, "Budi", "0", 7)
	app.srv.AddProduct(1, "Kopi", "10", 7)
	app.srv.FailWith("GET /queue", http.StatusInternalServerError)

	require.Error(t, app.run(t, "queue create -customer 1 -line 1:1"))
	assert.Contains(t, app.out.String(), "Queue created: #101")
	assert.Equal(t, 1, app.srv.Calls("POST /queue"))
}

func TestHandler_QueueCreateRejectsForeignRecords(t *testing.T) {
	app := newTestApp(t, 7)
	app.srv.AddCustomer(1, "Budi", "0", 9)
	app.srv.AddCustomer(2, "Ani", "0", 7)
	app.srv.AddProduct(1, "Kopi", "10", 9)

	err := app.run(t, "queue create -customer 1 -line 1:1")
	require.Error(t, err)
	assert.Equal(t, "Customer 1 not found", err.Error())

	err = app.run(t, "queue create -customer 2 -line 1:1")
	require.Error(t, err)
	assert.Equal(t, "Product 1 not found", err.Error())

	assert.Zero(t, app.srv.Calls("POST /queue"))
}

func TestHandler_QueueCreateUsage(t *testing.T) {
	app := newTestApp(t, 7)

	assert.ErrorIs(t, app.run(t, "queue create -customer 1"), ErrUsage)
	assert.ErrorIs(t, app.run(t, "queue create -customer 1 -line 1"), ErrUsage)
	assert.ErrorIs(t, app.run(t, "queue create -customer 1 -line 1:1:-5"), ErrUsage)
	assert.Zero(t, app.srv.TotalCalls())
}

func TestHandler_QueueUpdateDelete(t *testing.T) {
	app := newTestApp(t, 7)
	app.srv.AddCustomer(1, "Budi", "0", 7)
	app.srv.AddProduct(1, "Kopi", "10", 7)
	require.NoError(t, app.run(t, "queue create -customer 1 -line 1:1"))

	require.NoError(t, app.run(t, "queue update 101 -status 3 -payment 2"))
	assert.Equal(t, "Queue updated\n", app.out.String())
	req, ok := app.srv.LastRequest("PUT /queue/{id}")
	require.True(t, ok)
	assert.JSONEq(t, `{"statusId":3,"paymentId":2}`, string(req.Body))

	require.NoError(t, app.run(t, "queue delete 101"))
	assert.Equal(t, "Queue deleted\n", app.out.String())

	err := app.run(t, "queue delete 101")
	require.Error(t, err)
	assert.Equal(t, "Queue not found", err.Error())
}

func TestHandler_Dashboard(t *testing.T) {
	app := newTestApp(t, 7)
	app.srv.AddCustomer(1, "Budi", "1000", 7)
	app.srv.AddProduct(1, "Kopi", "10", 7)
	app.srv.FailWith("GET /queue", http.StatusInternalServerError)

	require.Error(t, app.run(t, "dashboard"))

	app.srv.Restore("GET /queue")
	require.NoError(t, app.run(t, "dashboard"))
	out := app.out.String()
	assert.Contains(t, out, "Customers:")
	assert.Contains(t, out, "Rp 1.000,00")
}
