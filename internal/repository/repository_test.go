package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/antrian-client/internal/api"
	"github.com/mmeshcher/antrian-client/internal/apitest"
	"github.com/mmeshcher/antrian-client/internal/middleware"
	"github.com/mmeshcher/antrian-client/internal/model"
	"github.com/mmeshcher/antrian-client/internal/session"
)

func newClient(t *testing.T, srv *apitest.Server, userID int64) *api.Client {
	t.Helper()

	store := session.NewMemoryStore("")
	if userID > 0 {
		require.NoError(t, store.Save(apitest.Token(userID)))
	}
	transport := middleware.Chain(api.DefaultTransport(), middleware.BearerAuth(session.NewGate(store)))
	return api.NewClient(srv.URL, transport, time.Second)
}

func TestAuthRepository_Login(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.AddUser(7, "Budi", "budi@toko.id", "rahasia")

	repo := NewAuthRepository(newClient(t, srv, 0))

	sess, err := repo.Login(context.Background(), "budi@toko.id", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, "Budi", sess.User.Name)
	assert.Equal(t, apitest.Token(7), sess.Token)
}

func TestAuthRepository_PropagatesErrorsUnchanged(t *testing.T) {
	srv := apitest.NewServer(t)
	repo := NewAuthRepository(newClient(t, srv, 0))

	_, err := repo.Login(context.Background(), "nobody@toko.id", "x")

	var sErr *api.StatusError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, http.StatusUnauthorized, sErr.StatusCode)
}

func TestAuthRepository_Profile(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.AddUser(7, "Budi", "budi@toko.id", "rahasia")
	repo := NewAuthRepository(newClient(t, srv, 7))

	u, err := repo.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.User{ID: 7, Name: "Budi", Email: "budi@toko.id"}, *u)

	name := "Budi Santoso"
	u, err = repo.UpdateCurrentUser(context.Background(), model.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", u.Name)

	require.NoError(t, repo.Logout(context.Background()))
	assert.Equal(t, 1, srv.Calls("POST /users/logout"))
}

func TestCustomerRepository_MapsShapes(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.AddCustomer(1, "Budi", "100.10", 7)
	srv.AddCustomer(2, "Siti", "5", 9)

	repo := NewCustomerRepository(newClient(t, srv, 7))

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(9), all[1].OwnerUserID)
	assert.True(t, all[0].Balance.Equal(decimal.RequireFromString("100.10")))

	found, err := repo.Search(context.Background(), "sit")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Siti", found[0].Name)
	req, _ := srv.LastRequest("GET /customers/search")
	assert.Equal(t, "q=sit", req.Query)
}

func TestCustomerRepository_Mutations(t *testing.T) {
	srv := apitest.NewServer(t)
	repo := NewCustomerRepository(newClient(t, srv, 7))
	ctx := context.Background()

	created, err := repo.Create(ctx, model.CustomerInput{Name: "Budi", Balance: decimal.RequireFromString("12.50")})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.OwnerUserID)

	req, _ := srv.LastRequest("POST /customers")
	assert.JSONEq(t, `{"nama":"Budi","balance":12.5}`, string(req.Body))

	balance := decimal.RequireFromString("20")
	updated, err := repo.Update(ctx, created.ID, model.CustomerPatch{Balance: &balance})
	require.NoError(t, err)
	assert.Equal(t, "Budi", updated.Name)
	assert.True(t, updated.Balance.Equal(balance))

	req, _ = srv.LastRequest("PUT /customers/{id}")
	assert.JSONEq(t, `{"balance":20}`, string(req.Body))

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.True(t, api.IsStatus(repo.Delete(ctx, created.ID), http.StatusNotFound))
}

func TestProductRepository(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.AddProduct(1, "Kopi Susu", "18000", 7)
	repo := NewProductRepository(newClient(t, srv, 7))
	ctx := context.Background()

	found, err := repo.Search(ctx, "kopi")
	require.NoError(t, err)
	require.Len(t, found, 1)
	req, _ := srv.LastRequest("GET /products/search")
	assert.Equal(t, "nama=kopi", req.Query)

	created, err := repo.Create(ctx, model.ProductInput{Name: "Teh", Price: decimal.RequireFromString("5000.50")})
	require.NoError(t, err)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("5000.5")))

	name := "Teh Manis"
	updated, err := repo.Update(ctx, created.ID, model.ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Teh Manis", updated.Name)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, created.ID))
}

func TestQueueRepository(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.AddCustomer(1, "Budi", "0", 7)
	srv.AddProduct(1, "Kopi", "100.50", 7)
	repo := NewQueueRepository(newClient(t, srv, 7))
	ctx := context.Background()

	created, err := repo.Create(ctx, model.QueueSubmission{
		CustomerID: 1,
		StatusID:   1,
		Orders:     []model.OrderItem{{ProductID: 1, Quantity: 2, Discount: decimal.RequireFromString("10.00")}},
	})
	require.NoError(t, err)
	assert.True(t, created.Total.Equal(decimal.RequireFromString("191")), "total %s", created.Total)
	require.Len(t, created.Items, 1)
	require.NotNil(t, created.Items[0].Product)
	assert.Equal(t, "Kopi", created.Items[0].Product.Name)
	require.NotNil(t, created.Customer)

	req, _ := srv.LastRequest("POST /queue")
	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.NotContains(t, body, "note")
	assert.NotContains(t, body, "paymentId")

	status := int64(2)
	updated, err := repo.Update(ctx, created.ID, model.QueuePatch{StatusID: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.StatusID)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(7), all[0].OwnerUserID)

	require.NoError(t, repo.Delete(ctx, created.ID))
}
