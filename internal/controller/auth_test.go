package controller

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/antrian-client/internal/apitest"
	"github.com/mmeshcher/antrian-client/internal/model"
	"github.com/mmeshcher/antrian-client/internal/repository"
)

func newAuthController(e *env) *AuthController {
	return NewAuthController(repository.NewAuthRepository(e.client), e.gate, zap.NewNop())
}

func TestAuthController_LoginStoresToken(t *testing.T) {
	e := newEnv(t, 0)
	e.srv.AddUser(7, "Budi", "budi@toko.id", "rahasia")
	c := newAuthController(e)

	require.NoError(t, c.Login(context.Background(), " budi@toko.id ", "rahasia"))

	token, err := e.store.Load()
	require.NoError(t, err)
	assert.Equal(t, apitest.Token(7), token)

	st := c.State().Get()
	require.True(t, st.IsSuccess())
	assert.Equal(t, model.User{ID: 7, Name: "Budi", Email: "budi@toko.id"}, st.Data)
	assert.Equal(t, "Welcome back, Budi", st.Message)
}

func TestAuthController_LoginWrongPassword(t *testing.T) {
	e := newEnv(t, 0)
	e.srv.AddUser(7, "Budi", "budi@toko.id", "rahasia")
	c := newAuthController(e)

	err := c.Login(context.Background(), "budi@toko.id", "salah")

	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", err.Error())
	assert.False(t, e.gate.Authenticated())
}

func TestAuthController_LoginValidation(t *testing.T) {
	e := newEnv(t, 0)
	c := newAuthController(e)

	err := c.Login(context.Background(), "budi", "x")
	require.Error(t, err)
	assert.Equal(t, "Email must be a valid email address", err.Error())

	err = c.Login(context.Background(), "budi@toko.id", "")
	require.Error(t, err)
	assert.Equal(t, "Password is required", err.Error())
	assert.Zero(t, e.srv.TotalCalls())
}

func TestAuthController_Register(t *testing.T) {
	e := newEnv(t, 0)
	e.srv.AddUser(7, "Budi", "budi@toko.id", "rahasia")
	c := newAuthController(e)

	err := c.Register(context.Background(), "Budi", "budi@toko.id", "x")
	require.Error(t, err)
	assert.Equal(t, "This email is already registered", err.Error())

	require.NoError(t, c.Register(context.Background(), "Siti", "siti@toko.id", "x"))
	assert.True(t, e.gate.Authenticated())
	st := c.State().Get()
	assert.Equal(t, "Siti", st.Data.Name)
	assert.NotZero(t, st.Data.ID)
}

func TestAuthController_Profile(t *testing.T) {
	e := newEnv(t, 7)
	e.srv.AddUser(7, "Budi", "budi@toko.id", "rahasia")
	c := newAuthController(e)

	require.NoError(t, c.CurrentUser(context.Background()))
	assert.Equal(t, "Budi", c.State().Get().Data.Name)

	name := "Budi Santoso"
	require.NoError(t, c.UpdateCurrentUser(context.Background(), &name, nil))
	assert.Equal(t, "Budi Santoso", c.State().Get().Data.Name)
	assert.Equal(t, "Profile updated", c.State().Get().Message)
}

func TestAuthController_CurrentUserWithoutSession(t *testing.T) {
	e := newEnv(t, 0)
	c := newAuthController(e)

	err := c.CurrentUser(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Please log in to continue", err.Error())
	assert.Zero(t, e.srv.TotalCalls())
}

func TestAuthController_LogoutIsBestEffort(t *testing.T) {
	e := newEnv(t, 7)
	e.srv.FailWith("POST /users/logout", http.StatusInternalServerError)
	c := newAuthController(e)

	require.NoError(t, c.Logout(context.Background()))

	assert.Equal(t, 1, e.srv.Calls("POST /users/logout"))
	assert.False(t, e.gate.Authenticated())
	assert.True(t, c.State().Get().IsIdle())
}
