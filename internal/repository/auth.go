package repository

import (
	"context"

	"github.com/mmeshcher/antrian-client/internal/api"
	"github.com/mmeshcher/antrian-client/internal/model"
)

// AuthRepository выполняет вход, регистрацию и операции с профилем.
// Сохранением токена занимается контроллер, а не репозиторий.
type AuthRepository struct {
	client *api.Client
}

// NewAuthRepository создаёт репозиторий аутентификации.
func NewAuthRepository(client *api.Client) *AuthRepository {
	return &AuthRepository{client: client}
}

// Login выполняет вход и возвращает пользователя с токеном.
func (r *AuthRepository) Login(ctx context.Context, email, password string) (*model.Session, error) {
	resp, err := r.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return &model.Session{User: toUser(resp), Token: resp.Token}, nil
}

// Register регистрирует пользователя и возвращает его сессию.
func (r *AuthRepository) Register(ctx context.Context, name, email, password string) (*model.Session, error) {
	resp, err := r.client.Register(ctx, api.RegisterRequest{Nama: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return &model.Session{User: toUser(resp), Token: resp.Token}, nil
}

// CurrentUser возвращает профиль текущего пользователя.
func (r *AuthRepository) CurrentUser(ctx context.Context) (*model.User, error) {
	resp, err := r.client.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	u := toUser(resp)
	return &u, nil
}

// UpdateCurrentUser изменяет профиль текущего пользователя.
func (r *AuthRepository) UpdateCurrentUser(ctx context.Context, patch model.UserPatch) (*model.User, error) {
	resp, err := r.client.UpdateCurrentUser(ctx, api.UpdateUserRequest{Nama: patch.Name, Password: patch.Password})
	if err != nil {
		return nil, err
	}
	u := toUser(resp)
	return &u, nil
}

// Logout завершает сессию на сервере.
func (r *AuthRepository) Logout(ctx context.Context) error {
	return r.client.Logout(ctx)
}
