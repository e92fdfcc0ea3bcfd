package controller

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/antrian-client/internal/model"
	"github.com/mmeshcher/antrian-client/internal/result"
	"github.com/mmeshcher/antrian-client/internal/validation"
)

// AuthRepository описывает операции входа и профиля, используемые контроллером.
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (*model.Session, error)
	Register(ctx context.Context, name, email, password string) (*model.Session, error)
	CurrentUser(ctx context.Context) (*model.User, error)
	UpdateCurrentUser(ctx context.Context, patch model.UserPatch) (*model.User, error)
	Logout(ctx context.Context) error
}

// SessionManager хранит токен текущей сессии.
type SessionManager interface {
	UserResolver
	SignIn(token string) error
	SignOut() error
}

// AuthController управляет входом, регистрацией и профилем пользователя.
type AuthController struct {
	repo     AuthRepository
	sessions SessionManager
	logger   *zap.Logger
	state    *result.Cell[model.User]
	flight   flight
}

// NewAuthController создаёт контроллер аутентификации.
func NewAuthController(repo AuthRepository, sessions SessionManager, logger *zap.Logger) *AuthController {
	return &AuthController{
		repo:     repo,
		sessions: sessions,
		logger:   logger,
		state:    result.NewCell[model.User](),
	}
}

// State возвращает ячейку состояния текущего пользователя.
func (c *AuthController) State() *result.Cell[model.User] {
	return c.state
}

// Login выполняет вход и сохраняет полученный токен.
func (c *AuthController) Login(ctx context.Context, email, password string) error {
	if err := validation.Email("email", email); err != nil {
		return c.reject(opLogin, err)
	}
	if err := validation.Required("password", password); err != nil {
		return c.reject(opLogin, err)
	}

	ctx, seq := c.begin(ctx, activityLogin)
	s, err := c.repo.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return c.fail(seq, opLogin, err)
	}
	return c.startSession(seq, opLogin, s, "Welcome back, "+s.User.Name)
}

// Register создаёт учётную запись и сразу открывает сессию.
func (c *AuthController) Register(ctx context.Context, name, email, password string) error {
	if err := validation.Required("name", name); err != nil {
		return c.reject(opRegister, err)
	}
	if err := validation.Email("email", email); err != nil {
		return c.reject(opRegister, err)
	}
	if err := validation.Required("password", password); err != nil {
		return c.reject(opRegister, err)
	}

	ctx, seq := c.begin(ctx, activityRegister)
	s, err := c.repo.Register(ctx, strings.TrimSpace(name), strings.TrimSpace(email), password)
	if err != nil {
		return c.fail(seq, opRegister, err)
	}
	return c.startSession(seq, opRegister, s, "Account created")
}

// CurrentUser загружает профиль пользователя текущей сессии.
func (c *AuthController) CurrentUser(ctx context.Context) error {
	ctx, seq := c.begin(ctx, activityFetch)
	if _, err := c.sessions.CurrentUserID(); err != nil {
		return c.fail(seq, opProfile, err)
	}

	u, err := c.repo.CurrentUser(ctx)
	if err != nil {
		return c.fail(seq, opProfile, err)
	}
	return c.succeed(seq, *u, "")
}

// UpdateCurrentUser изменяет имя и/или пароль; nil означает «не менять».
func (c *AuthController) UpdateCurrentUser(ctx context.Context, name, password *string) error {
	var patch model.UserPatch
	if name != nil {
		if err := validation.Required("name", *name); err != nil {
			return c.reject(opUpdateProfile, err)
		}
		trimmed := strings.TrimSpace(*name)
		patch.Name = &trimmed
	}
	if password != nil {
		if err := validation.Required("password", *password); err != nil {
			return c.reject(opUpdateProfile, err)
		}
		patch.Password = password
	}

	ctx, seq := c.begin(ctx, activityUpdate)
	u, err := c.repo.UpdateCurrentUser(ctx, patch)
	if err != nil {
		return c.fail(seq, opUpdateProfile, err)
	}
	return c.succeed(seq, *u, "Profile updated")
}

// Logout завершает сессию. Ошибка сервера только логируется: локальная
// сессия очищается в любом случае.
func (c *AuthController) Logout(ctx context.Context) error {
	if err := c.repo.Logout(ctx); err != nil {
		c.logger.Warn("remote logout failed, clearing local session anyway", zap.Error(err))
	}

	if err := c.sessions.SignOut(); err != nil {
		return c.reject(opLogout, err)
	}
	c.flight.interrupt(func() { c.state.Set(result.Idle[model.User]()) })
	return nil
}

func (c *AuthController) begin(ctx context.Context, a activity) (context.Context, uint64) {
	return c.flight.begin(ctx, func() {
		c.state.Set(result.Loading[model.User](loadingMessage(a)))
	})
}

func (c *AuthController) startSession(seq uint64, op operation, s *model.Session, message string) error {
	if err := c.sessions.SignIn(s.Token); err != nil {
		return c.fail(seq, op, err)
	}

	u := s.User
	if u.ID == 0 {
		if id, err := c.sessions.CurrentUserID(); err == nil {
			u.ID = id
		}
	}
	return c.succeed(seq, u, message)
}

func (c *AuthController) succeed(seq uint64, u model.User, message string) error {
	if !c.flight.settle(seq, func() { c.state.Set(result.Success(u, message)) }) {
		return ErrSuperseded
	}
	return nil
}

func (c *AuthController) fail(seq uint64, op operation, err error) error {
	appErr := translate(entityAccount, op, err)
	if !c.flight.settle(seq, func() { c.state.Set(result.Failure[model.User](appErr.Message)) }) {
		return ErrSuperseded
	}
	logFailure(c.logger, entityAccount, op, appErr)
	return appErr
}

func (c *AuthController) reject(op operation, err error) error {
	appErr := translate(entityAccount, op, err)
	c.flight.interrupt(func() { c.state.Set(result.Failure[model.User](appErr.Message)) })
	logFailure(c.logger, entityAccount, op, appErr)
	return appErr
}
