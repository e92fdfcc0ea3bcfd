// Package session определяет текущего пользователя по сохранённому токену
// и не пускает к пользовательским данным без него.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrUnauthenticated возвращается, когда идентификатор пользователя определить нельзя.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrExpired возвращается для токена с истёкшим сроком действия.
	ErrExpired = fmt.Errorf("%w: token expired", ErrUnauthenticated)
)

// Claims содержит поля токена, из которых берётся идентификатор пользователя.
type Claims struct {
	ID int64 `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// Gate определяет текущего пользователя по токену из TokenStore.
// Подпись не проверяется: у клиента нет ключа, подлинность токена проверяет сервер.
type Gate struct {
	store  TokenStore
	parser *jwt.Parser
	now    func() time.Time
}

// NewGate создаёт шлюз сессии поверх хранилища токена.
func NewGate(store TokenStore) *Gate {
	return &Gate{
		store:  store,
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

// Token возвращает сохранённый токен для заголовка Authorization.
func (g *Gate) Token() (string, error) {
	return g.store.Load()
}

// CurrentUserID возвращает идентификатор пользователя из токена.
func (g *Gate) CurrentUserID() (int64, error) {
	token, err := g.store.Load()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if token == "" {
		return 0, ErrUnauthenticated
	}

	claims, err := g.decode(token)
	if err != nil {
		return 0, err
	}
	return userID(claims)
}

// Authenticated сообщает, есть ли действующая сессия.
func (g *Gate) Authenticated() bool {
	_, err := g.CurrentUserID()
	return err == nil
}

// SignIn сохраняет токен, если из него удаётся получить идентификатор пользователя.
func (g *Gate) SignIn(token string) error {
	claims, err := g.decode(token)
	if err != nil {
		return err
	}
	if _, err := userID(claims); err != nil {
		return err
	}
	if err := g.store.Save(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// SignOut удаляет сохранённый токен.
func (g *Gate) SignOut() error {
	if err := g.store.Clear(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (g *Gate) decode(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := g.parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(g.now()) {
		return nil, ErrExpired
	}
	return claims, nil
}

func userID(c *Claims) (int64, error) {
	if c.ID > 0 {
		return c.ID, nil
	}
	if id, err := strconv.ParseInt(c.Subject, 10, 64); err == nil && id > 0 {
		return id, nil
	}
	return 0, fmt.Errorf("%w: token has no user id", ErrUnauthenticated)
}
