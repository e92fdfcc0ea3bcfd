// Package handler содержит обработчики команд консольного клиента antrian.
//
// Обработчик разбирает аргументы команды, вызывает контроллер и печатает
// опубликованное контроллером состояние.
package handler

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/antrian-client/internal/controller"
)

// ErrUsage возвращается при неверном вызове команды.
var ErrUsage = errors.New("usage")

// Controllers объединяет контроллеры, с которыми работают команды.
type Controllers struct {
	Auth      *controller.AuthController
	Customers *controller.CustomerController
	Products  *controller.ProductController
	Queues    *controller.QueueController
	Dashboard *controller.DashboardController
}

// Handler реализует команды консольного клиента.
type Handler struct {
	auth      *controller.AuthController
	customers *controller.CustomerController
	products  *controller.ProductController
	queues    *controller.QueueController
	dashboard *controller.DashboardController
	out       io.Writer
	logger    *zap.Logger
}

// NewHandler создаёт обработчик команд, печатающий результат в out.
func NewHandler(c Controllers, out io.Writer, logger *zap.Logger) *Handler {
	return &Handler{
		auth:      c.Auth,
		customers: c.Customers,
		products:  c.Products,
		queues:    c.Queues,
		dashboard: c.Dashboard,
		out:       out,
		logger:    logger,
	}
}

// Login выполняет вход: login -email <email> -password <password>.
func (h *Handler) Login(ctx context.Context, args []string) error {
	fs := h.flagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	if err := h.auth.Login(ctx, *email, *password); err != nil {
		return err
	}
	return h.println(h.auth.State().Get().Message)
}

// Register создаёт учётную запись: register -name <name> -email <email> -password <password>.
func (h *Handler) Register(ctx context.Context, args []string) error {
	fs := h.flagSet("register")
	name := fs.String("name", "", "shop owner name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	if err := h.auth.Register(ctx, *name, *email, *password); err != nil {
		return err
	}
	return h.println(h.auth.State().Get().Message)
}

// Logout завершает сессию.
func (h *Handler) Logout(ctx context.Context, _ []string) error {
	if err := h.auth.Logout(ctx); err != nil {
		return err
	}
	return h.println("Logged out")
}

// WhoAmI печатает профиль текущего пользователя.
func (h *Handler) WhoAmI(ctx context.Context, _ []string) error {
	if err := h.auth.CurrentUser(ctx); err != nil {
		return err
	}
	u := h.auth.State().Get().Data
	_, err := fmt.Fprintf(h.out, "%s <%s>\n", u.Name, u.Email)
	return err
}

// Profile изменяет профиль: profile [-name <name>] [-password <password>].
func (h *Handler) Profile(ctx context.Context, args []string) error {
	fs := h.flagSet("profile")
	name := fs.String("name", "", "new name")
	password := fs.String("password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	set := visited(fs)
	if !set["name"] && !set["password"] {
		return fmt.Errorf("%w: profile [-name <name>] [-password <password>]", ErrUsage)
	}
	if err := h.auth.UpdateCurrentUser(ctx, optional(set, "name", name), optional(set, "password", password)); err != nil {
		return err
	}
	return h.println(h.auth.State().Get().Message)
}

// Dashboard печатает сводку по покупателям, товарам и очередям.
func (h *Handler) Dashboard(ctx context.Context, _ []string) error {
	if err := h.dashboard.Load(ctx); err != nil {
		return err
	}
	return h.printSummary(h.dashboard.State().Get().Data)
}

func (h *Handler) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(h.out)
	return fs
}

func (h *Handler) println(message string) error {
	if message == "" {
		return nil
	}
	_, err := fmt.Fprintln(h.out, message)
	return err
}

func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// visited возвращает имена флагов, явно переданных в командной строке.
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func optional[T any](set map[string]bool, name string, v *T) *T {
	if !set[name] {
		return nil
	}
	return v
}

// splitID отделяет идентификатор записи от флагов: "update 12 -name X".
func splitID(args []string, usage string) (int64, []string, error) {
	if len(args) == 0 {
		return 0, nil, fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, nil, fmt.Errorf("%w: %s: invalid id %q", ErrUsage, usage, args[0])
	}
	return id, args[1:], nil
}

func joinQuery(args []string) string {
	return strings.Join(args, " ")
}
