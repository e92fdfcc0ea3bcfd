package handler

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// CommandFunc обрабатывает команду с оставшимися аргументами.
type CommandFunc func(ctx context.Context, args []string) error

type route struct {
	usage string
	run   CommandFunc
}

// Router сопоставляет команду из одного или двух слов с обработчиком.
type Router struct {
	routes map[string]route
	order  []string
	out    io.Writer
	logger *zap.Logger
}

// Handle регистрирует обработчик команды pattern ("dashboard", "customers list").
func (r *Router) Handle(pattern, usage string, fn CommandFunc) {
	if _, exists := r.routes[pattern]; !exists {
		r.order = append(r.order, pattern)
	}
	r.routes[pattern] = route{usage: usage, run: fn}
}

// Run выполняет команду из args.
func (r *Router) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		r.Usage()
		return fmt.Errorf("%w: no command given", ErrUsage)
	}
	if args[0] == "help" {
		r.Usage()
		return nil
	}

	if len(args) > 1 {
		if rt, ok := r.routes[args[0]+" "+args[1]]; ok {
			r.logger.Debug("run command", zap.String("command", args[0]+" "+args[1]))
			return rt.run(ctx, args[2:])
		}
	}
	if rt, ok := r.routes[args[0]]; ok {
		r.logger.Debug("run command", zap.String("command", args[0]))
		return rt.run(ctx, args[1:])
	}

	r.Usage()
	return fmt.Errorf("%w: unknown command %q", ErrUsage, strings.Join(args, " "))
}

// Usage печатает список команд.
func (r *Router) Usage() {
	fmt.Fprintln(r.out, "usage: antrian [-u url] [-t token-file] [-timeout d] [-l level] <command>")
	fmt.Fprintln(r.out, "commands:")
	for _, p := range r.order {
		fmt.Fprintf(r.out, "  %s\n", r.routes[p].usage)
	}
}

// SetupRouter регистрирует команды консольного клиента.
func (h *Handler) SetupRouter() *Router {
	r := &Router{
		routes: make(map[string]route),
		out:    h.out,
		logger: h.logger,
	}

	r.Handle("login", "login -email <email> -password <password>", h.Login)
	r.Handle("register", "register -name <name> -email <email> -password <password>", h.Register)
	r.Handle("logout", "logout", h.Logout)
	r.Handle("whoami", "whoami", h.WhoAmI)
	r.Handle("profile", "profile [-name <name>] [-password <password>]", h.Profile)

	r.Handle("customers list", "customers list", h.ListCustomers)
	r.Handle("customers search", "customers search <query>", h.SearchCustomers)
	r.Handle("customers create", "customers create -name <name> [-balance <amount>]", h.CreateCustomer)
	r.Handle("customers update", customerUpdateUsage, h.UpdateCustomer)
	r.Handle("customers delete", customerDeleteUsage, h.DeleteCustomer)

	r.Handle("products list", "products list", h.ListProducts)
	r.Handle("products search", "products search <query>", h.SearchProducts)
	r.Handle("products create", "products create -name <name> -price <amount>", h.CreateProduct)
	r.Handle("products update", productUpdateUsage, h.UpdateProduct)
	r.Handle("products delete", productDeleteUsage, h.DeleteProduct)

	r.Handle("queue list", "queue list", h.ListQueues)
	r.Handle("queue create", queueCreateUsage, h.CreateQueue)
	r.Handle("queue update", queueUpdateUsage, h.UpdateQueue)
	r.Handle("queue delete", queueDeleteUsage, h.DeleteQueue)

	r.Handle("dashboard", "dashboard", h.Dashboard)

	return r
}
