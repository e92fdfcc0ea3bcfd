// Package apitest содержит поддельный удалённый API для тестов клиента.
//
// Сервер хранит данные в памяти, как настоящий API отдаёт записи всех пользователей
// и позволяет подменять ответы маршрутов, задерживать их и считать вызовы.
package apitest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/antrian-client/internal/api"
)

const signingKey = "apitest-secret"

type userIDKey struct{}

type user struct {
	ID       int64
	Nama     string
	Email    string
	Password string
}

// Request описывает запрос, полученный сервером.
type Request struct {
	Route string
	Query string
	Body  []byte
}

// Server реализует поддельный API поверх httptest.Server.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	nextID    int64
	users     map[string]user
	customers []api.CustomerResponse
	products  []api.ProductResponse
	queues    []api.QueueResponse
	requests  []Request
	failures  map[string]int
	blocks    map[string]chan struct{}
}

// NewServer запускает сервер и останавливает его по завершении теста.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		nextID:   100,
		users:    make(map[string]user),
		failures: make(map[string]int),
		blocks:   make(map[string]chan struct{}),
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/login", s.handle("POST /users/login", s.login))
		r.Post("/users", s.handle("POST /users", s.register))

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/users/current", s.handle("GET /users/current", s.currentUser))
			r.Put("/users/current", s.handle("PUT /users/current", s.updateCurrentUser))
			r.Post("/users/logout", s.handle("POST /users/logout", s.logout))

			r.Get("/customers", s.handle("GET /customers", s.listCustomers))
			r.Get("/customers/search", s.handle("GET /customers/search", s.searchCustomers))
			r.Post("/customers", s.handle("POST /customers", s.createCustomer))
			r.Put("/customers/{id}", s.handle("PUT /customers/{id}", s.updateCustomer))
			r.Delete("/customers/{id}", s.handle("DELETE /customers/{id}", s.deleteCustomer))

			r.Get("/products", s.handle("GET /products", s.listProducts))
			r.Get("/products/search", s.handle("GET /products/search", s.searchProducts))
			r.Post("/products", s.handle("POST /products", s.createProduct))
			r.Put("/products/{id}", s.handle("PUT /products/{id}", s.updateProduct))
			r.Delete("/products/{id}", s.handle("DELETE /products/{id}", s.deleteProduct))

			r.Post("/queue", s.handle("POST /queue", s.createQueue))
			r.Get("/queue", s.handle("GET /queue", s.listQueues))
			r.Put("/queue/{id}", s.handle("PUT /queue/{id}", s.updateQueue))
			r.Delete("/queue/{id}", s.handle("DELETE /queue/{id}", s.deleteQueue))
		})
	})

	return r
}

// Token выдаёт токен пользователя, который принимает этот сервер.
func Token(userID int64) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": userID}).SignedString([]byte(signingKey))
	if err != nil {
		panic(err)
	}
	return token
}

// AddUser регистрирует пользователя для входа по email и паролю.
func (s *Server) AddUser(id int64, nama, email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = user{ID: id, Nama: nama, Email: email, Password: password}
}

// AddCustomer добавляет покупателя любого владельца.
func (s *Server) AddCustomer(id int64, nama, balance string, ownerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append(s.customers, api.CustomerResponse{ID: id, Nama: nama, Balance: decimal.RequireFromString(balance), UserID: ownerID})
}

// AddProduct добавляет товар любого владельца.
func (s *Server) AddProduct(id int64, nama, price string, ownerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, api.ProductResponse{ID: id, Nama: nama, Price: decimal.RequireFromString(price), UserID: ownerID})
}

// FailWith заставляет маршрут отвечать указанным кодом, пока не будет вызван Restore.
func (s *Server) FailWith(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

// Restore снимает подмену ответа маршрута.
func (s *Server) Restore(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Block задерживает ответы маршрута до вызова release.
func (s *Server) Block(route string) (release func()) {
	ch := make(chan struct{})

	s.mu.Lock()
	s.blocks[route] = ch
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.blocks[route] == ch {
			delete(s.blocks, route)
			close(ch)
		}
	}
}

// Calls возвращает количество запросов к маршруту.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.requests {
		if r.Route == route {
			n++
		}
	}
	return n
}

// TotalCalls возвращает количество всех запросов.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest возвращает последний запрос к маршруту.
func (s *Server) LastRequest(route string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Route == route {
			return s.requests[i], true
		}
	}
	return Request{}, false
}

func (s *Server) handle(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Request{Route: route, Query: r.URL.RawQuery, Body: body})
		status, failing := s.failures[route]
		block := s.blocks[route]
		s.mu.Unlock()

		if block != nil {
			select {
			case <-block:
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			writeJSON(w, status, map[string]string{"errors": http.StatusText(status)})
			return
		}
		h(w, r)
	}
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"errors": "Unauthorized"})
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return []byte(signingKey), nil })
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"errors": "Unauthorized"})
			return
		}
		id, _ := claims["id"].(float64)

		ctx := context.WithValue(r.Context(), userIDKey{}, int64(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUserID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey{}).(int64)
	return id
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (s *Server) newID() int64 {
	s.nextID++
	return s.nextID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, map[string]any{"data": v})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"errors": err.Error()})
		return false
	}
	return true
}

// Close снимает все задержки и останавливает сервер.
func (s *Server) Close() {
	s.mu.Lock()
	for route, ch := range s.blocks {
		delete(s.blocks, route)
		close(ch)
	}
	s.mu.Unlock()

	s.Server.Close()
}
