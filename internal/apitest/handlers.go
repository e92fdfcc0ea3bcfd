package apitest

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/antrian-client/internal/api"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Email]
	s.mu.Unlock()

	if !ok || u.Password != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"errors": "Email or password wrong"})
		return
	}
	writeData(w, http.StatusOK, api.UserResponse{Nama: u.Nama, Email: u.Email, Token: Token(u.ID)})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	if _, exists := s.users[req.Email]; exists {
		s.mu.Unlock()
		writeJSON(w, http.StatusConflict, map[string]string{"errors": "Email already registered"})
		return
	}
	u := user{ID: s.newID(), Nama: req.Nama, Email: req.Email, Password: req.Password}
	s.users[u.Email] = u
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, api.UserResponse{Nama: u.Nama, Email: u.Email, Token: Token(u.ID)})
}

func (s *Server) findUser(id int64) (user, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return user{}, false
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u, ok := s.findUser(currentUserID(r))
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"errors": "User not found"})
		return
	}
	writeData(w, http.StatusOK, api.UserResponse{ID: u.ID, Nama: u.Nama, Email: u.Email})
}

func (s *Server) updateCurrentUser(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateUserRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findUser(currentUserID(r))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"errors": "User not found"})
		return
	}
	if req.Nama != nil {
		u.Nama = *req.Nama
	}
	if req.Password != nil {
		u.Password = *req.Password
	}
	s.users[u.Email] = u
	writeData(w, http.StatusOK, api.UserResponse{ID: u.ID, Nama: u.Nama, Email: u.Email})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, "OK")
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]api.CustomerResponse{}, s.customers...)
	s.mu.Unlock()
	writeData(w, http.StatusOK, out)
}

func (s *Server) searchCustomers(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))

	s.mu.Lock()
	out := []api.CustomerResponse{}
	for _, c := range s.customers {
		if strings.Contains(strings.ToLower(c.Nama), q) {
			out = append(out, c)
		}
	}
	s.mu.Unlock()
	writeData(w, http.StatusOK, out)
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req api.CustomerRequest
	if !decode(w, r, &req) {
		return
	}
	balance, err := decimal.NewFromString(req.Balance.String())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"errors": "invalid balance"})
		return
	}

	s.mu.Lock()
	for _, c := range s.customers {
		if c.UserID == currentUserID(r) && strings.EqualFold(c.Nama, req.Nama) {
			s.mu.Unlock()
			writeJSON(w, http.StatusConflict, map[string]string{"errors": "Customer already exists"})
			return
		}
	}
	c := api.CustomerResponse{ID: s.newID(), Nama: req.Nama, Balance: balance, UserID: currentUserID(r)}
	s.customers = append(s.customers, c)
	s.mu.Unlock()

	writeData(w, http.StatusCreated, c)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"errors": "invalid id"})
		return
	}
	var req api.CustomerPatchRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.customers {
		if c.ID != id {
			continue
		}
		if req.Nama != nil {
			c.Nama = *req.Nama
		}
		if req.Balance != nil {
			c.Balance = decimal.RequireFromString(req.Balance.String())
		}
		s.customers[i] = c
		writeData(w, http.StatusOK, c)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"errors": "Customer not found"})
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.customers {
		if c.ID == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			writeData(w, http.StatusOK, "OK")
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"errors": "Customer not found"})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]api.ProductResponse{}, s.products...)
	s.mu.Unlock()
	writeData(w, http.StatusOK, out)
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("nama"))

	s.mu.Lock()
	out := []api.ProductResponse{}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Nama), q) {
			out = append(out, p)
		}
	}
	s.mu.Unlock()
	writeData(w, http.StatusOK, out)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req api.ProductRequest
	if !decode(w, r, &req) {
		return
	}
	price, err := decimal.NewFromString(req.Price.String())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"errors": "invalid price"})
		return
	}

	s.mu.Lock()
	p := api.ProductResponse{ID: s.newID(), Nama: req.Nama, Price: price, UserID: currentUserID(r)}
	s.products = append(s.products, p)
	s.mu.Unlock()

	writeData(w, http.StatusCreated, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	var req api.ProductPatchRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID != id {
			continue
		}
		if req.Nama != nil {
			p.Nama = *req.Nama
		}
		if req.Price != nil {
			p.Price = decimal.RequireFromString(req.Price.String())
		}
		s.products[i] = p
		writeData(w, http.StatusOK, p)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"errors": "Product not found"})
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			writeData(w, http.StatusOK, "OK")
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"errors": "Product not found"})
}

func (s *Server) createQueue(w http.ResponseWriter, r *http.Request) {
	var req api.QueueRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := api.QueueResponse{
		ID:         s.newID(),
		CustomerID: req.CustomerID,
		StatusID:   req.StatusID,
		PaymentID:  req.PaymentID,
		Note:       req.Note,
		UserID:     currentUserID(r),
		Total:      decimal.Zero,
	}
	for _, c := range s.customers {
		if c.ID == req.CustomerID {
			c := c
			q.Customer = &c
		}
	}
	if q.Customer == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"errors": "Customer not found"})
		return
	}

	for _, o := range req.Orders {
		var product *api.ProductResponse
		for _, p := range s.products {
			if p.ID == o.ProductID {
				p := p
				product = &p
			}
		}
		if product == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"errors": "Product not found"})
			return
		}

		discount := decimal.RequireFromString(o.Discount.String())
		total := product.Price.Mul(decimal.NewFromInt(int64(o.Quantity))).Sub(discount)
		q.Orders = append(q.Orders, api.OrderResponse{
			ProductID:  o.ProductID,
			Product:    product,
			Quantity:   o.Quantity,
			Discount:   discount,
			TotalPrice: total,
		})
		q.Total = q.Total.Add(total)
	}

	s.queues = append(s.queues, q)
	writeData(w, http.StatusCreated, q)
}

func (s *Server) listQueues(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]api.QueueResponse{}, s.queues...)
	s.mu.Unlock()
	writeData(w, http.StatusOK, out)
}

func (s *Server) updateQueue(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	var req api.QueuePatchRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, q := range s.queues {
		if q.ID != id {
			continue
		}
		if req.StatusID != nil {
			q.StatusID = *req.StatusID
		}
		if req.PaymentID != nil {
			q.PaymentID = req.PaymentID
		}
		if req.Note != nil {
			q.Note = req.Note
		}
		s.queues[i] = q
		writeData(w, http.StatusOK, q)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"errors": "Queue not found"})
}

func (s *Server) deleteQueue(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, q := range s.queues {
		if q.ID == id {
			s.queues = append(s.queues[:i], s.queues[i+1:]...)
			writeData(w, http.StatusOK, "OK")
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"errors": "Queue not found"})
}
