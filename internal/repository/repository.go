// Package repository переводит доменные вызовы в запросы к удалённому API и обратно.
//
// Репозитории не переводят ошибки: любая ошибка клиента API возвращается как есть,
// классификацией занимаются контроллеры.
package repository

import (
	"github.com/mmeshcher/antrian-client/internal/api"
	"github.com/mmeshcher/antrian-client/internal/model"
)

func toUser(r *api.UserResponse) model.User {
	return model.User{
		ID:    r.ID,
		Name:  r.Nama,
		Email: r.Email,
	}
}

func toCustomer(r api.CustomerResponse) model.Customer {
	return model.Customer{
		ID:          r.ID,
		Name:        r.Nama,
		Balance:     r.Balance,
		OwnerUserID: r.UserID,
	}
}

func toCustomers(rs []api.CustomerResponse) []model.Customer {
	out := make([]model.Customer, 0, len(rs))
	for _, r := range rs {
		out = append(out, toCustomer(r))
	}
	return out
}

func toProduct(r api.ProductResponse) model.Product {
	return model.Product{
		ID:          r.ID,
		Name:        r.Nama,
		Price:       r.Price,
		OwnerUserID: r.UserID,
	}
}

func toProducts(rs []api.ProductResponse) []model.Product {
	out := make([]model.Product, 0, len(rs))
	for _, r := range rs {
		out = append(out, toProduct(r))
	}
	return out
}

func toQueue(r api.QueueResponse) model.Queue {
	q := model.Queue{
		ID:          r.ID,
		CustomerID:  r.CustomerID,
		StatusID:    r.StatusID,
		PaymentID:   r.PaymentID,
		Note:        r.Note,
		Total:       r.Total,
		OwnerUserID: r.UserID,
		Items:       make([]model.QueueItem, 0, len(r.Orders)),
	}
	if r.Customer != nil {
		c := toCustomer(*r.Customer)
		q.Customer = &c
	}
	for _, o := range r.Orders {
		item := model.QueueItem{
			ProductID:  o.ProductID,
			Quantity:   o.Quantity,
			Discount:   o.Discount,
			TotalPrice: o.TotalPrice,
		}
		if o.Product != nil {
			p := toProduct(*o.Product)
			item.Product = &p
		}
		q.Items = append(q.Items, item)
	}
	return q
}

func toQueues(rs []api.QueueResponse) []model.Queue {
	out := make([]model.Queue, 0, len(rs))
	for _, r := range rs {
		out = append(out, toQueue(r))
	}
	return out
}
