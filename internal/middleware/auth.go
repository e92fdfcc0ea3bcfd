// Package middleware содержит перехватчики исходящих HTTP-запросов к удалённому API.
package middleware

import (
	"net/http"
)

// RoundTripperFunc позволяет использовать функцию как http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip вызывает f(r).
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Middleware оборачивает транспорт дополнительной логикой.
type Middleware func(http.RoundTripper) http.RoundTripper

// Chain оборачивает base перехватчиками; первый в списке выполняется первым.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	rt := base
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}

// TokenSource отдаёт текущий токен авторизации; пустая строка означает его отсутствие.
type TokenSource interface {
	Token() (string, error)
}

// BearerAuth добавляет заголовок Authorization: Bearer <token>, если токен сохранён.
// Ошибка чтения токена не прерывает запрос: сервер сам ответит 401.
func BearerAuth(tokens TokenSource) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			token, err := tokens.Token()
			if err != nil || token == "" || r.Header.Get("Authorization") != "" {
				return next.RoundTrip(r)
			}

			req := r.Clone(r.Context())
			req.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(req)
		})
	}
}
