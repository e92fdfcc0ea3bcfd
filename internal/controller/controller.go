// Package controller связывает действия пользователя с репозиториями и публикует
// состояние операций (Idle/Loading/Success/Error) для отображения.
//
// Методы контроллеров блокируются до завершения операции и возвращают ошибку,
// уже переведённую в сообщение для пользователя (*apperr.Error). Интерфейс
// вызывает их в отдельных горутинах и следит за состоянием через result.Cell.
package controller

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/mmeshcher/antrian-client/internal/apperr"
	"github.com/mmeshcher/antrian-client/internal/model"
	"github.com/mmeshcher/antrian-client/internal/result"
)

// ErrSuperseded возвращается, когда результат операции отброшен, потому что
// после неё была запущена более новая операция того же контроллера.
var ErrSuperseded = errors.New("superseded by a newer request")

// UserResolver определяет идентификатор текущего пользователя.
type UserResolver interface {
	CurrentUserID() (int64, error)
}

// flight реализует правило «побеждает последний запрос»: новый запрос отменяет
// контекст предыдущего, а результат устаревшего запроса не публикуется.
type flight struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// begin регистрирует новый запрос и под той же блокировкой выполняет publish.
func (f *flight) begin(ctx context.Context, publish func()) (context.Context, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	f.seq++
	f.cancel = cancel

	if publish != nil {
		publish()
	}
	return ctx, f.seq
}

// settle выполняет publish, только если запрос seq всё ещё последний.
func (f *flight) settle(seq uint64, publish func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq {
		return false
	}
	publish()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	return true
}

// interrupt отменяет текущий запрос и сразу публикует новое состояние.
func (f *flight) interrupt(publish func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.seq++
	publish()
}

// ownedBy оставляет записи пользователя userID. Сервер отдаёт записи всех
// пользователей, поэтому фильтр обязателен для каждого списка.
func ownedBy[T model.Owned](items []T, userID int64) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.OwnerID() == userID {
			out = append(out, item)
		}
	}
	return out
}

// lister содержит общую для списков логику: загрузку, фильтр по владельцу,
// публикацию состояния и перевод ошибок.
type lister[T model.Owned] struct {
	entity entity
	users  UserResolver
	logger *zap.Logger
	state  *result.Cell[[]T]
	flight flight
}

func newLister[T model.Owned](e entity, users UserResolver, logger *zap.Logger) *lister[T] {
	return &lister[T]{
		entity: e,
		users:  users,
		logger: logger,
		state:  result.NewCell[[]T](),
	}
}

// fetch загружает список через call и публикует записи текущего пользователя.
func (l *lister[T]) fetch(ctx context.Context, op operation, call func(context.Context) ([]T, error), successMessage string) error {
	ctx, seq := l.flight.begin(ctx, func() {
		l.state.Set(result.Loading[[]T](loadingMessage(activityFetch)))
	})

	userID, err := l.users.CurrentUserID()
	if err != nil {
		return l.fail(seq, op, err)
	}

	items, err := call(ctx)
	if err != nil {
		return l.fail(seq, op, err)
	}

	owned := ownedBy(items, userID)
	if !l.flight.settle(seq, func() { l.state.Set(result.Success(owned, successMessage)) }) {
		return ErrSuperseded
	}
	return nil
}

func (l *lister[T]) fail(seq uint64, op operation, err error) error {
	appErr := translate(l.entity, op, err)
	if !l.flight.settle(seq, func() { l.state.Set(result.Failure[[]T](appErr.Message)) }) {
		return ErrSuperseded
	}
	logFailure(l.logger, l.entity, op, appErr)
	return appErr
}

// reject публикует ошибку мутации, вытесняя незавершённые загрузки.
func (l *lister[T]) reject(op operation, err error) error {
	appErr := translate(l.entity, op, err)
	l.flight.interrupt(func() { l.state.Set(result.Failure[[]T](appErr.Message)) })
	logFailure(l.logger, l.entity, op, appErr)
	return appErr
}

func logFailure(logger *zap.Logger, e entity, op operation, err *apperr.Error) {
	logger.Warn("operation failed",
		zap.String("entity", string(e)),
		zap.String("operation", string(op)),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	)
}
