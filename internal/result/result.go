// Package result описывает состояние асинхронной операции (Idle/Loading/Success/Error)
// и ячейку, через которую контроллер публикует это состояние наблюдателям.
package result

// Kind определяет активный вариант состояния.
type Kind uint8

const (
	KindIdle Kind = iota
	KindLoading
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	}
	return "unknown"
}

// State представляет размеченное объединение состояний операции.
// Data имеет смысл только для KindSuccess, Message имеет смысл для Loading, Success и Error.
type State[T any] struct {
	Kind    Kind
	Data    T
	Message string
}

// Idle возвращает начальное состояние без данных.
func Idle[T any]() State[T] {
	return State[T]{Kind: KindIdle}
}

// Loading возвращает состояние выполняющейся операции с поясняющей надписью.
func Loading[T any](message string) State[T] {
	return State[T]{Kind: KindLoading, Message: message}
}

// Success возвращает успешное состояние с данными и необязательным сообщением.
func Success[T any](data T, message string) State[T] {
	return State[T]{Kind: KindSuccess, Data: data, Message: message}
}

// Failure возвращает состояние ошибки с сообщением для пользователя.
func Failure[T any](message string) State[T] {
	return State[T]{Kind: KindError, Message: message}
}

// IsIdle, IsLoading, IsSuccess и IsError упрощают проверки в местах отображения.
func (s State[T]) IsIdle() bool    { return s.Kind == KindIdle }
func (s State[T]) IsLoading() bool { return s.Kind == KindLoading }
func (s State[T]) IsSuccess() bool { return s.Kind == KindSuccess }
func (s State[T]) IsError() bool   { return s.Kind == KindError }
