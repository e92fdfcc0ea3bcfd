package result

import "sync"

// Cell хранит текущее состояние операции. Пишет в ячейку только владеющий ею
// контроллер, читать и подписываться может любое количество наблюдателей.
type Cell[T any] struct {
	mu     sync.RWMutex
	state  State[T]
	subs   map[int]chan State[T]
	nextID int
}

// NewCell создаёт ячейку в состоянии Idle.
func NewCell[T any]() *Cell[T] {
	return &Cell[T]{
		state: Idle[T](),
		subs:  make(map[int]chan State[T]),
	}
}

// Get возвращает текущее состояние.
func (c *Cell[T]) Get() State[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Set заменяет состояние и уведомляет подписчиков.
func (c *Cell[T]) Set(s State[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = s
	for _, ch := range c.subs {
		publish(ch, s)
	}
}

// Subscribe возвращает канал, в который сразу попадает текущее состояние, а затем
// все последующие. Медленный читатель может пропустить промежуточные состояния,
// но последнее состояние всегда остаётся в канале. Вызов cancel закрывает канал.
func (c *Cell[T]) Subscribe(buffer int) (<-chan State[T], func()) {
	if buffer < 1 {
		buffer = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++

	ch := make(chan State[T], buffer)
	ch <- c.state
	c.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}

	return ch, cancel
}

// publish отправляет состояние без блокировки писателя: при переполненном буфере
// самое старое значение вытесняется.
func publish[T any](ch chan State[T], s State[T]) {
	for {
		select {
		case ch <- s:
			return
		default:
		}

		select {
		case <-ch:
		default:
		}
	}
}
