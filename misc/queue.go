package misc

// CircularQueue overwrites its oldest item once full.
type CircularQueue[T any] struct {
	End    int
	Start  int
	Length int
	Data   []T
}

func NewCircularQueue[T any](size int) CircularQueue[T] {
	return CircularQueue[T]{
		Data: make([]T, size),
	}
}

func (q *CircularQueue[T]) IsFull() bool {
	return q.Length >= len(q.Data)
}

func (q *CircularQueue[T]) IsEmpty() bool {
	return q.Length <= 0
}

func (q *CircularQueue[T]) Enqueue(item T) {
	index := q.End

	if q.IsFull() {
		q.Start = (q.Start + 1) % len(q.Data)
	} else {
		q.Length += 1
	}
	q.End = (q.End + 1) % len(q.Data)

	q.Data[index] = item
}

// At returns the item index places after the oldest one.
func (q *CircularQueue[T]) At(index int) T {
	return q.Data[(q.Start+index)%len(q.Data)]
}

func (q *CircularQueue[T]) PeekLast() T {
	return q.Data[(q.End-1+len(q.Data))%len(q.Data)]
}
