package refvm

const (
	STACK_LIMIT = 256 // Maximum stack depth
)

// Stack is the evaluation stack. Values are kept as signed 16-bit words.
type Stack struct {
	Data []int
}

func (s *Stack) Push(value int) (err error) {
	if s.Full() {
		err = ErrStackFull
		return
	}
	s.Data = append(s.Data, value)
	return
}

func (s *Stack) Pop() (value int, err error) {
	value, err = s.Peek()
	if err == nil {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Full() bool {
	return len(s.Data) == STACK_LIMIT
}

func (s *Stack) Peek() (value int, err error) {
	if s.Empty() {
		err = ErrStackEmpty
		return
	}

	return s.Data[len(s.Data)-1], nil
}

// PopN pops n values, returned bottom first.
func (s *Stack) PopN(n int) (values []int, err error) {
	if len(s.Data) < n {
		err = ErrStackEmpty
		return
	}
	values = make([]int, n)
	copy(values, s.Data[len(s.Data)-n:])
	s.Data = s.Data[:len(s.Data)-n]
	return
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
