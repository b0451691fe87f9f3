package domain

import "fmt"

// AllocatorState is the persisted cursor of the sequential code allocator.
// Number runs 1..999, then the letter advances and the number resets.
type AllocatorState struct {
	Letter string `json:"letter"`
	Number int    `json:"number"`
}

// Code formats the state as an account code, e.g. {B, 700} -> "B700B".
func (s AllocatorState) Code() string {
	return fmt.Sprintf("%s%03d%s", s.Letter, s.Number, s.Letter)
}

// Next advances the cursor and returns the state whose Code is the next
// issued account code. ok is false once the series runs past 'Z'; the
// allocator never wraps around, a wrapped cursor would reissue codes.
func (s AllocatorState) Next() (next AllocatorState, ok bool) {
	next = s
	next.Number++
	if next.Number > 999 {
		if next.Letter >= "Z" || len(next.Letter) != 1 {
			return s, false
		}
		next.Letter = string(next.Letter[0] + 1)
		next.Number = 1
	}
	return next, true
}
