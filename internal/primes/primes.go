// Package primes holds the ordered set of selectable prime divisors.
package primes

// Unlock adds a prime to the set once the level reaches a threshold.
type Unlock struct {
	Level int
	Prime int
}

// Initial are the primes every game starts with.
var Initial = []int{2, 3, 5, 7}

// Unlocks lists level thresholds in ascending order.
var Unlocks = []Unlock{
	{Level: 5, Prime: 11},
	{Level: 7, Prime: 13},
}

// Set is an append-only, strictly increasing list of primes. Control index i
// always maps to Values()[i].
type Set struct {
	values []int
}

// NewSet returns a set holding the initial primes.
func NewSet() *Set {
	values := make([]int, len(Initial))
	copy(values, Initial)
	return &Set{values: values}
}

// Len returns the number of active primes.
func (s *Set) Len() int {
	return len(s.values)
}

// At returns the prime at control index i.
func (s *Set) At(i int) int {
	return s.values[i]
}

// Values returns a copy of the active primes in order.
func (s *Set) Values() []int {
	out := make([]int, len(s.values))
	copy(out, s.values)
	return out
}

// Contains reports whether p is active.
func (s *Set) Contains(p int) bool {
	for _, v := range s.values {
		if v == p {
			return true
		}
	}
	return false
}

// UnlockFor appends primes whose threshold equals level and returns the ones
// that were added. A prime already present is never re-added.
func (s *Set) UnlockFor(level int) []int {
	var added []int
	for _, u := range Unlocks {
		if u.Level != level || s.Contains(u.Prime) {
			continue
		}
		if n := len(s.values); n > 0 && s.values[n-1] >= u.Prime {
			continue
		}
		s.values = append(s.values, u.Prime)
		added = append(added, u.Prime)
	}
	return added
}
