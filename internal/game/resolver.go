package game

import "math/big"

// Apply divides number by prime when it divides exactly. It returns the
// quotient and true, or nil and false for a wrong divisor.
func Apply(number *big.Int, prime int) (*big.Int, bool) {
	if prime <= 1 || number == nil {
		return nil, false
	}
	q, r := new(big.Int).QuoRem(number, big.NewInt(int64(prime)), new(big.Int))
	if r.Sign() != 0 {
		return nil, false
	}
	return q, true
}
