// Package dice provides the randomness abstraction used by loot rolls,
// enemy spawns, and adventure rewards.
package dice

// Source is the randomness provider for every random draw in the game.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0, 1).
	Float64() float64
}
