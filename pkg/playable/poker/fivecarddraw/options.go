package fivecarddraw

// Options configure a game of five-card draw
type Options struct {
	MaxPlayers int
	Ante       int
}

// DefaultOptions returns the default game options
func DefaultOptions() Options {
	return Options{
		MaxPlayers: 2,
		Ante:       25,
	}
}
