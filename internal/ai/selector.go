// Package ai picks moves for a computer-controlled seat.
package ai

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

const (
	defaultDepth  = 2
	defaultJitter = 3.0
)

// ParseDifficulty accepts a case-insensitive tier name.
func ParseDifficulty(value string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(value))); d {
	case Easy, Medium, Hard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, value)
	}
}

// Random is the source of every random choice the selector makes. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
	Float64() float64
}

type Option func(*Selector)

// WithJitter sets the amplitude of the noise added to medium ranks and hard leaves.
// Zero makes both tiers deterministic.
func WithJitter(jitter float64) Option {
	return func(s *Selector) {
		s.jitter = math.Abs(jitter)
	}
}

// WithDepth sets the hard tier's search depth in plies.
func WithDepth(depth int) Option {
	return func(s *Selector) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

// Selector is safe for concurrent use; calls share the random source under a lock.
type Selector struct {
	mu     sync.Mutex
	rnd    Random
	jitter float64
	depth  int
}

func NewSelector(rnd Random, opts ...Option) *Selector {
	s := &Selector{
		rnd:    rnd,
		jitter: defaultJitter,
		depth:  defaultDepth,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SelectMove returns a legal move for state.CurrentPlayer, or xxxo.NoPosition
// when the game is over or the current player has nowhere to go.
func (that *Selector) SelectMove(state xxxo.State, difficulty Difficulty) xxxo.Position {
	if !state.GameActive {
		return xxxo.NoPosition
	}

	moves := xxxo.LegalMoves(state.Board, state.CurrentPlayer, state.LastMove)
	if len(moves) == 0 {
		return xxxo.NoPosition
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	switch difficulty {
	case Easy:
		return that.easy(state, moves)
	case Hard:
		return that.hard(state, moves)
	default:
		return that.medium(state, moves)
	}
}

func (that *Selector) easy(state xxxo.State, moves []xxxo.Position) xxxo.Position {
	mark := state.CurrentPlayer

	scoring := make([]xxxo.Position, 0, len(moves))
	for _, p := range moves {
		if xxxo.ScoreMove(state.Board.Place(p, mark), p, mark) > 0 {
			scoring = append(scoring, p)
		}
	}

	if len(scoring) > 0 {
		return scoring[that.rnd.Intn(len(scoring))]
	}

	return moves[that.rnd.Intn(len(moves))]
}

func (that *Selector) medium(state xxxo.State, moves []xxxo.Position) xxxo.Position {
	mark := state.CurrentPlayer

	best := moves[0]
	bestRank := math.Inf(-1)

	for _, p := range moves {
		board := state.Board.Place(p, mark)
		gain := xxxo.ScoreMove(board, p, mark)
		threat := bestReply(board, mark.Opponent(), state.LastMove.With(mark, p))

		rank := float64(gain*gainWeight-threat*threatWeight+positionalEvaluation(board, mark)+centerBias(p)) +
			that.noise()
		if rank > bestRank {
			best, bestRank = p, rank
		}
	}

	return best
}

// hard runs a depth-limited minimax with alpha-beta pruning over real engine transitions,
// so bonus turns and early endings are searched exactly as they would be played.
func (that *Selector) hard(state xxxo.State, moves []xxxo.Position) xxxo.Position {
	s := search{selector: that, mark: state.CurrentPlayer}

	best := moves[0]
	bestValue := math.Inf(-1)
	alpha, beta := math.Inf(-1), math.Inf(1)

	for _, p := range moves {
		outcome, err := xxxo.ApplyMove(state, p, state.CurrentPlayer)
		if err != nil {
			continue
		}

		value := s.minimax(outcome.State, that.depth-1, alpha, beta)
		if value > bestValue {
			best, bestValue = p, value
		}

		alpha = max(alpha, bestValue)
	}

	return best
}

// noise is uniform in [-jitter, jitter]. It draws nothing when jitter is zero.
func (that *Selector) noise() float64 {
	if that.jitter == 0 {
		return 0
	}

	return (that.rnd.Float64()*2 - 1) * that.jitter
}
