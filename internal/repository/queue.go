package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
)

const (
	queueKey         = "matchmaking:queue"
	queueMaxAttempts = 5
)

// QueueRepository keeps waiting player ids in arrival order.
type QueueRepository interface {
	Enqueue(ctx context.Context, playerID string) (int, error)
	Remove(ctx context.Context, playerID string) error
	PopOrEnqueue(ctx context.Context, playerID string) (string, int, error)
	Snapshot(ctx context.Context) ([]string, error)
}

type dbQueue struct {
	client *redis.Client
}

func NewQueueRepository(client *redis.Client) QueueRepository {
	return &dbQueue{
		client: client,
	}
}

// Enqueue appends the player and returns its 1-based position.
func (that *dbQueue) Enqueue(ctx context.Context, playerID string) (int, error) {
	length, err := that.client.RPush(ctx, queueKey, playerID).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue player: %w", err)
	}

	return int(length), nil
}

func (that *dbQueue) Remove(ctx context.Context, playerID string) error {
	if err := that.client.LRem(ctx, queueKey, 0, playerID).Err(); err != nil {
		return fmt.Errorf("failed to remove player from queue: %w", err)
	}

	return nil
}

// PopOrEnqueue drops any earlier entry of playerID, then either removes and
// returns the oldest other waiting player or appends playerID and returns its
// 1-based position. Both branches run in one transaction on the queue key.
func (that *dbQueue) PopOrEnqueue(ctx context.Context, playerID string) (string, int, error) {
	var (
		opponent string
		position int
	)

	txf := func(tx *redis.Tx) error {
		opponent, position = "", 0

		waiting, err := tx.LRange(ctx, queueKey, 0, -1).Result()
		if err != nil {
			return err
		}

		others := 0
		for _, id := range waiting {
			if id == playerID {
				continue
			}

			if opponent == "" {
				opponent = id
			}
			others++
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.LRem(ctx, queueKey, 0, playerID)

			if opponent != "" {
				pipe.LRem(ctx, queueKey, 1, opponent)
				return nil
			}

			pipe.RPush(ctx, queueKey, playerID)
			position = others + 1

			return nil
		})

		return err
	}

	for attempt := 0; attempt < queueMaxAttempts; attempt++ {
		err := that.client.Watch(ctx, txf, queueKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return "", 0, fmt.Errorf("failed to pop or enqueue player: %w", err)
		}

		return opponent, position, nil
	}

	return "", 0, apperror.ErrQueueBusy
}

func (that *dbQueue) Snapshot(ctx context.Context) ([]string, error) {
	waiting, err := that.client.LRange(ctx, queueKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read queue: %w", err)
	}

	return waiting, nil
}
