package question

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PublishReport stores rep as JSON under "<prefix>:report:latest" and
// replaces the "<prefix>:categories" hash with the category counts.
func PublishReport(ctx context.Context, client redis.Cmdable, prefix string, rep Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	reportKey := prefix + ":report:latest"
	categoriesKey := prefix + ":categories"

	counts := make(map[string]any, len(rep.Categories))
	for _, c := range rep.Categories {
		counts[c.Category] = c.Count
	}

	_, err = client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, reportKey, data, 0)
		pipe.Del(ctx, categoriesKey)
		if len(counts) > 0 {
			pipe.HSet(ctx, categoriesKey, counts)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("publishing report: %w", err)
	}
	return nil
}
