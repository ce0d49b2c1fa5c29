package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"motorist/internal/models"
)

// Stats считает заказы с начала недели, месяца, квартала и года.
// Четыре запроса выполняются параллельно.
func (s *AdminService) Stats(ctx context.Context) (models.Stats, error) {
	periods := models.NewPeriodStarts(s.now().In(s.loc))

	var stats models.Stats
	targets := []struct {
		since time.Time
		dst   *int
	}{
		{periods.Week, &stats.Week},
		{periods.Month, &stats.Month},
		{periods.Quarter, &stats.Quarter},
		{periods.Year, &stats.Year},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		g.Go(func() error {
			n, err := s.store.CountOrdersSince(gctx, target.since)
			if err != nil {
				return err
			}
			*target.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Stats{}, fmt.Errorf("ошибка подсчёта статистики: %w", err)
	}
	return stats, nil
}
