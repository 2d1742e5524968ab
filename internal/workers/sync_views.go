package workers

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/triplog/triplog-backend/domain"
)

const defaultFlushInterval = 10 * time.Second

// syncViewsWorker drains the redis view buffer into mysql on a ticker.
// Views are the one counter that is buffered instead of transactional:
// losing a flush costs display accuracy only, and the read path must
// not write to the database.
type syncViewsWorker struct {
	postRepo domain.PostDBRepository
	cache    domain.PostCache
	interval time.Duration
}

func NewSyncViewsWorker(postRepo domain.PostDBRepository, cache domain.PostCache) *syncViewsWorker {
	return &syncViewsWorker{
		postRepo: postRepo,
		cache:    cache,
		interval: defaultFlushInterval,
	}
}

func (s *syncViewsWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.flush(ctx)
		case <-ctx.Done():
			logrus.Info("shutting down SyncViewsWorker, flushing remaining views...")
			s.flush(context.Background())
			return
		}
	}
}

func (s *syncViewsWorker) flush(ctx context.Context) {
	views, err := s.cache.FetchAndResetViews(ctx)
	if err != nil {
		logrus.Errorf("failed to fetch buffered views: %v", err)
		return
	}

	for id, delta := range views {
		if delta == 0 {
			continue
		}
		if err := s.postRepo.AddViews(ctx, id, delta); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Post deleted while its views sat in the buffer.
				continue
			}
			logrus.Errorf("failed to flush %d views for post %d: %v", delta, id, err)
		}
	}
}
