package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/dkotenko/challenger/internal/config"
	"github.com/dkotenko/challenger/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=sweeper.go -destination=mock_sweeper.go -package=sweeper

// ChallengeService is the reconcile surface the sweeper drives.
type ChallengeService interface {
	ChallengesNeedingReconcile(ctx context.Context, limit uint32) ([]domain.Challenge, error)
	Reconcile(ctx context.Context, challengeID int) error
}

// reconciling dedupes in-flight challenges so overlapping ticks never
// process the same row twice at once.
var reconciling sync.Map

// Service periodically sweeps challenges whose time-based transition was
// missed and drives them through the state machine. The on-read sweep in the
// challenge service covers interactive paths; this loop covers idle ones.
type Service struct {
	svc           ChallengeService
	limit         uint32
	workerPool    WorkerPoolI
	sweepInterval time.Duration
}

func New(cfg *config.Config, svc ChallengeService) *Service {
	return &Service{
		svc:           svc,
		limit:         cfg.SweepLimit,
		workerPool:    NewWorkerPool(cfg.SweepWorkers),
		sweepInterval: cfg.SweepInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Sweeper started", zap.Duration("interval", s.sweepInterval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping sweeper")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	challenges, err := s.svc.ChallengesNeedingReconcile(ctx, s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch challenges for reconcile", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, ch := range challenges {
		ch := ch

		if _, loaded := reconciling.LoadOrStore(ch.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer reconciling.Delete(ch.ID)
				return s.svc.Reconcile(ctx, ch.ID)
			})
			if err != nil {
				reconciling.Delete(ch.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error sweeping challenges", zap.Error(err))
	}
}
