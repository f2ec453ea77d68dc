package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"classifieds-hub/internal/service"
)

type RetentionJob struct {
	announcementService *service.AnnouncementService
	logger              *zap.Logger
}

func NewRetentionJob(announcementService *service.AnnouncementService, logger *zap.Logger) *RetentionJob {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RetentionJob{
		announcementService: announcementService,
		logger:              logger,
	}
}

func (j *RetentionJob) SweepExpired() {
	if j == nil || j.announcementService == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := j.announcementService.CleanupExpired(ctx); err != nil {
		j.logger.Warn("retention sweep failed", zap.Error(err))
	}
}
