package cron

import (
	"context"
	"fmt"

	"github.com/sirawitp/siamshop-backend/pkg/logger"
)

type addressRefresher interface {
	Refresh(ctx context.Context) error
}

// AddressRefreshJobParams configure the dataset refresh job.
type AddressRefreshJobParams struct {
	Logger    *logger.Logger
	Refresher addressRefresher
}

type addressRefreshJob struct {
	logg      *logger.Logger
	refresher addressRefresher
}

// NewAddressRefreshJob builds the job that re-warms the cached Thai
// province/district datasets.
func NewAddressRefreshJob(params AddressRefreshJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Refresher == nil {
		return nil, fmt.Errorf("address refresher required")
	}
	return &addressRefreshJob{
		logg:      params.Logger,
		refresher: params.Refresher,
	}, nil
}

func (j *addressRefreshJob) Name() string { return "address-refresh" }

func (j *addressRefreshJob) Run(ctx context.Context) error {
	if err := j.refresher.Refresh(ctx); err != nil {
		return fmt.Errorf("address refresh: %w", err)
	}
	j.logg.Info(ctx, "address datasets refreshed")
	return nil
}
