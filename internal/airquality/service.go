package airquality

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/airquality-bot/internal/metrics"
)

// Service fronts a single provider with logging and metrics.
type Service struct {
	provider Provider
	logger   *zap.Logger
}

// NewService creates a new Service.
func NewService(provider Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: provider,
		logger:   logger.Named("airquality"),
	}
}

// Fetch looks up a location. On failure the error is a *FetchError.
func (s *Service) Fetch(ctx context.Context, loc Location) (*CityResponse, error) {
	if s.provider == nil {
		return nil, &FetchError{Provider: "none", Reason: ReasonUnavailable, Err: fmt.Errorf("no air quality provider configured")}
	}

	name := s.provider.Name()
	start := time.Now()
	resp, err := s.provider.FetchCity(ctx, loc)
	metrics.ProviderRequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		reason := ReasonTransport
		var fe *FetchError
		if errors.As(err, &fe) {
			reason = fe.Reason
		} else {
			err = &FetchError{Provider: name, Reason: ReasonTransport, Err: err}
		}
		metrics.ProviderRequestsTotal.WithLabelValues(name, string(reason)).Inc()
		s.logger.Warn("provider lookup failed",
			zap.String("provider", name),
			zap.String("location", loc.String()),
			zap.String("reason", string(reason)),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.ProviderRequestsTotal.WithLabelValues(name, "ok").Inc()
	s.logger.Debug("provider lookup succeeded",
		zap.String("provider", name),
		zap.String("location", loc.String()),
		zap.Duration("took", time.Since(start)),
	)
	return resp, nil
}

// Report fetches a location and flattens the body. Errors reported inside a
// 200 body come back as a *FetchError with Reason ReasonRejected.
func (s *Service) Report(ctx context.Context, loc Location) (Report, error) {
	resp, err := s.Fetch(ctx, loc)
	if err != nil {
		return Report{}, err
	}
	if msg, ok := resp.ProviderError(); ok {
		return Report{}, &FetchError{Provider: s.provider.Name(), Reason: ReasonRejected, StatusCode: 200, Message: msg}
	}
	return NewReport(resp)
}
