package domain

import (
	"context"
	"log/slog"

	"github.com/Flarenzy/preghierine/internal/requestid"
)

type loggingDispatchService struct {
	logger *slog.Logger
	next   DispatchService
}

func NewLoggingDispatchService(logger *slog.Logger, next DispatchService) DispatchService {
	if logger == nil || next == nil {
		return next
	}

	return &loggingDispatchService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingDispatchService) SendRandom(ctx context.Context, input DispatchInput) (DispatchOutcome, error) {
	logger := s.logger
	if id, ok := requestid.FromContext(ctx); ok {
		logger = logger.With("request_id", id)
	}

	outcome, err := s.next.SendRandom(ctx, input)
	if err != nil {
		if IsValidation(err) {
			logger.InfoContext(ctx, "dispatch rejected", "subnet", input.Subnet, "err", err.Error())
		} else {
			logger.ErrorContext(ctx, "dispatch failed", "subnet", input.Subnet, "err", err.Error())
		}
		return DispatchOutcome{}, err
	}

	if !outcome.Sent() {
		logger.WarnContext(ctx, "destination blocked",
			"target", outcome.Target.String(),
			"reason", string(outcome.BlockReason),
			"network", outcome.Network.String(),
			"cidr_effective", outcome.EffectivePrefix,
		)
		return outcome, nil
	}

	logger.InfoContext(ctx, "datagram sent",
		"target", outcome.Target.String(),
		"port", outcome.Port,
		"network", outcome.Network.String(),
		"cidr_effective", outcome.EffectivePrefix,
	)
	return outcome, nil
}
