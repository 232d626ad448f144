package domain

import "context"

type DispatchService interface {
	SendRandom(ctx context.Context, input DispatchInput) (DispatchOutcome, error)
}
