package workflow

import (
	"context"

	"go-presence/internal/facerecognition"
)

type SkipReason string

const (
	SkipServiceUnavailable SkipReason = "SERVICE_UNAVAILABLE"
	SkipNetworkError       SkipReason = "NETWORK_ERROR"
)

type MismatchChoice int

const (
	Retake MismatchChoice = iota
	Cancel
)

// Prompter answers the questions the workflow has to put to the user.
//
//go:generate mockgen -source=prompt.go -destination=mock/prompt_mock.go -package=mock
type Prompter interface {
	// OfferSkip asks whether to continue without face verification.
	OfferSkip(ctx context.Context, reason SkipReason) bool
	ConsentEnroll(ctx context.Context) bool
	OnMismatch(ctx context.Context, outcome facerecognition.Outcome) MismatchChoice
}

// Decisions is a Prompter whose answers were given up front, typically as
// flags on the clock request.
type Decisions struct {
	SkipVerification bool
	AllowEnroll      bool
	CancelOnMismatch bool
}

func (d Decisions) OfferSkip(context.Context, SkipReason) bool {
	return d.SkipVerification
}

func (d Decisions) ConsentEnroll(context.Context) bool {
	return d.AllowEnroll
}

func (d Decisions) OnMismatch(context.Context, facerecognition.Outcome) MismatchChoice {
	if d.CancelOnMismatch {
		return Cancel
	}
	return Retake
}
