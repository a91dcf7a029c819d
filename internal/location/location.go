package location

import (
	"context"
	"math"
	"time"

	"go-presence/internal/geo"
	locationerrors "go-presence/internal/location/errors"
	"go-presence/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Fix is a single device position reading.
type Fix struct {
	Coordinate     geo.Coordinate
	AccuracyMeters float64
	Timestamp      time.Time
}

// Verdict is the result of one location verification attempt.
type Verdict struct {
	Coordinate     geo.Coordinate     `json:"coordinate"`
	NearestOffice  geo.OfficeLocation `json:"nearest_office"`
	DistanceMeters int                `json:"distance_meters"`
	WithinRange    bool               `json:"within_range"`
	Timestamp      string             `json:"timestamp"`
}

//go:generate mockgen -source=location.go -destination=mock/location_mock.go -package=mock
type PositionProvider interface {
	RequestPermission(ctx context.Context) (bool, error)
	CurrentPosition(ctx context.Context) (Fix, error)
}

type Verifier struct {
	now func() time.Time
}

func NewVerifier() *Verifier {
	return &Verifier{now: time.Now}
}

// Verify asks for permission, takes one fix and measures it against the nearest office.
// Failures are returned as-is; nothing is retried.
func (v *Verifier) Verify(
	ctx context.Context,
	provider PositionProvider,
	offices []geo.OfficeLocation,
	maxMeters float64,
) (Verdict, error) {
	logger := contextutil.GetLogger(ctx, zap.L()).Named("location")

	if len(offices) == 0 {
		return Verdict{}, locationerrors.ErrNoOfficeConfigured
	}

	granted, err := provider.RequestPermission(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Verdict{}, ctx.Err()
		}
		logger.Warn("location permission request failed", zap.Error(err))
		return Verdict{}, locationerrors.ErrPermissionDenied.WithCause(err)
	}
	if !granted {
		return Verdict{}, locationerrors.ErrPermissionDenied
	}

	fix, err := provider.CurrentPosition(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Verdict{}, ctx.Err()
		}
		logger.Warn("position fix failed", zap.Error(err))
		return Verdict{}, locationerrors.ErrPositionUnavailable.WithCause(err)
	}

	if err := fix.Coordinate.Validate(); err != nil {
		return Verdict{}, locationerrors.ErrInvalidCoordinate.WithCause(err)
	}

	office, distance, _ := geo.Nearest(fix.Coordinate, offices)
	verdict := Verdict{
		Coordinate:     fix.Coordinate,
		NearestOffice:  office,
		DistanceMeters: int(math.Round(distance)),
		WithinRange:    geo.WithinRadius(distance, maxMeters),
		Timestamp:      v.now().UTC().Format(time.RFC3339),
	}

	logger.Debug("location verified",
		zap.String("office", office.Key),
		zap.Int("distance_meters", verdict.DistanceMeters),
		zap.Bool("within_range", verdict.WithinRange),
	)

	return verdict, nil
}
