package location

import (
	"context"
	"errors"
	"time"

	"go-presence/internal/geo"
)

var errNoFix = errors.New("device did not report a position")

// ReportedPosition is a PositionProvider backed by what the mobile client sent with its request.
type ReportedPosition struct {
	PermissionGranted bool
	Coordinate        *geo.Coordinate
	AccuracyMeters    float64
	FixError          string
	ReportedAt        time.Time
}

func (p ReportedPosition) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return p.PermissionGranted, nil
}

func (p ReportedPosition) CurrentPosition(ctx context.Context) (Fix, error) {
	if err := ctx.Err(); err != nil {
		return Fix{}, err
	}
	if p.FixError != "" {
		return Fix{}, errors.New(p.FixError)
	}
	if p.Coordinate == nil {
		return Fix{}, errNoFix
	}
	ts := p.ReportedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return Fix{
		Coordinate:     *p.Coordinate,
		AccuracyMeters: p.AccuracyMeters,
		Timestamp:      ts,
	}, nil
}
