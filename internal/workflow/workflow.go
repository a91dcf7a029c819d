package workflow

import (
	"context"
	"errors"
	"time"

	"go-presence/internal/capture"
	"go-presence/internal/facerecognition"
	faceerrors "go-presence/internal/facerecognition/errors"
	"go-presence/internal/geo"
	"go-presence/internal/location"
	"go-presence/internal/session"
	sessionerrors "go-presence/internal/session/errors"
	"go-presence/internal/shared/contextutil"
	workflowerrors "go-presence/internal/workflow/errors"

	"go.uber.org/zap"
)

type Method string

const (
	MethodFaceVerified Method = "FACE_VERIFIED"
	MethodFaceEnrolled Method = "FACE_ENROLLED"
	MethodSkipped      Method = "SKIPPED"
)

//go:generate mockgen -source=workflow.go -destination=mock/workflow_mock.go -package=mock
type FaceVerifier interface {
	Health(ctx context.Context) (facerecognition.HealthStatus, error)
	Submit(ctx context.Context, userID string, photo capture.CapturedPhoto) (facerecognition.Outcome, error)
	Enroll(ctx context.Context, userID, imageBase64 string) (facerecognition.Outcome, error)
}

// Input describes one clock attempt. Position and Camera are the device ports.
type Input struct {
	UserID    string
	Offices   []geo.OfficeLocation
	MaxMeters float64
	Position  location.PositionProvider
	Camera    capture.Camera
	// Commit persists the confirmation. It runs after the session update is
	// computed and before it is stored; an error aborts the workflow.
	Commit func(ctx context.Context, res Result) error
}

type Result struct {
	Action   capture.Action
	Session  session.Session
	Verdict  location.Verdict
	Outcome  facerecognition.Outcome
	Method   Method
	Verified bool
	At       time.Time
}

type Workflow struct {
	verifier *location.Verifier
	face     FaceVerifier
	store    session.Store
	loc      *time.Location
	now      func() time.Time
}

func New(face FaceVerifier, store session.Store, loc *time.Location) *Workflow {
	if loc == nil {
		loc = time.Local
	}
	return &Workflow{
		verifier: location.NewVerifier(),
		face:     face,
		store:    store,
		loc:      loc,
		now:      time.Now,
	}
}

// WithClock replaces the time source.
func (w *Workflow) WithClock(now func() time.Time) *Workflow {
	w.now = now
	return w
}

// Run drives location check, capture, face verification and confirmation in
// strict sequence. Returning an error never mutates the stored session.
func (w *Workflow) Run(ctx context.Context, in Input, prompter Prompter) (Result, error) {
	logger := contextutil.GetLogger(ctx, zap.L()).Named("workflow").With(zap.String("user_id", in.UserID))

	unlock, err := w.store.Lock(ctx, in.UserID)
	if err != nil {
		return Result{}, err
	}
	defer unlock()

	day := session.DayOf(w.now().In(w.loc))
	current, err := w.store.Get(ctx, in.UserID, day)
	if err != nil {
		return Result{}, err
	}
	if current.Completed() {
		return Result{}, sessionerrors.ErrAlreadyClockedOut
	}
	action := session.NextAction(current)

	verdict, err := w.verifier.Verify(ctx, in.Position, in.Offices, in.MaxMeters)
	if err != nil {
		return Result{}, err
	}
	if !verdict.WithinRange {
		logger.Info("clock rejected outside geofence",
			zap.Int("distance_meters", verdict.DistanceMeters),
			zap.String("office", verdict.NearestOffice.Key),
		)
		return Result{Verdict: verdict, Action: action}, workflowerrors.ErrOutOfRange.WithDetails(verdict)
	}
	current.LastVerdict = &verdict

	photo, err := capture.NewCoordinator(in.Camera).Capture(ctx, action)
	if err != nil {
		return Result{}, err
	}
	current.Photo = &photo

	outcome, method, err := w.verifyFace(ctx, in.UserID, photo, prompter, logger)
	if err != nil {
		return Result{}, err
	}

	// abandoned while waiting on the recognizer: discard whatever came back
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	now := w.now().In(w.loc)
	next, err := session.ConfirmClock(current, now)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Action:   action,
		Session:  next,
		Verdict:  verdict,
		Outcome:  outcome,
		Method:   method,
		Verified: method != MethodSkipped,
		At:       now,
	}

	if in.Commit != nil {
		if err := in.Commit(ctx, res); err != nil {
			return Result{}, err
		}
	}
	if err := w.store.Put(ctx, next); err != nil {
		return Result{}, err
	}

	logger.Info("clock confirmed",
		zap.String("action", string(action)),
		zap.String("method", string(method)),
		zap.Int("distance_meters", verdict.DistanceMeters),
	)
	return res, nil
}

func (w *Workflow) verifyFace(
	ctx context.Context,
	userID string,
	photo capture.CapturedPhoto,
	prompter Prompter,
	logger *zap.Logger,
) (facerecognition.Outcome, Method, error) {
	if _, err := w.face.Health(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return facerecognition.Outcome{}, "", ctxErr
		}
		return w.offerSkip(ctx, prompter, SkipServiceUnavailable, err, logger)
	}

	outcome, err := w.face.Submit(ctx, userID, photo)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return facerecognition.Outcome{}, "", ctxErr
		}
		return w.offerSkip(ctx, prompter, SkipNetworkError, err, logger)
	}

	switch outcome.Kind {
	case facerecognition.OutcomeVerified:
		return outcome, MethodFaceVerified, nil

	case facerecognition.OutcomeNotEnrolled:
		if !prompter.ConsentEnroll(ctx) {
			return facerecognition.Outcome{}, "", workflowerrors.ErrEnrollmentRequired
		}
		enrolled, err := w.face.Enroll(ctx, userID, photo.ImageBase64)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return facerecognition.Outcome{}, "", ctxErr
			}
			if errors.Is(err, faceerrors.ErrEnrollFailed) {
				return facerecognition.Outcome{}, "", err
			}
			return w.offerSkip(ctx, prompter, SkipNetworkError, err, logger)
		}
		logger.Info("face enrolled on first clock")
		return enrolled, MethodFaceEnrolled, nil

	case facerecognition.OutcomeMismatch:
		if prompter.OnMismatch(ctx, outcome) == Cancel {
			return facerecognition.Outcome{}, "", workflowerrors.ErrCancelled
		}
		return facerecognition.Outcome{}, "", workflowerrors.ErrFaceMismatch.WithDetails(outcome.Reason)

	default:
		return w.offerSkip(ctx, prompter, SkipServiceUnavailable, nil, logger)
	}
}

func (w *Workflow) offerSkip(
	ctx context.Context,
	prompter Prompter,
	reason SkipReason,
	cause error,
	logger *zap.Logger,
) (facerecognition.Outcome, Method, error) {
	if !prompter.OfferSkip(ctx, reason) {
		err := workflowerrors.ErrVerificationUnavailable.WithDetails(map[string]any{
			"reason":   reason,
			"can_skip": true,
		})
		if cause != nil {
			err = err.WithCause(cause)
		}
		return facerecognition.Outcome{}, "", err
	}
	logger.Warn("face verification skipped", zap.String("reason", string(reason)), zap.Error(cause))
	return facerecognition.ServiceUnavailable(), MethodSkipped, nil
}
