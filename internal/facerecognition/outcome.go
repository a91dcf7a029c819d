package facerecognition

import "fmt"

type OutcomeKind string

const (
	OutcomeVerified           OutcomeKind = "VERIFIED"
	OutcomeNotEnrolled        OutcomeKind = "NOT_ENROLLED"
	OutcomeMismatch           OutcomeKind = "MISMATCH"
	OutcomeServiceUnavailable OutcomeKind = "SERVICE_UNAVAILABLE"
)

// Outcome is the interpreted answer of the recognition service for one photo.
// Confidence is set for Verified (0-100), Reason for Mismatch.
type Outcome struct {
	Kind       OutcomeKind `json:"kind"`
	Confidence float64     `json:"confidence,omitempty"`
	Reason     string      `json:"reason,omitempty"`
}

func Verified(confidence float64) Outcome {
	return Outcome{Kind: OutcomeVerified, Confidence: clampConfidence(confidence)}
}

func NotEnrolled() Outcome {
	return Outcome{Kind: OutcomeNotEnrolled}
}

func Mismatch(reason string) Outcome {
	return Outcome{Kind: OutcomeMismatch, Reason: reason}
}

func ServiceUnavailable() Outcome {
	return Outcome{Kind: OutcomeServiceUnavailable}
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeVerified:
		return fmt.Sprintf("verified (%.1f%%)", o.Confidence)
	case OutcomeMismatch:
		return fmt.Sprintf("mismatch: %s", o.Reason)
	default:
		return string(o.Kind)
	}
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
