package services

import (
	"context"
	"errors"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

// ErrOracleUnavailable is returned once both the primary and failsafe
// credentials have been exhausted. It is never retried at this layer.
var ErrOracleUnavailable = errors.New("verification oracle unavailable")

// Oracle is the external classification and verification service. Each call
// is expected to attempt a primary credential, fail over once, and then give
// up with an error wrapping ErrOracleUnavailable.
type Oracle interface {
	// Verify answers whether the image shows the described task completed.
	Verify(ctx context.Context, imageBase64, description string) (bool, error)

	// Classify assigns type and intensity (and, for normal tasks, whether a
	// single photo can verify completion).
	Classify(ctx context.Context, description, category string) (domain.TaskClassification, error)

	// GenerateTimetable turns chapters and a deadline into a day-by-day plan
	// containing only study, revision, and break tasks.
	GenerateTimetable(ctx context.Context, chapters []domain.Chapter, deadline, startDate string) ([]domain.TimetableDay, error)
}
