package services_test

import (
	"context"

	"github.com/feelalive/aura-engine/internal/adapters/repository"
	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/feelalive/aura-engine/internal/core/services"
)

func ptr[T any](v T) *T {
	return &v
}

// fakeOracle scripts every oracle answer so tests never touch the network.
type fakeOracle struct {
	verifyResult   bool
	verifyErr      error
	verifyCalls    int
	classification domain.TaskClassification
	classifyErr    error
	timetable      []domain.TimetableDay
	timetableErr   error
	lastStartDate  string
}

func (f *fakeOracle) Verify(ctx context.Context, imageBase64, description string) (bool, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return false, f.verifyErr
	}
	return f.verifyResult, nil
}

func (f *fakeOracle) Classify(ctx context.Context, description, category string) (domain.TaskClassification, error) {
	if f.classifyErr != nil {
		return domain.TaskClassification{}, f.classifyErr
	}
	return f.classification, nil
}

func (f *fakeOracle) GenerateTimetable(ctx context.Context, chapters []domain.Chapter, deadline, startDate string) ([]domain.TimetableDay, error) {
	f.lastStartDate = startDate
	if f.timetableErr != nil {
		return nil, f.timetableErr
	}
	return f.timetable, nil
}

func goodClassification() domain.TaskClassification {
	return domain.TaskClassification{
		Type:      domain.TaskTypeGood,
		Intensity: domain.IntensityMedium,
	}
}

func newProfileFixture() (*services.ProfileService, *repository.InMemoryProfileRepository) {
	repo := repository.NewInMemoryProfileRepository()
	return services.NewProfileService(repo), repo
}
