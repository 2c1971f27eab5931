package services_test

import (
	"context"
	"testing"

	"github.com/feelalive/aura-engine/internal/adapters/repository"
	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/feelalive/aura-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func newPlanFixture(oracle *fakeOracle) (*services.StudyPlanService, *services.ProfileService, *repository.InMemoryStudyPlanRepository) {
	profiles, _ := newProfileFixture()
	repo := repository.NewInMemoryStudyPlanRepository()
	return services.NewStudyPlanService(repo, profiles, oracle), profiles, repo
}

func planInput(dates ...string) services.CreateStudyPlanInput {
	timetable := make([]domain.TimetableDay, len(dates))
	for i, date := range dates {
		timetable[i] = domain.TimetableDay{Date: date, Tasks: []domain.StudyTask{
			{Type: domain.StudyTaskTypeStudy, Content: "Ch 1"},
			{Type: domain.StudyTaskTypeRevision, Content: "Ch 1"},
		}}
	}
	return services.CreateStudyPlanInput{
		UserID:    "u1",
		Subjects:  []string{"Math"},
		Chapters:  []domain.Chapter{{Subject: "Math", Name: "Ch 1"}},
		Deadline:  "2030-01-01",
		Timetable: timetable,
	}
}

func TestStudyPlanService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _, repo := newPlanFixture(&fakeOracle{})

	plan, err := svc.Create(ctx, planInput("2026-09-01", "2026-09-02"))
	assert.Nil(t, err)
	assert.Equal(t, domain.Today(), plan.LastCheckedDate)

	stored, err := repo.GetByUserID(ctx, "u1")
	assert.Nil(t, err)
	assert.Len(t, stored.Timetable, 2)

	_, err = svc.Create(ctx, services.CreateStudyPlanInput{UserID: "u1"})
	assert.Equal(t, domain.ErrPlanFieldsMissing, err)
}

func TestStudyPlanService_GetAndReconcile(t *testing.T) {
	ctx := context.Background()

	seedPlan := func(svc *services.StudyPlanService, repo *repository.InMemoryStudyPlanRepository, lastChecked string, dates ...string) {
		_, err := svc.Create(ctx, planInput(dates...))
		if err != nil {
			panic(err)
		}
		if err := repo.UpdateLastChecked(ctx, "u1", lastChecked); err != nil {
			panic(err)
		}
	}

	t.Run("Success: charges missed days once, then is idempotent", func(t *testing.T) {
		svc, profiles, repo := newPlanFixture(&fakeOracle{})
		seedPlan(svc, repo, "2026-01-09", "2026-01-10", "2026-01-11")

		plan, err := svc.GetAndReconcile(ctx, "u1", "2026-01-12")
		assert.Nil(t, err)
		assert.Equal(t, "2026-01-12", plan.LastCheckedDate)

		p, err := profiles.GetOrCreate(ctx, "u1")
		assert.Nil(t, err)
		assert.Equal(t, 0, p.Aura, "50 - 2x35 floors at zero")

		// Same call again: the window is empty now.
		_, err = svc.GetAndReconcile(ctx, "u1", "2026-01-12")
		assert.Nil(t, err)

		p, err = profiles.GetOrCreate(ctx, "u1")
		assert.Nil(t, err)
		assert.Equal(t, 0, p.Aura)
	})

	t.Run("completed days cost nothing", func(t *testing.T) {
		svc, profiles, repo := newPlanFixture(&fakeOracle{})
		seedPlan(svc, repo, "2026-01-09", "2026-01-10")

		plan, err := repo.GetByUserID(ctx, "u1")
		assert.Nil(t, err)
		for i := range plan.Timetable[0].Tasks {
			plan.Timetable[0].Tasks[i].Completed = true
		}
		assert.Nil(t, repo.UpdateTimetable(ctx, "u1", plan.Timetable))

		_, err = svc.GetAndReconcile(ctx, "u1", "2026-01-12")
		assert.Nil(t, err)

		p, err := profiles.GetOrCreate(ctx, "u1")
		assert.Nil(t, err)
		assert.Equal(t, domain.StartingAura, p.Aura)
	})

	t.Run("Error: client date required", func(t *testing.T) {
		svc, _, _ := newPlanFixture(&fakeOracle{})

		_, err := svc.GetAndReconcile(ctx, "u1", "")
		assert.Equal(t, domain.ErrClientDateRequired, err)
	})

	t.Run("Error: absent plan", func(t *testing.T) {
		svc, _, _ := newPlanFixture(&fakeOracle{})

		_, err := svc.GetAndReconcile(ctx, "u1", "2026-01-12")
		assert.Equal(t, domain.ErrPlanNotFound, err)
	})
}

func TestStudyPlanService_CompleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: rewards by task type and persists", func(t *testing.T) {
		svc, _, repo := newPlanFixture(&fakeOracle{})
		_, err := svc.Create(ctx, planInput("2026-01-10"))
		assert.Nil(t, err)

		plan, err := repo.GetByUserID(ctx, "u1")
		assert.Nil(t, err)
		studyID := plan.Timetable[0].Tasks[0].ID
		revisionID := plan.Timetable[0].Tasks[1].ID

		result, err := svc.CompleteTask(ctx, "u1", studyID, "2026-01-10", "2026-01-10")
		assert.Nil(t, err)
		assert.Equal(t, domain.StudyTaskAura, result.AuraChange)
		assert.Equal(t, domain.StartingAura+30, result.NewAura)

		result, err = svc.CompleteTask(ctx, "u1", revisionID, "2026-01-10", "2026-01-10")
		assert.Nil(t, err)
		assert.Equal(t, domain.RevisionTaskAura, result.AuraChange)

		stored, err := repo.GetByUserID(ctx, "u1")
		assert.Nil(t, err)
		assert.True(t, stored.Timetable[0].Tasks[0].Completed)
		assert.True(t, stored.Timetable[0].Tasks[1].Completed)
	})

	t.Run("Error: completing twice", func(t *testing.T) {
		svc, _, repo := newPlanFixture(&fakeOracle{})
		_, err := svc.Create(ctx, planInput("2026-01-10"))
		assert.Nil(t, err)

		plan, err := repo.GetByUserID(ctx, "u1")
		assert.Nil(t, err)
		id := plan.Timetable[0].Tasks[0].ID

		_, err = svc.CompleteTask(ctx, "u1", id, "2026-01-10", "2026-01-10")
		assert.Nil(t, err)

		_, err = svc.CompleteTask(ctx, "u1", id, "2026-01-10", "2026-01-10")
		assert.Equal(t, domain.ErrPlanTaskNotFound, err)
	})

	t.Run("Error: future task date", func(t *testing.T) {
		svc, _, _ := newPlanFixture(&fakeOracle{})
		_, err := svc.Create(ctx, planInput("2026-01-10"))
		assert.Nil(t, err)

		_, err = svc.CompleteTask(ctx, "u1", "any", "2026-01-10", "2026-01-11")
		assert.Equal(t, domain.ErrFutureTaskDate, err)
	})

	t.Run("Error: malformed dates", func(t *testing.T) {
		svc, _, _ := newPlanFixture(&fakeOracle{})

		_, err := svc.CompleteTask(ctx, "u1", "any", "10-01-2026", "2026-01-10")
		assert.Equal(t, domain.ErrInvalidDate, err)
	})
}

func TestStudyPlanService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _, repo := newPlanFixture(&fakeOracle{})

	_, err := svc.Create(ctx, planInput("2026-01-10"))
	assert.Nil(t, err)

	assert.Nil(t, svc.Delete(ctx, "u1"))

	_, err = repo.GetByUserID(ctx, "u1")
	assert.Equal(t, domain.ErrPlanNotFound, err)

	// Deleting an absent plan is not an error.
	assert.Nil(t, svc.Delete(ctx, "u1"))
}

func TestStudyPlanService_GenerateTimetable(t *testing.T) {
	ctx := context.Background()
	chapters := []domain.Chapter{{Subject: "Math", Name: "Ch 1"}}

	t.Run("Success: delegates to the oracle", func(t *testing.T) {
		oracle := &fakeOracle{timetable: []domain.TimetableDay{{Date: "2026-01-10"}}}
		svc, _, _ := newPlanFixture(oracle)

		days, err := svc.GenerateTimetable(ctx, chapters, "2026-02-01", "2026-01-10")
		assert.Nil(t, err)
		assert.Len(t, days, 1)
		assert.Equal(t, "2026-01-10", oracle.lastStartDate)
	})

	t.Run("empty start date defaults to today", func(t *testing.T) {
		oracle := &fakeOracle{}
		svc, _, _ := newPlanFixture(oracle)

		_, err := svc.GenerateTimetable(ctx, chapters, "2026-02-01", "")
		assert.Nil(t, err)
		assert.Equal(t, domain.Today(), oracle.lastStartDate)
	})

	t.Run("Error: missing inputs", func(t *testing.T) {
		svc, _, _ := newPlanFixture(&fakeOracle{})

		_, err := svc.GenerateTimetable(ctx, nil, "2026-02-01", "")
		assert.Equal(t, domain.ErrPlanFieldsMissing, err)

		_, err = svc.GenerateTimetable(ctx, chapters, "", "")
		assert.Equal(t, domain.ErrPlanFieldsMissing, err)
	})
}
