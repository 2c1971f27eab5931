package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/feelalive/aura-engine/internal/adapters/repository"
	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/feelalive/aura-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func newTaskFixture(oracle *fakeOracle) (*services.TaskService, *services.ProfileService) {
	profiles, _ := newProfileFixture()
	svc := services.NewTaskService(repository.NewInMemoryTaskRepository(), profiles, oracle)
	return svc, profiles
}

func createTask(t *testing.T, svc *services.TaskService, userID string, cls domain.TaskClassification, category string, duration *int) *domain.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), services.CreateTaskInput{
		UserID:          userID,
		Name:            "Test task",
		Category:        category,
		DurationMinutes: duration,
	})
	assert.Nil(t, err)
	return task
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: stores the oracle classification", func(t *testing.T) {
		oracle := &fakeOracle{classification: domain.TaskClassification{
			Type:            domain.TaskTypeGood,
			Intensity:       domain.IntensityHard,
			ImageVerifiable: true,
		}}
		svc, _ := newTaskFixture(oracle)

		task := createTask(t, svc, "u1", oracle.classification, domain.TaskCategoryNormal, nil)
		assert.Equal(t, domain.IntensityHard, task.Intensity)
		assert.True(t, task.ImageVerifiable)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
	})

	t.Run("Error: classification failure surfaces", func(t *testing.T) {
		oracle := &fakeOracle{classifyErr: services.ErrOracleUnavailable}
		svc, _ := newTaskFixture(oracle)

		_, err := svc.Create(ctx, services.CreateTaskInput{UserID: "u1", Name: "Task", Category: domain.TaskCategoryNormal})
		assert.True(t, errors.Is(err, services.ErrOracleUnavailable))
	})

	t.Run("Error: validation short-circuits before the oracle", func(t *testing.T) {
		oracle := &fakeOracle{classifyErr: services.ErrOracleUnavailable}
		svc, _ := newTaskFixture(oracle)

		_, err := svc.Create(ctx, services.CreateTaskInput{UserID: "u1", Name: "", Category: domain.TaskCategoryNormal})
		assert.Equal(t, domain.ErrTaskNameEmpty, err)
	})
}

func TestTaskService_CompleteNormal(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: rewards by intensity", func(t *testing.T) {
		oracle := &fakeOracle{classification: goodClassification()}
		svc, _ := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", oracle.classification, domain.TaskCategoryNormal, nil)

		result, err := svc.CompleteNormal(ctx, "u1", task.ID)
		assert.Nil(t, err)
		assert.Equal(t, 10, result.AuraChange)
		assert.Equal(t, domain.StartingAura+10, result.NewAura)
		assert.Equal(t, domain.TaskStatusCompleted, result.Task.Status)
	})

	t.Run("Error: double completion leaves aura untouched", func(t *testing.T) {
		oracle := &fakeOracle{classification: goodClassification()}
		svc, profiles := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", oracle.classification, domain.TaskCategoryNormal, nil)

		_, err := svc.CompleteNormal(ctx, "u1", task.ID)
		assert.Nil(t, err)

		_, err = svc.CompleteNormal(ctx, "u1", task.ID)
		assert.Equal(t, domain.ErrTaskCompleted, err)

		p, err := profiles.GetOrCreate(ctx, "u1")
		assert.Nil(t, err)
		assert.Equal(t, domain.StartingAura+10, p.Aura)
	})

	t.Run("Error: foreign task is indistinguishable from absent", func(t *testing.T) {
		oracle := &fakeOracle{classification: goodClassification()}
		svc, _ := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", oracle.classification, domain.TaskCategoryNormal, nil)

		_, err := svc.CompleteNormal(ctx, "intruder", task.ID)
		assert.Equal(t, domain.ErrTaskNotFound, err)

		_, err = svc.CompleteNormal(ctx, "intruder", "no-such-task")
		assert.Equal(t, domain.ErrTaskNotFound, err)
	})

	t.Run("Error: verifiable task must go through verification", func(t *testing.T) {
		oracle := &fakeOracle{classification: domain.TaskClassification{
			Type:            domain.TaskTypeGood,
			Intensity:       domain.IntensityEasy,
			ImageVerifiable: true,
		}}
		svc, _ := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", oracle.classification, domain.TaskCategoryNormal, nil)

		_, err := svc.CompleteNormal(ctx, "u1", task.ID)
		assert.Equal(t, domain.ErrTaskVerifiable, err)
	})
}

func TestTaskService_CompleteVerifiable(t *testing.T) {
	ctx := context.Background()

	verifiableCls := domain.TaskClassification{
		Type:            domain.TaskTypeGood,
		Intensity:       domain.IntensityHard,
		ImageVerifiable: true,
	}

	t.Run("Success: oracle yes awards aura and counts the attempt", func(t *testing.T) {
		oracle := &fakeOracle{classification: verifiableCls, verifyResult: true}
		svc, profiles := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", verifiableCls, domain.TaskCategoryNormal, nil)

		result, err := svc.CompleteVerifiable(ctx, "u1", task.ID, "aW1hZ2U=")
		assert.Nil(t, err)
		assert.Equal(t, 15, result.AuraChange)
		assert.Equal(t, 1, oracle.verifyCalls)

		p, err := profiles.GetOrCreate(ctx, "u1")
		assert.Nil(t, err)
		assert.Equal(t, 1, p.ValidationCount)
	})

	t.Run("oracle no keeps the task pending but still counts", func(t *testing.T) {
		oracle := &fakeOracle{classification: verifiableCls, verifyResult: false}
		svc, profiles := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", verifiableCls, domain.TaskCategoryNormal, nil)

		_, err := svc.CompleteVerifiable(ctx, "u1", task.ID, "aW1hZ2U=")
		assert.Equal(t, domain.ErrTaskNotVerified, err)

		p, err := profiles.GetOrCreate(ctx, "u1")
		assert.Nil(t, err)
		assert.Equal(t, domain.StartingAura, p.Aura)
		assert.Equal(t, 1, p.ValidationCount)

		// The task can be retried.
		oracle.verifyResult = true
		result, err := svc.CompleteVerifiable(ctx, "u1", task.ID, "aW1hZ2U=")
		assert.Nil(t, err)
		assert.Equal(t, 15, result.AuraChange)
	})

	t.Run("Error: image required", func(t *testing.T) {
		oracle := &fakeOracle{classification: verifiableCls}
		svc, _ := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", verifiableCls, domain.TaskCategoryNormal, nil)

		_, err := svc.CompleteVerifiable(ctx, "u1", task.ID, "")
		assert.Equal(t, domain.ErrImageRequired, err)
		assert.Equal(t, 0, oracle.verifyCalls)
	})

	t.Run("Error: daily quota exhausted", func(t *testing.T) {
		oracle := &fakeOracle{classification: verifiableCls, verifyResult: true}
		svc, profiles := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", verifiableCls, domain.TaskCategoryNormal, nil)

		for i := 0; i < domain.DailyValidationLimit; i++ {
			assert.Nil(t, profiles.RecordValidation(ctx, "u1"))
		}

		_, err := svc.CompleteVerifiable(ctx, "u1", task.ID, "aW1hZ2U=")
		assert.Equal(t, domain.ErrValidationLimit, err)
		assert.Equal(t, 0, oracle.verifyCalls, "no oracle spend past the cap")
	})

	t.Run("Error: oracle failure surfaces without counting a completion", func(t *testing.T) {
		oracle := &fakeOracle{classification: verifiableCls, verifyErr: services.ErrOracleUnavailable}
		svc, _ := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", verifiableCls, domain.TaskCategoryNormal, nil)

		_, err := svc.CompleteVerifiable(ctx, "u1", task.ID, "aW1hZ2U=")
		assert.True(t, errors.Is(err, services.ErrOracleUnavailable))
	})
}

func TestTaskService_CompleteTimed(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: actual minutes override the plan", func(t *testing.T) {
		oracle := &fakeOracle{classification: goodClassification()}
		svc, _ := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", oracle.classification, domain.TaskCategoryTimed, ptr(60))

		result, err := svc.CompleteTimed(ctx, "u1", task.ID, ptr(30))
		assert.Nil(t, err)
		assert.Equal(t, 21, result.AuraChange, "3 blocks of 10 at the medium rate")
	})

	t.Run("Success: nil actual falls back to the planned duration", func(t *testing.T) {
		oracle := &fakeOracle{classification: goodClassification()}
		svc, _ := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", oracle.classification, domain.TaskCategoryTimed, ptr(40))

		result, err := svc.CompleteTimed(ctx, "u1", task.ID, nil)
		assert.Nil(t, err)
		assert.Equal(t, 28, result.AuraChange)
	})

	t.Run("bad timed task deducts, clamped at zero", func(t *testing.T) {
		oracle := &fakeOracle{classification: domain.TaskClassification{
			Type:      domain.TaskTypeBad,
			Intensity: domain.IntensityHard,
		}}
		svc, _ := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", oracle.classification, domain.TaskCategoryTimed, ptr(120))

		result, err := svc.CompleteTimed(ctx, "u1", task.ID, nil)
		assert.Nil(t, err)
		assert.Equal(t, -120, result.AuraChange)
		assert.Equal(t, 0, result.NewAura, "the ledger floors at zero")
	})

	t.Run("Error: normal task rejected", func(t *testing.T) {
		oracle := &fakeOracle{classification: goodClassification()}
		svc, _ := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", oracle.classification, domain.TaskCategoryNormal, nil)

		_, err := svc.CompleteTimed(ctx, "u1", task.ID, ptr(30))
		assert.Equal(t, domain.ErrTaskNotTimed, err)
	})
}

func TestTaskService_CompleteBad(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: deducts the flat intensity amount", func(t *testing.T) {
		oracle := &fakeOracle{classification: domain.TaskClassification{
			Type:      domain.TaskTypeBad,
			Intensity: domain.IntensityMedium,
		}}
		svc, _ := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", oracle.classification, domain.TaskCategoryNormal, nil)

		result, err := svc.CompleteBad(ctx, "u1", task.ID)
		assert.Nil(t, err)
		assert.Equal(t, -10, result.AuraChange)
		assert.Equal(t, domain.StartingAura-10, result.NewAura)
	})

	t.Run("Error: good task rejected", func(t *testing.T) {
		oracle := &fakeOracle{classification: goodClassification()}
		svc, _ := newTaskFixture(oracle)
		task := createTask(t, svc, "u1", oracle.classification, domain.TaskCategoryNormal, nil)

		_, err := svc.CompleteBad(ctx, "u1", task.ID)
		assert.Equal(t, domain.ErrTaskNotBad, err)
	})
}

func TestTaskService_MarkBad(t *testing.T) {
	ctx := context.Background()
	oracle := &fakeOracle{classification: goodClassification()}
	svc, _ := newTaskFixture(oracle)
	task := createTask(t, svc, "u1", oracle.classification, domain.TaskCategoryNormal, nil)

	marked, err := svc.MarkBad(ctx, "u1", task.ID)
	assert.Nil(t, err)
	assert.Equal(t, domain.TaskTypeBad, marked.Type)

	// Once completed the type is frozen.
	_, err = svc.CompleteBad(ctx, "u1", task.ID)
	assert.Nil(t, err)
	_, err = svc.MarkBad(ctx, "u1", task.ID)
	assert.Equal(t, domain.ErrTaskCompleted, err)
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	oracle := &fakeOracle{classification: goodClassification()}
	svc, _ := newTaskFixture(oracle)
	task := createTask(t, svc, "u1", oracle.classification, domain.TaskCategoryNormal, nil)

	t.Run("Error: foreign delete rejected as not found", func(t *testing.T) {
		assert.Equal(t, domain.ErrTaskNotFound, svc.Delete(ctx, "intruder", task.ID))
	})

	t.Run("Success: completed tasks can still be deleted", func(t *testing.T) {
		_, err := svc.CompleteNormal(ctx, "u1", task.ID)
		assert.Nil(t, err)

		assert.Nil(t, svc.Delete(ctx, "u1", task.ID))

		list, err := svc.ListByUserID(ctx, "u1")
		assert.Nil(t, err)
		assert.Empty(t, list)
	})
}
