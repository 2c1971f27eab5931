package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

// In-memory repositories mirror the Postgres semantics (clamped aura,
// counter increments, upserts) for tests and local runs without a database.

type InMemoryProfileRepository struct {
	store map[string]*domain.UserProfile

	mu sync.RWMutex
}

func NewInMemoryProfileRepository() *InMemoryProfileRepository {
	return &InMemoryProfileRepository{
		store: make(map[string]*domain.UserProfile),
	}
}

func (r *InMemoryProfileRepository) GetByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *InMemoryProfileRepository) Create(ctx context.Context, p *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[p.UserID]; exists {
		return nil
	}
	clone := *p
	r.store[p.UserID] = &clone
	return nil
}

func (r *InMemoryProfileRepository) AdjustAura(ctx context.Context, userID string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.store[userID]
	if !ok {
		return 0, domain.ErrProfileNotFound
	}
	p.Aura += delta
	if p.Aura < 0 {
		p.Aura = 0
	}
	return p.Aura, nil
}

func (r *InMemoryProfileRepository) IncrementValidation(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.store[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.ValidationCount++
	return nil
}

func (r *InMemoryProfileRepository) ResetValidation(ctx context.Context, userID string, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.store[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.ValidationCount = 0
	p.LastValidationResetDate = date
	return nil
}

func (r *InMemoryProfileRepository) SetSocialBlocker(ctx context.Context, userID, password string, days int, start, end string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.store[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.SocialPassword = &password
	p.SocialDays = &days
	p.SocialStart = &start
	p.SocialEnd = &end
	return nil
}

func (r *InMemoryProfileRepository) ClearSocialBlocker(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.store[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.SocialPassword = nil
	p.SocialDays = nil
	p.SocialStart = nil
	p.SocialEnd = nil
	return nil
}

type InMemoryTaskRepository struct {
	store map[string]*domain.Task

	mu sync.RWMutex
}

func NewInMemoryTaskRepository() *InMemoryTaskRepository {
	return &InMemoryTaskRepository{
		store: make(map[string]*domain.Task),
	}
}

func (r *InMemoryTaskRepository) Create(ctx context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *t
	r.store[t.ID] = &clone
	return nil
}

func (r *InMemoryTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.store[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *InMemoryTaskRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*domain.Task
	for _, t := range r.store {
		if t.UserID == userID {
			clone := *t
			tasks = append(tasks, &clone)
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	return tasks, nil
}

func (r *InMemoryTaskRepository) Update(ctx context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *t
	r.store[t.ID] = &clone
	return nil
}

func (r *InMemoryTaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.store, id)
	return nil
}

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *h
	r.store[h.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *h
	return &clone, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID {
			clone := *h
			habits = append(habits, &clone)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.After(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[h.ID]; !ok {
		return domain.ErrHabitNotFound
	}
	clone := *h
	r.store[h.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) IncrementCompleted(ctx context.Context, id string, by int, completedDays string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.store[id]
	if !ok {
		return domain.ErrHabitNotFound
	}
	h.CompletedTimes += by
	h.CompletedDays = completedDays
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}
	delete(r.store, id)
	return nil
}

type InMemoryBadHabitRepository struct {
	store map[string]*domain.BadHabit

	mu sync.RWMutex
}

func NewInMemoryBadHabitRepository() *InMemoryBadHabitRepository {
	return &InMemoryBadHabitRepository{
		store: make(map[string]*domain.BadHabit),
	}
}

func (r *InMemoryBadHabitRepository) Create(ctx context.Context, b *domain.BadHabit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *b
	r.store[b.ID] = &clone
	return nil
}

func (r *InMemoryBadHabitRepository) GetByID(ctx context.Context, id string) (*domain.BadHabit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.store[id]
	if !ok {
		return nil, domain.ErrBadHabitNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *InMemoryBadHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.BadHabit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.BadHabit
	for _, b := range r.store {
		if b.UserID == userID {
			clone := *b
			habits = append(habits, &clone)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.After(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryBadHabitRepository) Update(ctx context.Context, b *domain.BadHabit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[b.ID]; !ok {
		return domain.ErrBadHabitNotFound
	}
	clone := *b
	r.store[b.ID] = &clone
	return nil
}

func (r *InMemoryBadHabitRepository) IncrementCompleted(ctx context.Context, id string, by int, completedDays string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.store[id]
	if !ok {
		return domain.ErrBadHabitNotFound
	}
	b.CompletedTimes += by
	b.CompletedDays = completedDays
	return nil
}

func (r *InMemoryBadHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrBadHabitNotFound
	}
	delete(r.store, id)
	return nil
}

type InMemoryStudyPlanRepository struct {
	store map[string]*domain.StudyPlan

	mu sync.RWMutex
}

func NewInMemoryStudyPlanRepository() *InMemoryStudyPlanRepository {
	return &InMemoryStudyPlanRepository{
		store: make(map[string]*domain.StudyPlan),
	}
}

func clonePlan(p *domain.StudyPlan) *domain.StudyPlan {
	clone := *p
	clone.Subjects = append([]string(nil), p.Subjects...)
	clone.Chapters = append([]domain.Chapter(nil), p.Chapters...)
	clone.Timetable = cloneTimetable(p.Timetable)
	return &clone
}

func cloneTimetable(tt []domain.TimetableDay) []domain.TimetableDay {
	out := make([]domain.TimetableDay, len(tt))
	for i, day := range tt {
		out[i] = domain.TimetableDay{
			Date:  day.Date,
			Tasks: append([]domain.StudyTask(nil), day.Tasks...),
		}
	}
	return out
}

func (r *InMemoryStudyPlanRepository) Create(ctx context.Context, p *domain.StudyPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[p.UserID] = clonePlan(p)
	return nil
}

func (r *InMemoryStudyPlanRepository) GetByUserID(ctx context.Context, userID string) (*domain.StudyPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	return clonePlan(p), nil
}

func (r *InMemoryStudyPlanRepository) UpdateTimetable(ctx context.Context, userID string, timetable []domain.TimetableDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.store[userID]
	if !ok {
		return domain.ErrPlanNotFound
	}
	p.Timetable = cloneTimetable(timetable)
	return nil
}

func (r *InMemoryStudyPlanRepository) UpdateLastChecked(ctx context.Context, userID, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.store[userID]
	if !ok {
		return domain.ErrPlanNotFound
	}
	p.LastCheckedDate = date
	return nil
}

func (r *InMemoryStudyPlanRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[userID]; !ok {
		return domain.ErrPlanNotFound
	}
	delete(r.store, userID)
	return nil
}

type InMemoryAuraPageRepository struct {
	store map[string]*domain.AuraPage

	mu sync.RWMutex
}

func NewInMemoryAuraPageRepository() *InMemoryAuraPageRepository {
	return &InMemoryAuraPageRepository{
		store: make(map[string]*domain.AuraPage),
	}
}

func (r *InMemoryAuraPageRepository) Upsert(ctx context.Context, p *domain.AuraPage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *p
	r.store[p.UserID] = &clone
	return nil
}

func (r *InMemoryAuraPageRepository) GetByUserID(ctx context.Context, userID string) (*domain.AuraPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrAuraPageNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *InMemoryAuraPageRepository) GetByUsername(ctx context.Context, username string) (*domain.AuraPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.store {
		if p.Username == username {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrAuraPageNotFound
}

func (r *InMemoryAuraPageRepository) SetEnabled(ctx context.Context, userID string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.store[userID]
	if !ok {
		return domain.ErrAuraPageNotFound
	}
	p.Enabled = enabled
	return nil
}
