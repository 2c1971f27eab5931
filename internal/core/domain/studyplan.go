package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPlanFieldsMissing  = errors.New("subjects, chapters, deadline and timetable are all required")
	ErrClientDateRequired = errors.New("client date is required")
	ErrInvalidDate        = errors.New("invalid date (expected YYYY-MM-DD)")
	ErrFutureTaskDate     = errors.New("cannot complete a task for a future date")
)

const (
	StudyTaskTypeStudy    = "study"
	StudyTaskTypeRevision = "revision"
	StudyTaskTypeBreak    = "break"

	// MissedDayPenalty is deducted once per past day left with incomplete tasks.
	MissedDayPenalty = 35

	StudyTaskAura    = 30
	RevisionTaskAura = 15
)

type Chapter struct {
	Subject string `json:"subject"`
	Name    string `json:"name"`
}

type StudyTask struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
}

type TimetableDay struct {
	Date  string      `json:"date"`
	Tasks []StudyTask `json:"tasks"`
}

// StudyPlan is the single per-user multi-day timetable. LastCheckedDate only
// ever advances; every day folded into it has been reconciled exactly once.
type StudyPlan struct {
	UserID          string         `json:"userId"`
	Subjects        []string       `json:"subjects"`
	Chapters        []Chapter      `json:"chapters"`
	Deadline        string         `json:"deadline"`
	Timetable       []TimetableDay `json:"timetable"`
	LastCheckedDate string         `json:"lastCheckedDate"`
}

// NewStudyPlan stamps every timetable task with a unique id derived from its
// day plus a plan-wide counter, and resets all completion flags.
func NewStudyPlan(userID string, subjects []string, chapters []Chapter, deadline string, timetable []TimetableDay) (*StudyPlan, error) {
	if len(subjects) == 0 || len(chapters) == 0 || deadline == "" || len(timetable) == 0 {
		return nil, ErrPlanFieldsMissing
	}

	counter := 0
	stamped := make([]TimetableDay, len(timetable))
	for i, day := range timetable {
		dayDate, err := ParseDate(day.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}

		tasks := make([]StudyTask, len(day.Tasks))
		for j, task := range day.Tasks {
			task.ID = fmt.Sprintf("%d-%d", dayDate.UnixMilli(), counter)
			task.Completed = false
			tasks[j] = task
			counter++
		}
		stamped[i] = TimetableDay{Date: day.Date, Tasks: tasks}
	}

	return &StudyPlan{
		UserID:          userID,
		Subjects:        subjects,
		Chapters:        chapters,
		Deadline:        deadline,
		Timetable:       stamped,
		LastCheckedDate: Today(),
	}, nil
}

// MissedDayPenaltyTotal scans every calendar day strictly after lastChecked
// up to clientDate (exclusive) and charges MissedDayPenalty for each day whose
// timetable entry still has an incomplete task. Days already folded into
// LastCheckedDate are never scanned again, which makes reconciliation
// idempotent per calendar day.
func (p *StudyPlan) MissedDayPenaltyTotal(clientDate string) (int, error) {
	today, err := ParseDate(clientDate)
	if err != nil {
		return 0, ErrInvalidDate
	}
	lastChecked, err := ParseDate(p.LastCheckedDate)
	if err != nil {
		return 0, ErrInvalidDate
	}

	total := 0
	for d := lastChecked.AddDate(0, 0, 1); d.Before(today); d = d.AddDate(0, 0, 1) {
		day := p.dayAt(d.Format(DateLayout))
		if day == nil {
			continue
		}
		for _, task := range day.Tasks {
			if !task.Completed {
				total += MissedDayPenalty
				break
			}
		}
	}
	return total, nil
}

func (p *StudyPlan) dayAt(date string) *TimetableDay {
	for i := range p.Timetable {
		if p.Timetable[i].Date == date {
			return &p.Timetable[i]
		}
	}
	return nil
}

// CompleteTask marks the task with the given id on the given day and returns
// the aura reward. Absent and already-completed tasks are indistinguishable
// to the caller.
func (p *StudyPlan) CompleteTask(taskID, dateOfTask string) (int, bool) {
	day := p.dayAt(dateOfTask)
	if day == nil {
		return 0, false
	}
	for i := range day.Tasks {
		if day.Tasks[i].ID == taskID && !day.Tasks[i].Completed {
			day.Tasks[i].Completed = true
			if day.Tasks[i].Type == StudyTaskTypeRevision {
				return RevisionTaskAura, true
			}
			return StudyTaskAura, true
		}
	}
	return 0, false
}
