package model

import (
	"time"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
	GoalStatusAbandoned = "abandoned"
)

// GoalStatuses lists every status a goal can be in.
var GoalStatuses = []string{GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusAbandoned}

// Goal is a study target measured in hours.
// CurrentHours caches the sum of linked record minutes and is rewritten on every progress read.
type Goal struct {
	GoalID       string    `json:"goal_id" dynamodbav:"goal_id" db:"goal_id"`
	UserID       string    `json:"user_id" dynamodbav:"user_id" db:"user_id"`
	Title        string    `json:"title" dynamodbav:"title" db:"title"`
	Description  string    `json:"description" dynamodbav:"description" db:"description"`
	TargetHours  float64   `json:"target_hours" dynamodbav:"target_hours" db:"target_hours"`
	CurrentHours float64   `json:"current_hours" dynamodbav:"current_hours" db:"current_hours"`
	Status       string    `json:"status" dynamodbav:"status" db:"status"`
	TargetDate   *string   `json:"target_date" dynamodbav:"target_date,omitempty" db:"target_date"`
	Subject      string    `json:"subject" dynamodbav:"subject" db:"subject"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" dynamodbav:"updated_at" db:"updated_at"`
}

// GoalUpdate carries a partial update. Nil fields are left untouched.
type GoalUpdate struct {
	Title        *string
	Description  *string
	TargetHours  *float64
	CurrentHours *float64
	Status       *string
	TargetDate   *string
	Subject      *string
}

func (u GoalUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.TargetHours == nil && u.CurrentHours == nil &&
		u.Status == nil && u.TargetDate == nil && u.Subject == nil
}

// Fields returns the provided fields keyed by attribute name, in a stable order.
func (u GoalUpdate) Fields() []Field {
	var fields []Field
	if u.Title != nil {
		fields = append(fields, Field{"title", *u.Title})
	}
	if u.Description != nil {
		fields = append(fields, Field{"description", *u.Description})
	}
	if u.TargetHours != nil {
		fields = append(fields, Field{"target_hours", *u.TargetHours})
	}
	if u.CurrentHours != nil {
		fields = append(fields, Field{"current_hours", *u.CurrentHours})
	}
	if u.Status != nil {
		fields = append(fields, Field{"status", *u.Status})
	}
	if u.TargetDate != nil {
		fields = append(fields, Field{"target_date", *u.TargetDate})
	}
	if u.Subject != nil {
		fields = append(fields, Field{"subject", *u.Subject})
	}
	return fields
}

// Apply copies the provided fields onto g.
func (u GoalUpdate) Apply(g *Goal) {
	if u.Title != nil {
		g.Title = *u.Title
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	if u.TargetHours != nil {
		g.TargetHours = *u.TargetHours
	}
	if u.CurrentHours != nil {
		g.CurrentHours = *u.CurrentHours
	}
	if u.Status != nil {
		g.Status = *u.Status
	}
	if u.TargetDate != nil {
		td := *u.TargetDate
		g.TargetDate = &td
	}
	if u.Subject != nil {
		g.Subject = *u.Subject
	}
}

// Field is a single attribute assignment of a partial update.
type Field struct {
	Name  string
	Value any
}

// GoalProgress is the derived view returned by the progress endpoint.
type GoalProgress struct {
	GoalID          string  `json:"goal_id"`
	Title           string  `json:"title"`
	TargetHours     float64 `json:"target_hours"`
	CurrentHours    float64 `json:"current_hours"`
	ProgressPercent float64 `json:"progress_percent"`
	RemainingHours  float64 `json:"remaining_hours"`
	Status          string  `json:"status"`
	RecordsCount    int     `json:"records_count"`
}
