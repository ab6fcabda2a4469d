package model

import (
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// StudyRecord is one logged study session.
// GoalID is a plain label: it is never checked against existing goals.
type StudyRecord struct {
	RecordID        string    `json:"record_id" dynamodbav:"record_id" db:"record_id"`
	UserID          string    `json:"user_id" dynamodbav:"user_id" db:"user_id"`
	StudyDate       string    `json:"study_date" dynamodbav:"study_date" db:"study_date"`
	Subject         string    `json:"subject" dynamodbav:"subject" db:"subject"`
	DurationMinutes int       `json:"duration_minutes" dynamodbav:"duration_minutes" db:"duration_minutes"`
	StartTime       *string   `json:"start_time" dynamodbav:"start_time,omitempty" db:"start_time"`
	EndTime         *string   `json:"end_time" dynamodbav:"end_time,omitempty" db:"end_time"`
	Memo            string    `json:"memo" dynamodbav:"memo" db:"memo"`
	GoalID          *string   `json:"goal_id" dynamodbav:"goal_id,omitempty" db:"goal_id"`
	CreatedAt       time.Time `json:"created_at" dynamodbav:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" dynamodbav:"updated_at" db:"updated_at"`
}

// BelongsTo reports whether the record is labelled with goalID.
func (r *StudyRecord) BelongsTo(goalID string) bool {
	return r.GoalID != nil && *r.GoalID == goalID
}

// RecordUpdate carries a partial update. Nil fields are left untouched.
type RecordUpdate struct {
	StudyDate       *string
	Subject         *string
	DurationMinutes *int
	StartTime       *string
	EndTime         *string
	Memo            *string
	GoalID          *string
}

func (u RecordUpdate) IsEmpty() bool {
	return u.StudyDate == nil && u.Subject == nil && u.DurationMinutes == nil && u.StartTime == nil &&
		u.EndTime == nil && u.Memo == nil && u.GoalID == nil
}

// Fields returns the provided fields keyed by attribute name, in a stable order.
func (u RecordUpdate) Fields() []Field {
	var fields []Field
	if u.StudyDate != nil {
		fields = append(fields, Field{"study_date", *u.StudyDate})
	}
	if u.Subject != nil {
		fields = append(fields, Field{"subject", *u.Subject})
	}
	if u.DurationMinutes != nil {
		fields = append(fields, Field{"duration_minutes", *u.DurationMinutes})
	}
	if u.StartTime != nil {
		fields = append(fields, Field{"start_time", *u.StartTime})
	}
	if u.EndTime != nil {
		fields = append(fields, Field{"end_time", *u.EndTime})
	}
	if u.Memo != nil {
		fields = append(fields, Field{"memo", *u.Memo})
	}
	if u.GoalID != nil {
		fields = append(fields, Field{"goal_id", *u.GoalID})
	}
	return fields
}

// Apply copies the provided fields onto r.
func (u RecordUpdate) Apply(r *StudyRecord) {
	if u.StudyDate != nil {
		r.StudyDate = *u.StudyDate
	}
	if u.Subject != nil {
		r.Subject = *u.Subject
	}
	if u.DurationMinutes != nil {
		r.DurationMinutes = *u.DurationMinutes
	}
	if u.StartTime != nil {
		v := *u.StartTime
		r.StartTime = &v
	}
	if u.EndTime != nil {
		v := *u.EndTime
		r.EndTime = &v
	}
	if u.Memo != nil {
		r.Memo = *u.Memo
	}
	if u.GoalID != nil {
		v := *u.GoalID
		r.GoalID = &v
	}
}

// RecordFilter narrows a record listing. Date bounds are inclusive ISO dates.
type RecordFilter struct {
	DateFrom string
	DateTo   string
	Subject  string
}

// HasDateRange reports whether either bound is set.
func (f RecordFilter) HasDateRange() bool {
	return f.DateFrom != "" || f.DateTo != ""
}
