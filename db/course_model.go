package db

import "time"

// CourseModel is the metadata record for one ingested course. The title is
// the identity: ingestion of an already-known title is a no-op skip, never a
// merge.
type CourseModel struct {
	Title      string        `json:"title" gorm:"primaryKey"`
	Link       string        `json:"link,omitempty" gorm:"type:text"`
	Instructor string        `json:"instructor,omitempty"`
	Lessons    []LessonModel `json:"lessons" gorm:"foreignKey:CourseTitle;references:Title;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time     `json:"createdAt" gorm:"autoCreateTime"`
}

func (CourseModel) TableName() string { return "courses" }

// LessonModel is owned exclusively by its course; it has no independent
// lifecycle.
type LessonModel struct {
	ID          uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	CourseTitle string `json:"-" gorm:"not null;uniqueIndex:idx_course_lesson"`
	Number      int    `json:"number" gorm:"not null;uniqueIndex:idx_course_lesson"`
	Title       string `json:"title"`
	Link        string `json:"link,omitempty" gorm:"type:text"`
}

func (LessonModel) TableName() string { return "lessons" }
