package domain

import "errors"

var ErrInvalidRange = errors.New("start date cannot be after end date")

// UncategorizedKey buckets tasks that have no category.
const UncategorizedKey = "uncategorized"

type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completion_rate"`
}

type CategoryStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	CompletionRate int `json:"completion_rate"`
}

type DayCompletion struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// DailyTaskSeries has exactly one entry per calendar day of the requested range.
type DailyTaskSeries map[string]DayCompletion

type CigaretteStats struct {
	Today      int `json:"today"`
	Weekly     int `json:"weekly"`
	Monthly    int `json:"monthly"`
	Average    int `json:"average"`
	Max        int `json:"max"`
	Min        int `json:"min"`
	Streak     int `json:"streak"`
	Percentage int `json:"percentage"`
}

// CigaretteReport is one logged day. Days without a record are absent, not zero.
type CigaretteReport struct {
	Date       string `json:"date"`
	Count      int    `json:"count"`
	Limit      int    `json:"limit"`
	Percentage int    `json:"percentage"`
}

type PointsBreakdown struct {
	Rewards   int `json:"rewards"`
	Penalties int `json:"penalties"`
	Total     int `json:"total"`
}

type ReportSummary struct {
	StartDate     string                   `json:"start_date"`
	EndDate       string                   `json:"end_date"`
	Generation    uint64                   `json:"generation"`
	Tasks         TaskStats                `json:"tasks"`
	Categories    map[string]CategoryStats `json:"categories"`
	DailyTasks    DailyTaskSeries          `json:"daily_tasks"`
	Cigarettes    CigaretteStats           `json:"cigarettes"`
	CigaretteDays []CigaretteReport        `json:"cigarette_days"`
	Points        PointsBreakdown          `json:"points"`
}
