package controllers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/events-backend/database"
	"github.com/opencampus/events-backend/models"
)

// EventPopularity is one row of the popularity ranking.
type EventPopularity struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Type              string    `json:"type"`
	Venue             string    `json:"venue"`
	StartsAt          time.Time `json:"starts_at"`
	Capacity          int       `json:"capacity"`
	RegistrationCount int       `json:"registration_count"`
	FillPercentage    float64   `json:"fill_percentage"`
}

// EventSummary aggregates registrations, attendance and feedback for one
// event.
type EventSummary struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Type                 string    `json:"type"`
	StartsAt             time.Time `json:"starts_at"`
	TotalRegistrations   int       `json:"total_registrations"`
	AttendedCount        int       `json:"attended_count"`
	AttendancePercentage float64   `json:"attendance_percentage"`
	FeedbackCount        int       `json:"feedback_count"`
	AverageRating        float64   `json:"average_rating"`
	CapacityUtilization  float64   `json:"capacity_utilization"`
}

// RecentEvent is a short event reference shown on participation rows.
type RecentEvent struct {
	Title string    `json:"title"`
	Type  string    `json:"type"`
	Date  time.Time `json:"date"`
}

// StudentParticipation is one row of the participation ranking.
type StudentParticipation struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	StudentID          string        `json:"student_id"`
	Department         string        `json:"department"`
	TotalRegistrations int           `json:"total_registrations"`
	AttendedCount      int           `json:"attended_count"`
	AttendanceRate     float64       `json:"attendance_rate"`
	RecentEvents       []RecentEvent `json:"recent_events"`
}

// GetEventPopularity ranks the college's events by registration count
// (requires admin permission).
func GetEventPopularity(c *gin.Context) {
	query := database.DB.
		Preload("Registrations").
		Where("college_id = ?", c.GetString("college_id"))

	if t := c.Query("type"); t != "" && t != "all" {
		query = query.Where("type = ?", t)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		start, err := time.Parse(time.RFC3339, startDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date format. Use RFC3339 (e.g., 2023-10-01T00:00:00Z)"})
			return
		}
		query = query.Where("starts_at >= ?", start)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		end, err := time.Parse(time.RFC3339, endDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date format. Use RFC3339 (e.g., 2023-10-01T00:00:00Z)"})
			return
		}
		query = query.Where("starts_at <= ?", end)
	}

	var events []models.Event
	if err := query.Order("starts_at desc").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	ranking := make([]EventPopularity, 0, len(events))
	for _, event := range events {
		count := len(event.Registrations)
		ranking = append(ranking, EventPopularity{
			ID:                event.ID,
			Title:             event.Title,
			Type:              event.Type,
			Venue:             event.Venue,
			StartsAt:          event.StartsAt,
			Capacity:          event.Capacity,
			RegistrationCount: count,
			FillPercentage:    float64(count) / float64(event.Capacity) * 100,
		})
	}

	// Ties keep the query's ordering.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].RegistrationCount > ranking[j].RegistrationCount
	})

	c.JSON(http.StatusOK, gin.H{"events": ranking})
}

// GetEventSummary returns the aggregate summary for one event
// (?event_id=...) or for every event of the college (requires admin
// permission).
func GetEventSummary(c *gin.Context) {
	collegeID := c.GetString("college_id")

	if eventID := c.Query("event_id"); eventID != "" {
		var event models.Event
		err := database.DB.
			Preload("Registrations.Attendance").
			Preload("Registrations.Feedback").
			Where("college_id = ?", collegeID).
			First(&event, "id = ?", eventID).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"summary": summarizeEvent(event)})
		return
	}

	var events []models.Event
	err := database.DB.
		Preload("Registrations.Attendance").
		Preload("Registrations.Feedback").
		Where("college_id = ?", collegeID).
		Order("starts_at desc").
		Find(&events).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	summaries := make([]EventSummary, 0, len(events))
	for _, event := range events {
		summaries = append(summaries, summarizeEvent(event))
	}

	c.JSON(http.StatusOK, gin.H{"summaries": summaries})
}

func summarizeEvent(event models.Event) EventSummary {
	total := len(event.Registrations)

	var attended, feedbackCount, ratingSum int
	for _, reg := range event.Registrations {
		if reg.Attendance != nil {
			attended++
		}
		if reg.Feedback != nil {
			feedbackCount++
			ratingSum += reg.Feedback.Rating
		}
	}

	summary := EventSummary{
		ID:                  event.ID,
		Title:               event.Title,
		Type:                event.Type,
		StartsAt:            event.StartsAt,
		TotalRegistrations:  total,
		AttendedCount:       attended,
		FeedbackCount:       feedbackCount,
		CapacityUtilization: float64(total) / float64(event.Capacity) * 100,
	}
	if total > 0 {
		summary.AttendancePercentage = float64(attended) / float64(total) * 100
	}
	if feedbackCount > 0 {
		summary.AverageRating = float64(ratingSum) / float64(feedbackCount)
	}
	return summary
}

// GetStudentParticipation ranks the college's students by engagement
// (requires admin permission). sort_by selects the ranking key:
// attended_count (default), attendance_rate or total_registrations.
func GetStudentParticipation(c *gin.Context) {
	limit := 10
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	sortBy := c.DefaultQuery("sort_by", "attended_count")
	switch sortBy {
	case "attended_count", "attendance_rate", "total_registrations":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort_by must be one of attended_count, attendance_rate, total_registrations"})
		return
	}

	var students []models.UserProfile
	err := database.DB.
		Preload("Registrations.Event").
		Preload("Registrations.Attendance").
		Where("college_id = ? AND role = ?", c.GetString("college_id"), models.RoleStudent).
		Find(&students).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve students"})
		return
	}

	ranking := make([]StudentParticipation, 0, len(students))
	for _, student := range students {
		row := StudentParticipation{
			ID:                 student.ID,
			Name:               student.Name,
			StudentID:          student.StudentID,
			Department:         student.Department,
			TotalRegistrations: len(student.Registrations),
			RecentEvents:       []RecentEvent{},
		}
		for _, reg := range student.Registrations {
			if reg.Attendance == nil {
				continue
			}
			row.AttendedCount++
			if len(row.RecentEvents) < 3 {
				row.RecentEvents = append(row.RecentEvents, RecentEvent{
					Title: reg.Event.Title,
					Type:  reg.Event.Type,
					Date:  reg.Event.StartsAt,
				})
			}
		}
		if row.TotalRegistrations > 0 {
			row.AttendanceRate = float64(row.AttendedCount) / float64(row.TotalRegistrations) * 100
		}
		ranking = append(ranking, row)
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		switch sortBy {
		case "attendance_rate":
			return ranking[i].AttendanceRate > ranking[j].AttendanceRate
		case "total_registrations":
			return ranking[i].TotalRegistrations > ranking[j].TotalRegistrations
		default:
			return ranking[i].AttendedCount > ranking[j].AttendedCount
		}
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}

	c.JSON(http.StatusOK, gin.H{"students": ranking})
}
