package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/dept-attendance-api/internal/models"
)

const analyticsDateLayout = "2006-01-02"

// FilterRecords applies every non-empty criterion of the filter. A record is
// kept only when it satisfies all of them.
func FilterRecords(records []models.AttendanceRecord, filter models.AttendanceFilter) []models.AttendanceRecord {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	lecture := strings.ToLower(strings.TrimSpace(filter.Lecture))
	division := strings.TrimSpace(filter.Division)
	class := strings.TrimSpace(filter.Class)
	date := strings.TrimSpace(filter.Date)

	out := make([]models.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if search != "" && !containsFold(r.StudentName, search) && !containsFold(r.StudentPRN, search) {
			continue
		}
		if division != "" && r.Division != division {
			continue
		}
		if class != "" && r.Class != class {
			continue
		}
		if date != "" && r.LectureDate != date {
			continue
		}
		if lecture != "" && !containsFold(r.LectureNumber, lecture) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// DailyCounts groups records by the calendar date of their timestamp in loc
// and returns the most recent days dates in ascending order.
func DailyCounts(records []models.AttendanceRecord, loc *time.Location, days int) []models.DailyAttendance {
	if loc == nil {
		loc = time.UTC
	}
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Timestamp.In(loc).Format(analyticsDateLayout)]++
	}

	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if days > 0 && len(dates) > days {
		dates = dates[len(dates)-days:]
	}

	series := make([]models.DailyAttendance, 0, len(dates))
	for _, d := range dates {
		series = append(series, models.DailyAttendance{Date: d, Students: counts[d]})
	}
	return series
}

// AttendancePercentage is attended over expected as a whole percentage.
func AttendancePercentage(attended, expected int) int {
	if expected <= 0 {
		return 0
	}
	return int(math.Round(float64(attended) / float64(expected) * 100))
}

// newestFirst orders records by timestamp, latest first.
func newestFirst(records []models.AttendanceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}
