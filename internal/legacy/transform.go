// Package legacy reads an old SQLite tracker database and converts its
// rows into the current data model.
package legacy

import (
	"fmt"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/oklog/ulid/v2"

	"github.com/jobpal/jobpal/internal/model"
)

// salaryRanges maps the old range codes to (min, max) in thousands.
// The table is carried over verbatim from the legacy database, gaps
// included.
var salaryRanges = map[string][2]int{
	"1":  {0, 10},
	"2":  {10, 20},
	"3":  {20, 30},
	"4":  {30, 40},
	"5":  {40, 50},
	"6":  {50, 60},
	"7":  {60, 70},
	"8":  {70, 80},
	"9":  {80, 90},
	"10": {90, 100},
	"11": {100, 110},
	"12": {120, 130},
	"13": {130, 140},
	"14": {140, 150},
	"15": {150, 200},
}

// StatusFromLegacy maps an old status label to an ApplicationStatus.
// Unknown and missing labels fall back to not_yet_applied.
func StatusFromLegacy(value string) model.ApplicationStatus {
	status := model.ApplicationStatus(strings.ToLower(value))
	if status.IsValid() {
		return status
	}
	return model.StatusNotYetApplied
}

// SourceFromLegacy maps an old source label to a JobSource.
// Unknown and missing labels fall back to other.
func SourceFromLegacy(value string) model.JobSource {
	source := model.JobSource(strings.ToLower(value))
	if source.IsValid() {
		return source
	}
	return model.SourceOther
}

// SalaryRange decodes an old salary range code into absolute min and
// max values. Unknown codes yield nil, nil.
func SalaryRange(code string) (*int, *int) {
	bounds, ok := salaryRanges[code]
	if !ok {
		return nil, nil
	}
	min := bounds[0] * 1000
	max := bounds[1] * 1000
	return &min, &max
}

// MsToTime converts milliseconds since the Unix epoch to a UTC time.
func MsToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ProperCase capitalizes the first letter of every word and lowercases
// the rest, matching how the legacy tool normalized company and role
// names.
func ProperCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Transformer converts legacy job rows into model.Job values.
type Transformer struct {
	converter *md.Converter
}

// NewTransformer creates a Transformer with an HTML-to-Markdown
// converter for vacancy descriptions.
func NewTransformer() *Transformer {
	return &Transformer{
		converter: md.NewConverter("", true, nil),
	}
}

// Job converts a legacy row into a Job owned by the given user.
// Descriptions stored as HTML come out as Markdown; company and role
// names are proper-cased; epoch-millisecond dates become timestamps.
func (t *Transformer) Job(userID string, row SourceJob) (*model.Job, error) {
	job := &model.Job{
		ID:                ulid.Make().String(),
		UserID:            userID,
		CompanyName:       ProperCase(row.Company.String),
		RoleTitle:         ProperCase(row.JobTitle.String),
		ApplicationStatus: StatusFromLegacy(row.Status.String),
		Source:            SourceFromLegacy(row.Source.String),
		NotificationSent:  false,
		CreatedAt:         time.Now().UTC(),
	}

	if row.VacancyLink.Valid && row.VacancyLink.String != "" {
		link := row.VacancyLink.String
		job.VacancyLink = &link
	}

	if row.VacancyText.Valid && row.VacancyText.String != "" {
		text, err := t.converter.ConvertString(row.VacancyText.String)
		if err != nil {
			return nil, fmt.Errorf("convert vacancy text: %w", err)
		}
		job.VacancyText = &text
	}

	// The applied flag gates the date: a due date entered before
	// applying must not count as an application date.
	if row.Applied.Valid && row.Applied.Int64 != 0 && row.AppliedDate.Valid {
		applied := MsToTime(row.AppliedDate.Int64)
		job.DateApplied = &applied
	}

	if row.DueDate.Valid {
		due := MsToTime(row.DueDate.Int64)
		job.NextMilestoneDate = &due
	}

	if row.SalaryRange.Valid {
		job.SalaryMin, job.SalaryMax = SalaryRange(row.SalaryRange.String)
	}

	if row.CreatedAt.Valid {
		created := MsToTime(row.CreatedAt.Int64)
		job.CreatedAt = created
		// The legacy schema never tracked modification times.
		job.UpdatedAt = &created
	}

	return job, nil
}
