package stock

import (
	"strings"
	"time"
)

// Stock represents a tracked equity.
// Maps to the stocks table. Code is the exchange ticker (e.g. BBSE3) and is
// unique by convention; uniqueness is enforced at write time by
// CreateManySkippingDuplicates, not by a database constraint.
type Stock struct {
	ID      string  `json:"id" db:"id"`
	Code    string  `json:"code" db:"code"`
	Name    string  `json:"name" db:"name"`
	Company *string `json:"company" db:"company"`
	URL     *string `json:"url" db:"url"`           // profile page
	URLNews *string `json:"url_news" db:"url_news"` // news index page, discovered lazily

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Queryable field names accepted by the stock repository filters.
const (
	FieldCode    = "code"
	FieldName    = "name"
	FieldCompany = "company"
	FieldURL     = "url"
	FieldURLNews = "url_news"
)

// HasNewsURL reports whether the news index page has been discovered.
func (s *Stock) HasNewsURL() bool {
	return s.URLNews != nil && *s.URLNews != ""
}

// MergeFrom applies the bulk-create enrichment policy to an existing stock:
// blank secondary fields are filled from the incoming record, populated
// fields are never overwritten. Reports whether anything changed.
func (s *Stock) MergeFrom(in *Stock) bool {
	changed := false
	if in.Company != nil && strings.TrimSpace(*in.Company) != "" {
		if s.Company == nil || strings.TrimSpace(*s.Company) == "" {
			s.Company = in.Company
			changed = true
		}
	}
	return changed
}
