// Package catalog serves the movie listing shown next to the room editor.
// The catalog is held in memory and queried with filters, sorting and
// pagination.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the format of release dates and of the dateFrom/dateTo
// filters.
const DateLayout = "2006-01-02"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Movie statuses.
const (
	StatusNowShowing = "now_showing"
	StatusComingSoon = "coming_soon"
	StatusEnded      = "ended"
)

// ErrInvalidQuery wraps every rejected listing parameter.
var ErrInvalidQuery = errors.New("invalid movie query")

// Movie is one catalog entry.
type Movie struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	Language    string  `json:"language"`
	ReleaseDate string  `json:"releaseDate"`
	Duration    int     `json:"duration"` // minutes
	Rating      float64 `json:"rating"`
	Status      string  `json:"status"`
}

// Query holds the listing parameters.  Zero values mean "no filter";
// Page and PageSize are normalized by List.
type Query struct {
	Page          int
	PageSize      int
	SortField     string
	SortDirection string
	Search        string
	Genre         string
	Language      string
	DateFrom      string
	DateTo        string
	Status        string
}

// Page is one page of results.
type Page struct {
	Movies     []Movie `json:"movies"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

// less functions per sortable field.
var sorters = map[string]func(a, b Movie) bool{
	"id":          func(a, b Movie) bool { return a.ID < b.ID },
	"title":       func(a, b Movie) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) },
	"genre":       func(a, b Movie) bool { return a.Genre < b.Genre },
	"language":    func(a, b Movie) bool { return a.Language < b.Language },
	"releaseDate": func(a, b Movie) bool { return a.ReleaseDate < b.ReleaseDate },
	"duration":    func(a, b Movie) bool { return a.Duration < b.Duration },
	"rating":      func(a, b Movie) bool { return a.Rating < b.Rating },
	"status":      func(a, b Movie) bool { return a.Status < b.Status },
}

// Catalog is a read-only movie list.  It is safe for concurrent use.
type Catalog struct {
	movies []Movie
}

// New returns a catalog over a copy of movies.
func New(movies []Movie) *Catalog {
	out := make([]Movie, len(movies))
	copy(out, movies)
	return &Catalog{movies: out}
}

// List filters, sorts and paginates the catalog.  A page past the end
// yields an empty Movies slice with the correct totals.
func (c *Catalog) List(q Query) (Page, error) {
	if err := q.normalize(); err != nil {
		return Page{}, err
	}
	from, to, err := q.dateRange()
	if err != nil {
		return Page{}, err
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	matched := make([]Movie, 0, len(c.movies))
	for _, m := range c.movies {
		if search != "" && !strings.Contains(strings.ToLower(m.Title), search) {
			continue
		}
		if q.Genre != "" && !strings.EqualFold(m.Genre, q.Genre) {
			continue
		}
		if q.Language != "" && !strings.EqualFold(m.Language, q.Language) {
			continue
		}
		if q.Status != "" && m.Status != q.Status {
			continue
		}
		if from != "" && m.ReleaseDate < from {
			continue
		}
		if to != "" && m.ReleaseDate > to {
			continue
		}
		matched = append(matched, m)
	}

	less := sorters[q.SortField]
	desc := q.SortDirection == "desc"
	sort.SliceStable(matched, func(i, j int) bool {
		if desc {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})

	total := len(matched)
	start := total
	if q.Page-1 <= total/q.PageSize {
		start = (q.Page - 1) * q.PageSize
	}
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}
	return Page{
		Movies:     matched[start:end],
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: (total + q.PageSize - 1) / q.PageSize,
	}, nil
}

func (q *Query) normalize() error {
	if q.Page < 1 {
		q.Page = 1
	}
	switch {
	case q.PageSize < 1:
		q.PageSize = DefaultPageSize
	case q.PageSize > MaxPageSize:
		q.PageSize = MaxPageSize
	}
	if q.SortField == "" {
		q.SortField = "id"
	}
	if _, ok := sorters[q.SortField]; !ok {
		return fmt.Errorf("%w: unknown sortField %q", ErrInvalidQuery, q.SortField)
	}
	q.SortDirection = strings.ToLower(q.SortDirection)
	switch q.SortDirection {
	case "":
		q.SortDirection = "asc"
	case "asc", "desc":
	default:
		return fmt.Errorf("%w: sortDirection must be asc or desc", ErrInvalidQuery)
	}
	switch q.Status {
	case "", StatusNowShowing, StatusComingSoon, StatusEnded:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidQuery, q.Status)
	}
	return nil
}

// dateRange validates DateFrom and DateTo.  Dates in DateLayout compare
// correctly as strings.
func (q Query) dateRange() (from, to string, err error) {
	for _, d := range []struct {
		name, v string
		out     *string
	}{{"dateFrom", q.DateFrom, &from}, {"dateTo", q.DateTo, &to}} {
		if d.v == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, d.v); err != nil {
			return "", "", fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalidQuery, d.name)
		}
		*d.out = d.v
	}
	if from != "" && to != "" && from > to {
		return "", "", fmt.Errorf("%w: dateFrom is after dateTo", ErrInvalidQuery)
	}
	return from, to, nil
}
