package pagination

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	PageKey      = "page"
	LimitKey     = "limit"
	SkipKey      = "skip"
	TakeKey      = "take"
	DefaultPage  = 1
	DefaultLimit = 20
)

// Context represents request pagination
type Context struct {
	Page  int
	Limit int
	Take  int
	Skip  int
}

// Page represents paginated findMany result
type Page struct {
	Count      int         `json:"count"`
	Rows       interface{} `json:"rows"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"totalPages"`
	HasPrev    bool        `json:"hasPrev"`
	HasNext    bool        `json:"hasNext"`
}

// New creates pagination context, non positive page or limit falls back to defaults
func New(page, limit int) *Context {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Context{Page: page, Limit: limit, Take: limit, Skip: (page - 1) * limit}
}

// FromQuery creates pagination context from page and limit query parameters
func FromQuery(values url.Values) *Context {
	return New(asInt(values.Get(PageKey)), asInt(values.Get(LimitKey)))
}

// Overrides returns template overrides
func (c *Context) Overrides() map[string]interface{} {
	return map[string]interface{}{
		SkipKey: c.Skip,
		TakeKey: c.Take,
	}
}

// TotalPages returns number of pages for supplied count
func (c *Context) TotalPages(count int) int {
	if count <= 0 || c.Take <= 0 {
		return 0
	}
	return int(math.Ceil(float64(count) / float64(c.Take)))
}

// Result shapes findMany result
func (c *Context) Result(count int, rows interface{}) *Page {
	totalPages := c.TotalPages(count)
	return &Page{
		Count:      count,
		Rows:       rows,
		Page:       c.Page,
		Limit:      c.Limit,
		TotalPages: totalPages,
		HasPrev:    c.Page > 1,
		HasNext:    c.Page < totalPages,
	}
}

func asInt(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	if value, err := strconv.Atoi(text); err == nil {
		return value
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return int(value)
}
