package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
	// MaxPage keeps (page-1)*per_page far from int overflow.
	MaxPage = 1_000_000
)

// Page is a parsed ?page=&per_page= pair. Invalid values fall back to defaults.
type Page struct {
	Page    int
	PerPage int
}

func FromQuery(c *gin.Context) Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage)))

	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}
	return Page{Page: page, PerPage: perPage}
}

func (p Page) Offset() int {
	page := min(max(p.Page, 1), MaxPage)
	perPage := min(max(p.PerPage, 0), MaxPerPage)
	return (page - 1) * perPage
}

func (p Page) TotalPages(total int64) int {
	if p.PerPage <= 0 {
		return 0
	}
	pages := int(total) / p.PerPage
	if int(total)%p.PerPage > 0 {
		pages++
	}
	return pages
}
