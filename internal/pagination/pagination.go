package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PageSize is the number of posts per page window.
const PageSize = 10

type Page struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// PageFromQuery reads the 1-based "page" query parameter. Absent or
// unparseable values degrade to page 1.
func PageFromQuery(c *gin.Context) int {
	raw := c.Query("page")
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate counts the query, clamps page into the valid range and fetches a
// single window of at most PageSize rows into dest. Out-of-range pages clamp
// to the nearest valid page rather than erroring.
func Paginate(query *gorm.DB, page int, dest interface{}) (Page, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return Page{}, err
	}

	p := Page{
		Size:       PageSize,
		TotalItems: total,
		TotalPages: int((total + PageSize - 1) / PageSize),
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	p.Number = Clamp(page, p.TotalPages)
	p.HasPrev = p.Number > 1
	p.HasNext = p.Number < p.TotalPages

	offset := (p.Number - 1) * PageSize
	if err := query.Offset(offset).Limit(PageSize).Find(dest).Error; err != nil {
		return Page{}, err
	}
	return p, nil
}

// Clamp bounds a requested 1-based page into [1, totalPages].
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
