// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// PageInfo is the envelope returned alongside every paginated listing.
type PageInfo struct {
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
	CurrentPage     int   `json:"current_page"`
	TotalPages      int   `json:"total_pages"`
	TotalCount      int64 `json:"total_count"`
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil {
		page = DefaultPage
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil {
		pageSize = DefaultPageSize
	}
	return PaginationParams{Page: page, PageSize: pageSize}
}

// Validate rejects non-positive page or page size. Over-large pages are not
// an error; they clamp to the last page during pagination.
func (p PaginationParams) Validate() error {
	if p.Page <= 0 {
		return apperrors.InvalidInput("page must be a positive integer")
	}
	if p.PageSize <= 0 {
		return apperrors.InvalidInput("page_size must be a positive integer")
	}
	if p.PageSize > MaxPageSize {
		return apperrors.InvalidInput("page_size must not exceed %d", MaxPageSize)
	}
	return nil
}

// NewPageInfo computes the envelope for a validated request against a total
// count. The requested page clamps to the last page when it runs past the
// end; an empty collection reports zero pages but stays on page 1.
func NewPageInfo(totalCount int64, page, pageSize int) PageInfo {
	if totalCount == 0 {
		return PageInfo{CurrentPage: 1}
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(pageSize)))
	if page > totalPages {
		page = totalPages
	}

	return PageInfo{
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalCount:      totalCount,
	}
}

// PageBounds returns the half-open window [offset, offset+limit) for the page
// actually served, after clamping.
func PageBounds(totalCount int64, page, pageSize int) (offset, limit int) {
	info := NewPageInfo(totalCount, page, pageSize)
	if info.TotalCount == 0 {
		return 0, 0
	}
	return (info.CurrentPage - 1) * pageSize, pageSize
}

// Paginate counts query, applies the clamped window, and scans the page into
// dest. The caller must have established a deterministic order already;
// Paginate never re-sorts. Two calls against identical state return identical
// results.
func Paginate(query *gorm.DB, params PaginationParams, dest interface{}) (PageInfo, error) {
	if err := params.Validate(); err != nil {
		return PageInfo{}, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return PageInfo{}, apperrors.Internal(err, "failed to count results")
	}

	info := NewPageInfo(total, params.Page, params.PageSize)
	if total == 0 {
		return info, nil
	}

	offset, limit := PageBounds(total, params.Page, params.PageSize)
	if err := query.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return PageInfo{}, apperrors.Internal(err, "failed to fetch page")
	}

	return info, nil
}
