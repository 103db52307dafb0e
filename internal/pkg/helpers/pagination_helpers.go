package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultFrom     = 0 // zero-based element offset
)

// ParseOffsetParams extracts and validates the from/size pagination parameters
// from the request. from is a zero-based element offset, size a positive page size.
func ParseOffsetParams(c *gin.Context) (from, size int) {
	fromStr := c.DefaultQuery("from", "0")
	from, err := strconv.Atoi(fromStr)
	if err != nil || from < 0 {
		from = DefaultFrom
	}

	sizeStr := c.DefaultQuery("size", "10")
	size, err = strconv.Atoi(sizeStr)
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return from, size
}

// ClampOffsetLimit normalizes a from/size pair for use as SQL OFFSET/LIMIT.
func ClampOffsetLimit(from, size int) (offset uint64, limit uint64) {
	if from < 0 {
		from = DefaultFrom
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return uint64(from), uint64(size)
}
