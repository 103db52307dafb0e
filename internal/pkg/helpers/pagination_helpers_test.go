package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paramsFor(t *testing.T, rawQuery string) (int, int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/events?"+rawQuery, nil)
	return ParseOffsetParams(c)
}

func TestParseOffsetParams(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantFrom int
		wantSize int
	}{
		{"defaults", "", 0, DefaultPageSize},
		{"explicit values", "from=20&size=50", 20, 50},
		{"negative from falls back", "from=-5&size=10", 0, 10},
		{"zero size falls back", "from=0&size=0", 0, DefaultPageSize},
		{"oversized page clamps", "from=0&size=500", 0, DefaultPageSize},
		{"garbage falls back", "from=abc&size=xyz", 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, size := paramsFor(t, tt.query)
			if from != tt.wantFrom || size != tt.wantSize {
				t.Errorf("got (%d, %d), want (%d, %d)", from, size, tt.wantFrom, tt.wantSize)
			}
		})
	}
}

func TestClampOffsetLimit(t *testing.T) {
	if offset, limit := ClampOffsetLimit(30, 25); offset != 30 || limit != 25 {
		t.Errorf("got (%d, %d), want (30, 25)", offset, limit)
	}
	if offset, limit := ClampOffsetLimit(-1, 0); offset != 0 || limit != DefaultPageSize {
		t.Errorf("got (%d, %d), want defaults", offset, limit)
	}
	if _, limit := ClampOffsetLimit(0, MaxPageSize+1); limit != DefaultPageSize {
		t.Errorf("oversize limit = %d, want %d", limit, DefaultPageSize)
	}
}
