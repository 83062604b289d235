package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestParsePaginationDefaults(t *testing.T) {
	c := testContext(t, "/v1/events")

	page, perPage := ParsePagination(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, perPage)
}

func TestParsePaginationClamps(t *testing.T) {
	c := testContext(t, "/v1/events?page=-3&perPage=5000")

	page, perPage := ParsePagination(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, perPage)

	c = testContext(t, "/v1/events?page=abc&perPage=xyz")
	page, perPage = ParsePagination(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, perPage)
}

func TestParsePaginationExplicit(t *testing.T) {
	c := testContext(t, "/v1/events?page=3&perPage=25")

	page, perPage := ParsePagination(c)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, perPage)
}

func TestParseSort(t *testing.T) {
	allowed := map[string]string{"created_at": "created_at", "amount": "amount"}

	c := testContext(t, "/v1/admin/donations?sort=amount&direction=asc")
	assert.Equal(t, "amount ASC", ParseSort(c, allowed, "created_at"))

	c = testContext(t, "/v1/admin/donations?sort=amount")
	assert.Equal(t, "amount DESC", ParseSort(c, allowed, "created_at"))

	// unknown sort columns fall back, never reach the query verbatim
	c = testContext(t, "/v1/admin/donations?sort=password;DROP")
	assert.Equal(t, "created_at DESC", ParseSort(c, allowed, "created_at"))
}
