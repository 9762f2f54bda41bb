
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abit-rating/internal/catalog"
	"abit-rating/internal/models"
	"abit-rating/internal/service"
	"abit-rating/pkg/logger"
)

const page = `<table class="table"><tbody>
<tr><td>1</td><td></td><td></td><td></td><td></td><td></td><td></td><td>300</td><td>БВИ</td><td></td><td>да</td></tr>
<tr><td>2</td><td></td><td></td><td></td><td></td><td></td><td></td><td>290</td><td></td><td></td><td>нет</td></tr>
<tr><td>3</td><td></td><td></td><td></td><td></td><td></td><td></td><td>280</td><td>ЦП</td><td></td><td>нет</td></tr>
</tbody></table>`

type fetcher struct {
	body string
	err  error
}

func (f fetcher) Fetch(context.Context, string) (models.Document, error) {
	if f.err != nil {
		return models.Document{}, f.err
	}
	return models.Document{Body: []byte(f.body), ContentType: "text/html"}, nil
}

func newTestServer(t *testing.T, f fetcher) *Server {
	t.Helper()
	cat, err := catalog.Load("")
	require.NoError(t, err)
	log := logger.NewWithOptions(io.Discard, "info", "text")
	return NewServer(service.New(cat, f, log), log, 5*time.Second)
}

func get(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestHealth(t *testing.T) {
	rec, body := get(t, newTestServer(t, fetcher{}), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestUniversities(t *testing.T) {
	rec, body := get(t, newTestServer(t, fetcher{}), "/api/universities/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["universities"], 2)
}

func TestRatingWithLimit(t *testing.T) {
	rec, body := get(t, newTestServer(t, fetcher{body: page}), "/api/universities/1/faculties/1/rating?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 75, body["budgetPlaces"])
	records := body["records"].([]any)
	require.Len(t, records, 2)
	assert.EqualValues(t, 300, records[0].(map[string]any)["exam_result"])
}

func TestAnalysis(t *testing.T) {
	rec, body := get(t, newTestServer(t, fetcher{body: page}), "/api/universities/1/faculties/1/analysis?position=3")
	require.Equal(t, http.StatusOK, rec.Code)
	analysis := body["analysis"].(map[string]any)
	above := analysis["above"].(map[string]any)
	assert.EqualValues(t, 1, above["withAgreement"])
	assert.EqualValues(t, 1, above["withoutAgreement"])
	total := analysis["total"].(map[string]any)
	assert.EqualValues(t, 3, total["records"])
	assert.EqualValues(t, 1, total["otherTrack"])
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t, fetcher{body: page})

	rec, _ := get(t, s, "/api/universities/1/faculties/1/analysis?position=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = get(t, s, "/api/universities/1/faculties/1/rating?limit=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = get(t, s, "/api/universities/x/faculties/1/rating")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = get(t, s, "/api/universities/7/faculties/1/rating")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpstreamFailures(t *testing.T) {
	rec, _ := get(t, newTestServer(t, fetcher{err: errors.New("timeout")}), "/api/universities/1/faculties/1/rating")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	bad := `<table class="table"><tbody><tr><td>первый</td></tr></tbody></table>`
	rec, body := get(t, newTestServer(t, fetcher{body: bad}), "/api/universities/1/faculties/1/rating")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body["error"], "row 1")
}
