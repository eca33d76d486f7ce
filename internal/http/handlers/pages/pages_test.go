package pages

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/handlertest"
)

func TestStatic(t *testing.T) {
	m := handlertest.Manager()
	v := handlertest.View(t)

	for path, page := range Static {
		t.Run(path, func(t *testing.T) {
			req := handlertest.Request(t, m, http.MethodGet, path, nil, "")
			rec := handlertest.Serve(m, http.MethodGet, path, New(v, page), req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), page.Title)
			assert.Contains(t, rec.Body.String(), page.Body)
		})
	}
}

func TestLanding(t *testing.T) {
	m := handlertest.Manager()
	req := handlertest.Request(t, m, http.MethodGet, "/", nil, "")
	rec := handlertest.Serve(m, http.MethodGet, "/", NewLanding(handlertest.View(t)), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/login"`)
}
