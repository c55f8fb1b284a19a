package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminEndpointsRejectUnauthenticated(t *testing.T) {
	h := NewAdminHandler(nil, nil)

	endpoints := []struct {
		name    string
		handler http.HandlerFunc
		method  string
		path    string
	}{
		{"list users", h.ListUsers, "GET", "/api/v1/admin/users"},
		{"reset weekly points", h.ResetWeeklyPoints, "POST", "/api/v1/admin/reset-weekly-points"},
	}

	for _, e := range endpoints {
		t.Run(e.name, func(t *testing.T) {
			r := httptest.NewRequest(e.method, e.path, nil)
			w := httptest.NewRecorder()

			e.handler(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}
