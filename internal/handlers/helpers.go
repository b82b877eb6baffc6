package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/auth"
	"github.com/coachdesk/api/internal/models"
	pkghttp "github.com/coachdesk/api/pkg/http"
)

// requireActor pulls the authenticated actor from the request context. A
// missing actor means the route was mounted outside the auth middleware.
func requireActor(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		pkghttp.WriteUnauthorized(w, "unauthorized")
	}
	return actor, ok
}

// parseListRequest reads the caller's requested scope filters verbatim from
// the query string. Narrowing happens in the scope resolver, never here.
func parseListRequest(r *http.Request) access.ListRequest {
	q := r.URL.Query()

	req := access.ListRequest{
		CreatedBy:  q.Get("createdBy"),
		SubjectID:  q.Get("userId"),
		Visibility: models.Visibility(q.Get("visibility")),
	}

	if v := q.Get("createdByIn"); v != "" {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.CreatedByIn = append(req.CreatedByIn, id)
			}
		}
	}

	return req
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
