package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/oakhollow/orderdesk-backend/api/middleware"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
)

// actorID extracts the authenticated user id seeded by the auth middleware.
func actorID(r *http.Request) (uuid.UUID, error) {
	id := middleware.UserUUIDFromContext(r.Context())
	if id == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return id, nil
}

func actorIsAdmin(r *http.Request) bool {
	return middleware.RoleFromContext(r.Context()) == string(enums.SystemRoleAdmin)
}
