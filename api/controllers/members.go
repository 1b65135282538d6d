package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/oakhollow/orderdesk-backend/api/responses"
	"github.com/oakhollow/orderdesk-backend/api/validators"
	membersvc "github.com/oakhollow/orderdesk-backend/internal/memberships"
	profilesvc "github.com/oakhollow/orderdesk-backend/internal/profiles"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
	"github.com/oakhollow/orderdesk-backend/pkg/logger"
)

func memberParams(r *http.Request) (storeID, userID uuid.UUID, err error) {
	storeID, err = storeIDParam(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	userID, err = validators.ParsePathUUID(chi.URLParam(r, "userID"), "userID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return storeID, userID, nil
}

// MemberList returns the store roster with contact details attached.
func MemberList(svc membersvc.Service, resolver identityResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		storeID, err := storeIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := canManageUsers(r, resolver, storeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		members, err := svc.ListMembers(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, members)
	}
}

// MemberInvite adds a user to the roster, creating the account when needed.
func MemberInvite(svc membersvc.Service, resolver identityResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		storeID, err := storeIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := canManageUsers(r, resolver, storeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload membersvc.InviteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseMemberRole(payload.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid member role"))
			return
		}

		result, err := svc.Invite(r.Context(), membersvc.InviteInput{
			StoreID: storeID,
			Email:   payload.Email,
			Role:    role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// MemberChangeRole moves a member between roster roles.
func MemberChangeRole(svc membersvc.Service, resolver identityResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		storeID, userID, err := memberParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := canManageUsers(r, resolver, storeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload membersvc.RoleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseMemberRole(payload.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid member role"))
			return
		}

		membership, err := svc.ChangeRole(r.Context(), storeID, userID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, membership)
	}
}

type memberStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// MemberSetStatus enables or disables a membership without removing it.
func MemberSetStatus(svc membersvc.Service, resolver identityResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		storeID, userID, err := memberParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := canManageUsers(r, resolver, storeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload memberStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseMembershipStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid membership status"))
			return
		}

		membership, err := svc.SetStatus(r.Context(), storeID, userID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, membership)
	}
}

// MemberRemove drops a user from the store roster.
func MemberRemove(svc membersvc.Service, resolver identityResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		storeID, userID, err := memberParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := canManageUsers(r, resolver, storeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), storeID, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// MemberRename lets a roster manager fix a member's display name.
func MemberRename(profilesSvc profilesvc.Service, resolver identityResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if profilesSvc == nil || resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		storeID, userID, err := memberParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := canManageUsers(r, resolver, storeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload profilesvc.RenameRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := profilesSvc.Rename(r.Context(), userID, payload.UserName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}
