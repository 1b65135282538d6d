package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/oakhollow/orderdesk-backend/api/responses"
	"github.com/oakhollow/orderdesk-backend/api/validators"
	authsvc "github.com/oakhollow/orderdesk-backend/internal/auth"
	storesvc "github.com/oakhollow/orderdesk-backend/internal/stores"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
	"github.com/oakhollow/orderdesk-backend/pkg/logger"
)

// identityResolver loads the caller's resolved permission set.
type identityResolver interface {
	Me(ctx context.Context, userID uuid.UUID) (*authsvc.Snapshot, error)
}

func storeIDParam(r *http.Request) (uuid.UUID, error) {
	return validators.ParsePathUUID(chi.URLParam(r, "storeID"), "storeID")
}

// canEditStore resolves the caller's identity and checks edit rights on the
// given store.
func canEditStore(r *http.Request, resolver identityResolver, storeID uuid.UUID) error {
	userID, err := actorID(r)
	if err != nil {
		return err
	}
	snapshot, err := resolver.Me(r.Context(), userID)
	if err != nil {
		return err
	}
	if !snapshot.Resolution.CanEditStore(storeID) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "store edit rights required")
	}
	return nil
}

func canManageUsers(r *http.Request, resolver identityResolver, storeID uuid.UUID) error {
	userID, err := actorID(r)
	if err != nil {
		return err
	}
	snapshot, err := resolver.Me(r.Context(), userID)
	if err != nil {
		return err
	}
	if !snapshot.Resolution.CanManageUsers(storeID) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "roster management rights required")
	}
	return nil
}

// StoreTree returns every store arranged as parents with children.
func StoreTree(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		tree, err := svc.Tree(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tree)
	}
}

// StoreGet returns one store.
func StoreGet(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		storeID, err := storeIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Get(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

// StoreCreate adds a store, optionally nested under a parent.
func StoreCreate(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		var payload storesvc.CreateStoreRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Create(r.Context(), storesvc.CreateStoreInput{
			Name:          payload.Name,
			ParentStoreID: payload.ParentStoreID,
			Address:       payload.Address,
			Phone:         payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}

// StoreUpdate edits a store's details; callers need edit rights on it.
func StoreUpdate(svc storesvc.Service, resolver identityResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		storeID, err := storeIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := canEditStore(r, resolver, storeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload storesvc.UpdateStoreRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := storesvc.UpdateStoreInput{
			Name:    payload.Name,
			Address: payload.Address,
			Phone:   payload.Phone,
		}
		if payload.Status != nil {
			status, parseErr := enums.ParseStoreStatus(*payload.Status)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid store status"))
				return
			}
			input.Status = &status
		}

		store, err := svc.Update(r.Context(), storeID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

// StoreDelete removes a store with no children.
func StoreDelete(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		storeID, err := storeIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), storeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
