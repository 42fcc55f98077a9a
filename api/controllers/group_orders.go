package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/bulkmandi/bulkmandi-backend/api/middleware"
	"github.com/bulkmandi/bulkmandi-backend/api/responses"
	"github.com/bulkmandi/bulkmandi-backend/api/validators"
	"github.com/bulkmandi/bulkmandi-backend/internal/authz"
	"github.com/bulkmandi/bulkmandi-backend/internal/grouporders"
	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
	pkgerrors "github.com/bulkmandi/bulkmandi-backend/pkg/errors"
	"github.com/bulkmandi/bulkmandi-backend/pkg/logger"
)

// GroupOrderList serves the public order board with status/material filters.
func GroupOrderList(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filters grouporders.ListFilters
		if raw := validators.ParseQueryString(r, "status"); raw != "" {
			status, err := enums.ParseGroupOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
				return
			}
			filters.Status = &status
		}
		if raw := validators.ParseQueryString(r, "materialId"); raw != "" {
			materialID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid materialId"))
				return
			}
			filters.MaterialID = &materialID
		}
		filters.Location = validators.ParseQueryString(r, "location")

		result, err := svc.List(r.Context(), filters, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GroupOrderDetail serves a single order with its participants.
func GroupOrderDetail(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// GroupOrderCreate opens a new pooled order organized by the caller.
func GroupOrderCreate(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := middleware.ActorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body grouporders.CreateGroupOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), actor, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// GroupOrderJoin adds the caller's quantity to an open order.
func GroupOrderJoin(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withOrder(logg, w, r, func(actor authz.Actor, orderID uuid.UUID) (*grouporders.GroupOrderDTO, error) {
			var body grouporders.JoinRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				return nil, err
			}
			return svc.Join(r.Context(), actor, orderID, body)
		})
	}
}

// GroupOrderConfirm lets the material's supplier close the pooled order.
func GroupOrderConfirm(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withOrder(logg, w, r, func(actor authz.Actor, orderID uuid.UUID) (*grouporders.GroupOrderDTO, error) {
			var body grouporders.ConfirmRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				return nil, err
			}
			return svc.Confirm(r.Context(), actor, orderID, body)
		})
	}
}

// GroupOrderCancel lets the organizer withdraw an open order.
func GroupOrderCancel(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withOrder(logg, w, r, func(actor authz.Actor, orderID uuid.UUID) (*grouporders.GroupOrderDTO, error) {
			return svc.Cancel(r.Context(), actor, orderID)
		})
	}
}

// GroupOrderFulfill lets the confirming supplier mark delivery under way.
func GroupOrderFulfill(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withOrder(logg, w, r, func(actor authz.Actor, orderID uuid.UUID) (*grouporders.GroupOrderDTO, error) {
			return svc.MarkFulfilled(r.Context(), actor, orderID)
		})
	}
}

// GroupOrderComplete lets the organizer close out a fulfilled order.
func GroupOrderComplete(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withOrder(logg, w, r, func(actor authz.Actor, orderID uuid.UUID) (*grouporders.GroupOrderDTO, error) {
			return svc.Complete(r.Context(), actor, orderID)
		})
	}
}

// GroupOrderUpdate merges descriptive fields on the organizer's order.
func GroupOrderUpdate(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withOrder(logg, w, r, func(actor authz.Actor, orderID uuid.UUID) (*grouporders.GroupOrderDTO, error) {
			var body grouporders.UpdateGroupOrderRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				return nil, err
			}
			return svc.Update(r.Context(), actor, orderID, body)
		})
	}
}

// GroupOrderListOrganized returns the orders the caller opened.
func GroupOrderListOrganized(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := middleware.ActorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListOrganized(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"groupOrders": rows})
	}
}

// GroupOrderListJoined returns the orders the caller participates in.
func GroupOrderListJoined(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := middleware.ActorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListJoined(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"groupOrders": rows})
	}
}

func withOrder(
	logg *logger.Logger,
	w http.ResponseWriter,
	r *http.Request,
	fn func(actor authz.Actor, orderID uuid.UUID) (*grouporders.GroupOrderDTO, error),
) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	orderID, err := pathUUID(r, "orderId")
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	order, err := fn(actor, orderID)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, order)
}
