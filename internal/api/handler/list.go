package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Rrens/shoplist/internal/api/middleware"
	"github.com/Rrens/shoplist/internal/api/response"
	"github.com/Rrens/shoplist/internal/domain"
	"github.com/Rrens/shoplist/internal/service"
	"github.com/Rrens/shoplist/internal/textutil"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// ListHandler exposes the authenticated list over HTTP. Every route operates
// on the list resolved from the bearer token; ids from other lists hit
// nothing.
type ListHandler struct {
	items       domain.ItemRepository
	listService *service.ListService
}

// NewListHandler creates a new list handler
func NewListHandler(items domain.ItemRepository, listService *service.ListService) *ListHandler {
	return &ListHandler{items: items, listService: listService}
}

type addRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

type itemRequest struct {
	ID int64 `json:"id" validate:"required"`
}

// Get handles listing the items
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	listID, ok := middleware.GetListID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	items, err := h.items.List(r.Context(), listID)
	if err != nil {
		response.InternalError(w, "failed to load items")
		return
	}
	if items == nil {
		items = []domain.Item{}
	}

	response.OK(w, map[string]any{"items": items})
}

// Add handles appending one item
func (h *ListHandler) Add(w http.ResponseWriter, r *http.Request) {
	listID, ok := middleware.GetListID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input addRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	text := textutil.CleanLine(input.Text)
	if text == "" {
		response.BadRequest(w, "text is empty after cleanup")
		return
	}

	item, err := h.items.Add(r.Context(), listID, textutil.Capitalize(text))
	if err != nil {
		response.InternalError(w, "failed to add item")
		return
	}

	h.refresh(r, listID)
	response.Created(w, item)
}

// Toggle handles flipping an item's done state
func (h *ListHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.mutateByID(w, r, h.items.Toggle)
}

// Delete handles removing one item
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.mutateByID(w, r, h.items.Delete)
}

// Archive handles finalizing the whole list
func (h *ListHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.runListOp(w, r, h.listService.Archive, "archived")
}

// Done handles archiving only the checked items
func (h *ListHandler) Done(w http.ResponseWriter, r *http.Request) {
	h.runListOp(w, r, h.listService.ArchiveDone, "checked items archived")
}

// Nuke handles deleting the list outright
func (h *ListHandler) Nuke(w http.ResponseWriter, r *http.Request) {
	h.runListOp(w, r, h.listService.Nuke, "nuked")
}

type mutateFunc func(ctx context.Context, listID, id int64) (int64, error)

func (h *ListHandler) mutateByID(w http.ResponseWriter, r *http.Request, mutate mutateFunc) {
	listID, ok := middleware.GetListID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input itemRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	affected, err := mutate(r.Context(), listID, input.ID)
	if err != nil {
		response.InternalError(w, "failed to update item")
		return
	}
	if affected == 0 {
		response.NotFound(w, "item not found")
		return
	}

	h.refresh(r, listID)
	response.OK(w, map[string]any{"affected": affected})
}

func (h *ListHandler) runListOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, listID, chatID int64) error, message string) {
	listID, ok := middleware.GetListID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := op(r.Context(), listID, listID); err != nil {
		response.InternalError(w, "operation failed")
		return
	}

	response.OK(w, map[string]string{"status": message})
}

// refresh re-renders the chat message after an API mutation. Chat delivery
// problems never fail the API call.
func (h *ListHandler) refresh(r *http.Request, listID int64) {
	if err := h.listService.Refresh(r.Context(), listID); err != nil {
		log.Warn().Err(err).Int64("list_id", listID).Msg("failed to refresh list message")
	}
}
