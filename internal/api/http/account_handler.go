package http

import (
	"net/http"
	"strconv"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/service"
)

type AccountHandler struct {
	account service.AccountService
}

func NewAccountHandler(account service.AccountService) *AccountHandler {
	return &AccountHandler{account: account}
}

func (h *AccountHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	if userID == nil {
		writeError(w, domain.ErrUnauthenticated)
		return
	}

	limit, offset := pageParams(r)
	notes, total, err := h.account.Notifications(r.Context(), *userID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if notes == nil {
		notes = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": notes,
		"total_count":   total,
	})
}

func (h *AccountHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	if userID == nil {
		writeError(w, domain.ErrUnauthenticated)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.account.MarkNotificationRead(r.Context(), id, *userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AccountHandler) Activity(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	if userID == nil {
		writeError(w, domain.ErrUnauthenticated)
		return
	}

	limit, offset := pageParams(r)
	entries, total, err := h.account.Activity(r.Context(), *userID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.ActivityLogEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"activity":    entries,
		"total_count": total,
	})
}

func pageParams(r *http.Request) (int32, int32) {
	parse := func(name string) int32 {
		v, _ := strconv.ParseInt(r.URL.Query().Get(name), 10, 32)
		return int32(v)
	}
	return parse("limit"), parse("offset")
}
