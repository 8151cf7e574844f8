/*
Package handler provides HTTP handler functions for administering the hint type catalog.

The calls are forwarded to the backend with the login of the tab; the backend decides
whether the player may change the catalog.
*/
package handler

import (
	"context"
	"net/http"
	"strings"

	"thinkle/internal/app/api"
	"thinkle/internal/app/game"
	"thinkle/internal/app/user"
	"thinkle/internal/pkg/errs"
	"thinkle/internal/pkg/logx"
	"thinkle/internal/pkg/req"
	"thinkle/internal/pkg/resp"
)

// HintTypeInput names a catalog entry.
type HintTypeInput struct {
	Type string `json:"type"`
}

// HandleCreateHintType adds an entry to the catalog.
func HandleCreateHintType(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input game.HintType
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Type = strings.TrimSpace(input.Type)
		input.DisplayName = strings.TrimSpace(input.DisplayName)
		if input.Type == "" || input.DisplayName == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		created, err := deps.API.CreateHintType(r.Context(), GetTab(r).Auth(), input)
		if err != nil {
			respondFailure(w, r, err)
			return
		}

		logx.Info("Hint type created", "hint_type", created.Type)
		resp.RespondSuccess(w, r, created)
	}
}

// HandleUpdateHintType renames an entry of the catalog.
func HandleUpdateHintType(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input api.UpdateHintTypeRequest
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.CurrentType = strings.TrimSpace(input.CurrentType)
		if input.CurrentType == "" || (strings.TrimSpace(input.UpdatedType) == "" && strings.TrimSpace(input.UpdatedDisplayName) == "") {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		updated, err := deps.API.UpdateHintType(r.Context(), GetTab(r).Auth(), input)
		if err != nil {
			respondFailure(w, r, err)
			return
		}

		logx.Info("Hint type updated", "old", updated.OldHintType.Type, "new", updated.UpdatedHintType.Type)
		resp.RespondSuccess(w, r, updated)
	}
}

// HandleDeleteHintType deactivates an entry of the catalog.
func HandleDeleteHintType(deps *AppDeps) http.HandlerFunc {
	return handleHintTypeRef(deps.API.DeleteHintType, "Hint type deleted")
}

// HandleReactivateHintType restores a deactivated entry of the catalog.
func HandleReactivateHintType(deps *AppDeps) http.HandlerFunc {
	return handleHintTypeRef(deps.API.ReactivateHintType, "Hint type re-activated")
}

type hintTypeCall func(ctx context.Context, auth *user.Session, hintType string) (*game.HintType, error)

func handleHintTypeRef(call hintTypeCall, logMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input HintTypeInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Type = strings.TrimSpace(input.Type)
		if input.Type == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		ht, err := call(r.Context(), GetTab(r).Auth(), input.Type)
		if err != nil {
			respondFailure(w, r, err)
			return
		}

		logx.Info(logMsg, "hint_type", input.Type)
		resp.RespondSuccess(w, r, ht)
	}
}
