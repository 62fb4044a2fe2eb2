package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"itasset/src/ids"
	"itasset/src/schemas"
	"itasset/src/utils"

	"github.com/go-chi/jwtauth"
)

const tokenTTL = 24 * time.Hour

// PostToken issues a signed JWT for a user id. An empty request body mints a
// fresh user id; a supplied one must validate.
func (h *Handler) PostToken(w http.ResponseWriter, r *http.Request) {
	req := new(schemas.TokenRequest)
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			h.HandleErrors(w, utils.BadRequest(err.Error()))
			return
		}
	}

	userID := req.UserID
	if userID == "" {
		var err error
		userID, err = ids.Generate(ids.User, "")
		if err != nil {
			h.HandleErrors(w, err)
			return
		}
	} else if !ids.Validate(userID, ids.User) {
		h.HandleErrors(w, &ids.MalformedIDError{ID: userID, Kind: ids.User})
		return
	}

	claims := map[string]interface{}{"uid": userID}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, tokenTTL)

	_, tokenString, err := h.TokenAuth.Encode(claims)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, &schemas.TokenResponse{Token: tokenString, UserID: userID}, http.StatusOK)
}
