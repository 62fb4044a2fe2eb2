package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"itasset/src/config"
	"itasset/src/ids"
	"itasset/src/repositories"
	"itasset/src/storage"
	"itasset/src/utils"
	"itasset/src/validators"

	"github.com/go-chi/jwtauth"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type Handler struct {
	Containers repositories.ContainerRepository
	AssetTypes repositories.AssetTypeRepository
	SubTypes   repositories.AssetSubTypeRepository
	Assets     repositories.AssetRepository
	TokenAuth  *jwtauth.JWTAuth
	Logger     *logrus.Logger
}

func NewHandler(cfg *config.Config, logger *logrus.Logger) (*Handler, error) {
	store := storage.NewStore(afero.NewOsFs())
	layout := storage.Layout{Dir: cfg.Storage.DataDir}
	if err := repositories.EnsureCollections(store, layout); err != nil {
		return nil, err
	}
	return &Handler{
		Containers: repositories.NewContainerRepository(store, layout),
		AssetTypes: repositories.NewAssetTypeRepository(store, layout),
		SubTypes:   repositories.NewAssetSubTypeRepository(store, layout),
		Assets:     repositories.NewAssetRepository(store, layout),
		TokenAuth:  jwtauth.New("HS256", []byte(cfg.Auth.Secret), nil),
		Logger:     logger,
	}, nil
}

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		fmt.Fprintf(w, "Im alive!")
	} else {
		fmt.Fprintf(w, "Method not available: %s", r.Method)
	}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// errorBody is the wire shape of every error response: a machine-readable
// code, a human-readable message and, for validation failures, a per-field
// details array. Stack traces are never included.
type errorBody struct {
	Code    string                  `json:"code"`
	Error   string                  `json:"error"`
	Details []validators.FieldError `json:"details,omitempty"`
}

// HandleErrors maps the core error taxonomy onto transport status codes
// without transforming error semantics.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var verr *validators.ValidationError
	var malformed *ids.MalformedIDError
	var nf *repositories.NotFoundError
	var serr *storage.StorageError
	var httpErr *utils.HTTPError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.respond(w, nil, errorBody{Code: "timeout", Error: "Request timed out"}, http.StatusGatewayTimeout)
	case errors.As(err, &verr):
		h.respond(w, nil, errorBody{Code: "validation", Error: "validation failed", Details: verr.Details}, http.StatusUnprocessableEntity)
	case errors.As(err, &malformed):
		// A malformed id is a validation failure at the API boundary.
		h.respond(w, nil, errorBody{Code: "validation", Error: malformed.Error()}, http.StatusUnprocessableEntity)
	case errors.As(err, &nf):
		h.respond(w, nil, errorBody{Code: "not_found", Error: nf.Error()}, http.StatusNotFound)
	case errors.As(err, &serr):
		h.Logger.WithError(serr).WithField("path", serr.Path).Error("storage failure")
		h.respond(w, nil, errorBody{Code: "storage", Error: "storage failure"}, http.StatusInternalServerError)
	case errors.As(err, &httpErr):
		h.respond(w, nil, errorBody{Code: "request", Error: httpErr.Message}, httpErr.Code)
	case err != nil:
		h.Logger.WithError(err).Error("unhandled error")
		h.respond(w, nil, errorBody{Code: "internal", Error: err.Error()}, http.StatusInternalServerError)
	default:
		h.respond(w, nil, errorBody{Code: "internal", Error: "Unhandled error"}, http.StatusInternalServerError)
	}
}

// ownerFromContext resolves the authenticated user's id root from the
// verified JWT claims.
func ownerFromContext(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", utils.Unauthorized("invalid token")
	}
	uid, _ := claims["uid"].(string)
	if !ids.Validate(uid, ids.User) {
		return "", utils.Unauthorized("token carries no valid user id")
	}
	return uid, nil
}

// authorize checks that the id's ancestry is rooted at the authenticated
// user. The parse is defensive: malformed ids simply never match.
func authorize(ownerID, id string) error {
	if ids.Parse(id)[ids.User] != ownerID {
		return utils.Forbidden("resource belongs to another user")
	}
	return nil
}
