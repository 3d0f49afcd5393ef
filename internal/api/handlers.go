package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
	"github.com/mwhite7112/woodpantry-finder/internal/service"
	"github.com/mwhite7112/woodpantry-finder/internal/store"
)

const (
	msgMissingFields = "Missing required fields"
	msgRatingRange   = "Rating must be between 1 and 5"
	msgNotFound      = "Recipe not found"
	msgSaveFailed    = "Error saving review: "
)

var validate = validator.New()

func NewRouter(svc *service.Service, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/healthz", handleHealth)
	r.Post("/search", handleSearch(svc))
	r.Post("/rate", handleRate(svc))

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok")) //nolint:errcheck
}

// handleSearch returns the recipes best matching the posted ingredients.
// An empty ingredient list yields an empty array.
func handleSearch(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logFrom(r)

		var req recipe.SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		results, err := svc.Search(r.Context(), req.Ingredients)
		if err != nil {
			log.WithError(err).Error("search failed")
			jsonError(w, "search failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		jsonOK(w, results)
	}
}

type ratePayload struct {
	RecipeID int    `json:"recipe_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback" validate:"required"`
}

// handleRate records a review. Outcomes are reported in the body as
// {"success": bool, "error": string} with status 200, which is what the
// terminal client expects; only an undecodable body is a 400.
func handleRate(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logFrom(r)

		var req ratePayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if msg := validationMessage(validate.Struct(req)); msg != "" {
			jsonOK(w, recipe.RateResponse{Success: false, Error: msg})
			return
		}

		if _, err := svc.Rate(r.Context(), req.RecipeID, req.Rating, req.Feedback); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				jsonOK(w, recipe.RateResponse{Success: false, Error: msgNotFound})
				return
			}
			log.WithError(err).WithField("recipe_id", req.RecipeID).Error("save review failed")
			jsonOK(w, recipe.RateResponse{Success: false, Error: msgSaveFailed + err.Error()})
			return
		}
		jsonOK(w, recipe.RateResponse{Success: true})
	}
}

// validationMessage maps validator failures to the messages clients show.
// Missing fields win over an out-of-range rating.
func validationMessage(err error) string {
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return msgMissingFields
	}
	msg := ""
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return msgMissingFields
		}
		if fe.Field() == "Rating" {
			msg = msgRatingRange
		}
	}
	if msg == "" {
		msg = msgMissingFields
	}
	return msg
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg}) //nolint:errcheck
}
