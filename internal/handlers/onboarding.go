package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/echovoice/apiserver/internal/events"
	"github.com/echovoice/apiserver/internal/services"
	"github.com/echovoice/apiserver/internal/store"
	"github.com/echovoice/apiserver/types"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// OnboardingHandler provides HTTP handlers for onboarding profiles.
type OnboardingHandler struct {
	logger            *slog.Logger
	onboardingService *services.OnboardingService
	publisher         *events.Publisher
	validator         *validator.Validate
}

// NewOnboardingHandler constructs a handler with the provided dependencies.
// publisher may be nil when no broker is configured.
func NewOnboardingHandler(logger *slog.Logger, onboardingService *services.OnboardingService, publisher *events.Publisher) *OnboardingHandler {
	return &OnboardingHandler{
		logger:            logger,
		onboardingService: onboardingService,
		publisher:         publisher,
		validator:         newValidator(),
	}
}

// OnboardingRouter registers onboarding routes on the given router.
func OnboardingRouter(r chi.Router, handler *OnboardingHandler) {
	r.Post("/", handler.CreateProfile)
	r.Get("/{profileID}", handler.GetProfile)
}

// CreateProfile validates the aggregate wizard record and persists it.
// Validation is exhaustive and happens before any write.
func (h *OnboardingHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Theme = strings.TrimSpace(req.Theme)
	req.PersonalDetails.Name = strings.TrimSpace(req.PersonalDetails.Name)
	req.PersonalDetails.Email = strings.TrimSpace(req.PersonalDetails.Email)
	req.ReferralSource = strings.TrimSpace(req.ReferralSource)
	req.Persona = strings.TrimSpace(req.Persona)
	req.PricingPlan = strings.TrimSpace(req.PricingPlan)
	if fields := validateStruct(h.validator, req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	profile, err := h.onboardingService.Create(r.Context(), types.OnboardingProfile{
		Theme: req.Theme,
		PersonalDetails: types.PersonalDetails{
			Name:  req.PersonalDetails.Name,
			Age:   req.PersonalDetails.Age,
			Email: req.PersonalDetails.Email,
		},
		ReferralSource: req.ReferralSource,
		Persona:        req.Persona,
		PricingPlan:    req.PricingPlan,
	})
	if err != nil {
		h.logger.Error("create onboarding profile", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.publisher.Emit(r.Context(), events.TopicOnboardingCompleted, events.OnboardingCompleted{
		ProfileID:   profile.ID,
		Theme:       profile.Theme,
		Persona:     profile.Persona,
		PricingPlan: profile.PricingPlan,
	})

	writeJSON(w, http.StatusCreated, OnboardingCreateResponse{
		UserID: profile.ID,
		Status: "success",
	})
}

// GetProfile returns a profile by id with RFC3339 timestamps.
func (h *OnboardingHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "profileID")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	profile, err := h.onboardingService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		h.logger.Error("fetch onboarding profile", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, OnboardingProfileResponse{
		ID:              profile.ID,
		Theme:           profile.Theme,
		PersonalDetails: profile.PersonalDetails,
		ReferralSource:  profile.ReferralSource,
		Persona:         profile.Persona,
		PricingPlan:     profile.PricingPlan,
		CreatedAt:       profile.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       profile.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

type PersonalDetailsRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Age   int    `json:"age" validate:"required,gte=13,lte=120"`
	Email string `json:"email" validate:"required,email"`
}

type OnboardingRequest struct {
	Theme           string                 `json:"theme" validate:"required,oneof=light dark"`
	PersonalDetails PersonalDetailsRequest `json:"personalDetails"`
	ReferralSource  string                 `json:"referralSource" validate:"required"`
	Persona         string                 `json:"persona" validate:"required"`
	PricingPlan     string                 `json:"pricingPlan" validate:"required"`
}

type OnboardingCreateResponse struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

type OnboardingProfileResponse struct {
	ID              string                `json:"_id"`
	Theme           string                `json:"theme"`
	PersonalDetails types.PersonalDetails `json:"personalDetails"`
	ReferralSource  string                `json:"referralSource"`
	Persona         string                `json:"persona"`
	PricingPlan     string                `json:"pricingPlan"`
	CreatedAt       string                `json:"createdAt"`
	UpdatedAt       string                `json:"updatedAt"`
}
