package handlers

import (
	"net/http"

	"github.com/soccerhub/backend/services"
)

type OrganizationHandler struct {
	organizationService services.OrganizationService
	tournamentService   services.TournamentService
}

func NewOrganizationHandler(os services.OrganizationService, ts services.TournamentService) *OrganizationHandler {
	return &OrganizationHandler{organizationService: os, tournamentService: ts}
}

func (h *OrganizationHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var input services.OrganizationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	organization, err := h.organizationService.CreateOrganization(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"organization": organization}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *OrganizationHandler) GetOrganizationByID(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getIDFromURL(r, "organizationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	organization, err := h.organizationService.GetOrganizationByID(r.Context(), organizationID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"organization": organization}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *OrganizationHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	organizations, err := h.organizationService.GetAllOrganizations(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"organizations": organizations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *OrganizationHandler) ListOrganizationTournaments(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getIDFromURL(r, "organizationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournaments, err := h.tournamentService.GetTournamentsByOrganization(r.Context(), organizationID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *OrganizationHandler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getIDFromURL(r, "organizationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.OrganizationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	organization, err := h.organizationService.UpdateOrganization(r.Context(), organizationID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"organization": organization}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *OrganizationHandler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getIDFromURL(r, "organizationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.organizationService.DeleteOrganization(r.Context(), organizationID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
