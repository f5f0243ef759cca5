package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/egorv/homebook/internal/catalog"
)

// CatalogProvider is the catalog read surface the handlers depend on.
// Satisfied by *catalog.CatalogService.
type CatalogProvider interface {
	GetAllServices(ctx context.Context) ([]*catalog.Service, error)
	GetService(ctx context.Context, id string) (*catalog.Service, error)
}

type CatalogHandler struct {
	svc     CatalogProvider
	timeout time.Duration
}

func NewCatalogHandler(svc CatalogProvider, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		svc:     svc,
		timeout: timeout,
	}
}

type ServiceDTO struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	Price               string `json:"price"`
	ExtendedDescription string `json:"extended_description,omitempty"`
	Offer               string `json:"offer,omitempty"`
}

// GET /api/v1/services
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	services, err := h.svc.GetAllServices(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load services")
		return
	}

	dtos := make([]ServiceDTO, 0, len(services))
	for _, s := range services {
		dtos = append(dtos, convertService(s))
	}

	respondJSON(w, http.StatusOK, dtos)
}

// GET /api/v1/services/{service_id}
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	serviceID := chi.URLParam(r, "service_id")
	if serviceID == "" {
		respondError(w, http.StatusBadRequest, "invalid_service_id", "service_id is required")
		return
	}

	service, err := h.svc.GetService(ctx, serviceID)
	if errors.Is(err, catalog.ErrServiceNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "service not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load service")
		return
	}

	respondJSON(w, http.StatusOK, convertService(service))
}

func convertService(s *catalog.Service) ServiceDTO {
	return ServiceDTO{
		ID:                  s.ID,
		Name:                s.Name,
		Description:         s.Description,
		Price:               s.Price,
		ExtendedDescription: s.ExtendedDescription,
		Offer:               s.Offer,
	}
}
