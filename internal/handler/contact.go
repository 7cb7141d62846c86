package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/sdweddings/backend/internal/service"
)

// contactRequest is the JSON body of POST /api/contact.
type contactRequest struct {
	Name    string              `json:"name"`
	Email   openapi_types.Email `json:"email"`
	Phone   string              `json:"phone"`
	Date    string              `json:"date"`
	Venue   string              `json:"venue"`
	Message string              `json:"message"`
}

// ContactResponse is the body of a successful POST /api/contact.
type ContactResponse struct {
	Success bool `json:"success"`
}

// PostContact implements POST /api/contact.
// Malformed JSON is 400, a rejected field is 422, a delivery failure is 500.
func (s *Server) PostContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.Is(err, openapi_types.ErrValidationEmail):
			writeError(w, http.StatusUnprocessableEntity, "email must be a valid email address")
		default:
			writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		}
		return
	}

	_, err := s.contact.Submit(r.Context(), service.ContactForm{
		Name:    req.Name,
		Email:   string(req.Email),
		Phone:   req.Phone,
		Date:    req.Date,
		Venue:   req.Venue,
		Message: req.Message,
	})
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, ContactResponse{Success: true})
}
