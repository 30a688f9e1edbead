package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/yuzvak/storefront-service/internal/infrastructure/http/response"
)

const maxBodyBytes = 1 << 20

// decodeJSON writes a 400 and returns false when the body cannot be decoded.
// An empty body decodes to the zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
	return false
}
