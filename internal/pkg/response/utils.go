package response

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/evn/sop_backendl/internal/pkg/apperr"
)

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Ошибка сериализации ответа: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// RespondWithAppError переводит вид ошибки в HTTP-статус и отдает
// машинно-проверяемый kind вместе с текстом.
func RespondWithAppError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)

	var code int
	switch kind {
	case apperr.KindValidation:
		code = http.StatusBadRequest
	case apperr.KindNotFound:
		code = http.StatusNotFound
	case apperr.KindForbidden:
		code = http.StatusForbidden
	case apperr.KindConflict:
		code = http.StatusConflict
	case apperr.KindUnavailable:
		code = http.StatusBadGateway
	default:
		log.Printf("Внутренняя ошибка: %v", err)
		RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, code, map[string]string{
		"kind":  string(kind),
		"error": err.Error(),
	})
}
