package common

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

var emptyData = struct{}{}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	writeEnvelope(w, code, Envelope{Success: false, Data: emptyData, Message: message})
}

// RespondWithAppError writes err using its mapped status code and public message.
func RespondWithAppError(w http.ResponseWriter, err error) {
	RespondWithError(w, HTTPStatusFromError(err), PublicMessage(err))
}

func RespondWithJSON(w http.ResponseWriter, code int, data interface{}, message string) {
	if data == nil {
		data = emptyData
	}
	writeEnvelope(w, code, Envelope{Success: true, Data: data, Message: message})
}

func writeEnvelope(w http.ResponseWriter, code int, payload Envelope) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"data":{},"message":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
