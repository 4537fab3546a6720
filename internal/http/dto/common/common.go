// Package common tiene los DTOs compartidos entre dominios.
package common

// MessageResponse es la respuesta de los DELETE: {"message": "... deleted successfully"}.
type MessageResponse struct {
	Message string `json:"message"`
}
