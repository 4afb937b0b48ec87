package http

import "github.com/gin-gonic/gin"

// Códigos de error estables expuestos a clientes.
const (
	CodeValidationFailed   = "validation_failed"
	CodeEmailTaken         = "email_taken"
	CodeInvalidCredentials = "invalid_credentials"
	CodeMissingToken       = "missing_token"
	CodeInvalidToken       = "invalid_token"
	CodeUserNotFound       = "user_not_found"
	CodeServerMisconfig    = "server_misconfigured"
	CodeInternalError      = "internal_error"
	CodeMethodNotAllowed   = "method_not_allowed"
)

// ErrorBody es el payload de error del envelope uniforme.
type ErrorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// respondData responde {"ok":true,"data":...} con el status dado.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"ok": true, "data": data})
}

// respondError responde {"ok":false,"error":{...}} con el status dado.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"ok": false, "error": ErrorBody{Code: code, Message: message}})
}

func respondValidation(c *gin.Context, status int, fields map[string][]string) {
	c.JSON(status, gin.H{"ok": false, "error": ErrorBody{
		Code:    CodeValidationFailed,
		Message: "validation failed",
		Fields:  fields,
	}})
}
