package dto

// ErrorResponse respuesta estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageResponse metadatos de paginación.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
