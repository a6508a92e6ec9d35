package dto

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BaseRef is a populated base reference, shaped the way the front end
// reads it (item.baseId?.name).
type BaseRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// AssetRef is a populated asset reference.
type AssetRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
