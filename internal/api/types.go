package api

// ImportRequest is the body of an import call.
type ImportRequest struct {
	URL string `json:"url" binding:"required"`
}

// ResolveRequest is the body of a duplicate-resolution call.
type ResolveRequest struct {
	Action string `json:"action" binding:"required,oneof=create update cancel"`
}
