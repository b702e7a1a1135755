package transport

// ErrorResponse is the wire shape of every failure: a single error field.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges mutations that return no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

type RecommendationResponse struct {
	Recommendation string `json:"recommendation"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
