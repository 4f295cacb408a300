package models

// Chunk is one retrieved span of lesson text.
type Chunk struct {
	ID         string
	Content    string
	ChunkID    int
	Similarity float32
}

// ModelConfig selects the model and sampling parameters for one generation call.
type ModelConfig struct {
	ModelID     string
	Temperature float64
	MaxTokens   int
}

// AskRequest is the body of POST /ask. Query is a pointer so that an empty
// question is accepted while a missing one is rejected.
type AskRequest struct {
	Query  *string `json:"query" binding:"required"`
	ID     int     `json:"id" binding:"required"`
	Course string  `json:"course" binding:"required"`
}

func (r AskRequest) Key() LessonKey { return LessonKey{Course: r.Course, ID: r.ID} }

type RewriteRequest struct {
	SystemPrompt *string `json:"system_prompt" binding:"required"`
	ID           int     `json:"id" binding:"required"`
	Course       string  `json:"course" binding:"required"`
}

func (r RewriteRequest) Key() LessonKey { return LessonKey{Course: r.Course, ID: r.ID} }

type AskResponse struct {
	Result string `json:"result"`
}

type RewriteResponse struct {
	RewrittenText string `json:"rewrittenText"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
