package model

// GenerateRequest is the body of an AI question-generation request
type GenerateRequest struct {
	Prompt        string `json:"prompt"`
	QuestionCount int    `json:"question_count"`
}

// GenerationResult is the tagged outcome of the generation pipeline. Success
// is false when every model call failed (Questions empty) or when the model
// output could not be parsed (Questions holds one synthetic fallback).
type GenerationResult struct {
	Success   bool                `json:"success"`
	Questions []GeneratedQuestion `json:"questions"`
	Count     int                 `json:"count"`
	Error     string              `json:"error,omitempty"`
	RawOutput string              `json:"raw_output,omitempty"` // truncated, parse failures only
	Model     string              `json:"model,omitempty"`      // model that produced the reply
	Prompt    string              `json:"prompt,omitempty"`
}
