package dto

// ChatRequest is one chat turn from the user.
type ChatRequest struct {
	Message string `json:"message"`
}

// LanguageRequest asks to identify the language of a text.
type LanguageRequest struct {
	Text string `json:"text"`
}

// LanguageResponse names the detected language.
type LanguageResponse struct {
	Language string `json:"language"`
}
