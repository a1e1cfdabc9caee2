package dto

// GenerateRequest documents the two accepted bodies of the prompt proxy:
// a bare prompt, or a complete generateContent payload with contents.
type GenerateRequest struct {
	Prompt   string `json:"prompt,omitempty" example:"Summarize today's Saudi labor market headlines"`
	Contents []any  `json:"contents,omitempty" swaggertype:"array,object"`
}
