package transfer

// PostDescriptor is one generated post draft as returned by the text model.
type PostDescriptor struct {
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	ImagePrompt           string   `json:"image_prompt"`
	Tags                  []string `json:"tags"`
	Category              string   `json:"category"`
	Emoji                 string   `json:"emoji"`
	ProgrammingDateToPost string   `json:"programming_date_to_post"`
}

type TextGenerationRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type TextGenerationResponse struct {
	Generation string `json:"generation"`
}

type TextPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type ImageGenerationRequest struct {
	Model       string       `json:"model"`
	TextPrompts []TextPrompt `json:"text_prompts"`
	CfgScale    int          `json:"cfg_scale"`
	Seed        int          `json:"seed"`
	Steps       int          `json:"steps"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
}

type ImageArtifact struct {
	Base64 string `json:"base64"`
}

type ImageGenerationResponse struct {
	Artifacts []ImageArtifact `json:"artifacts"`
}

// BuildResult reports the persistence outcome of one generation run.
type BuildResult struct {
	Status  string  `json:"status"`
	PostIDs []int64 `json:"posts"`
	Error   string  `json:"error,omitempty"`
}

const (
	BuildStatusSuccess = "success"
	BuildStatusFailed  = "failed"
)
