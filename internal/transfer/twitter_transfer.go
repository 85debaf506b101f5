package transfer

type TwitterMediaUploadResponse struct {
	MediaIDString string `json:"media_id_string"`
}

type TwitterTweetRequest struct {
	Text  string             `json:"text"`
	Media *TwitterTweetMedia `json:"media,omitempty"`
}

type TwitterTweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type TwitterTweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

type TwitterError struct {
	Message string `json:"message"`
}

type TwitterErrorResponse struct {
	Title  string         `json:"title"`
	Detail string         `json:"detail"`
	Errors []TwitterError `json:"errors"`
}
