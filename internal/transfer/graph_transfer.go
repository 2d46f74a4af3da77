package transfer

// GraphIDResponse is the payload the Graph API returns for feed posts,
// container creation and container publishing alike.
type GraphIDResponse struct {
	ID string `json:"id"`
}

type GraphContainerStatus struct {
	ID         string `json:"id"`
	StatusCode string `json:"status_code"`
}

type GraphErrorResponse struct {
	Error struct {
		Message        string `json:"message"`
		Type           string `json:"type"`
		Code           int    `json:"code"`
		ErrorSubcode   int    `json:"error_subcode"`
		IsTransient    bool   `json:"is_transient"`
		ErrorUserTitle string `json:"error_user_title"`
		ErrorUserMsg   string `json:"error_user_msg"`
		FbtraceID      string `json:"fbtrace_id"`
	} `json:"error"`
}
