package voice

// SecurityConfig holds voice webhook security settings.
type SecurityConfig struct {
	Secret          string // Shared secret for signature verification
	RateLimitPerMin int    // Max requests per minute per caller
}

// transcriptReq is the voice gateway's payload: one speech-to-text
// transcript plus where the vehicle is.
type transcriptReq struct {
	SessionID  string  `json:"session_id"`
	Transcript string  `json:"transcript" binding:"required,min=1,max=1000"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// transcriptResp carries the reply to speak back, plus the clarification
// state the gateway needs to keep listening.
type transcriptResp struct {
	SessionID string   `json:"session_id"`
	Speak     string   `json:"speak"`
	Completed bool     `json:"completed"`
	Listening bool     `json:"listening"`
	Options   []string `json:"options,omitempty"`
}
