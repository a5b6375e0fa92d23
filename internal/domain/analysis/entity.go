package analysis

// Result is the composed payload for one finished analysis.
type Result struct {
	Success      bool     `json:"success"`
	Description  string   `json:"description"`
	UserID       string   `json:"user_id"`
	Tier         string   `json:"tier"`
	AnalysesUsed int      `json:"analyses_used"`
	Filename     string   `json:"filename"`
	Timestamp    string   `json:"timestamp"`
	Tags         []string `json:"tags"`
}
