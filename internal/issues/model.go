package issues

const (
	DefaultTitle = "No title"
	DefaultBody  = "No description provided"
)

// IssueData is the analysis input built from one GitHub issue and its filtered comments.
type IssueData struct {
	Title    string   `json:"title" yaml:"title"`
	Body     string   `json:"body" yaml:"body"`
	Comments []string `json:"comments" yaml:"comments"`
}

// Metadata is the display summary of an issue.
type Metadata struct {
	State        string   `json:"state" yaml:"state"`
	Author       string   `json:"author" yaml:"author"`
	CommentCount int      `json:"comment_count" yaml:"comment_count"`
	CreatedAt    string   `json:"created_at" yaml:"created_at"`
	UpdatedAt    string   `json:"updated_at" yaml:"updated_at"`
	HTMLURL      string   `json:"html_url" yaml:"html_url"`
	RepoHTMLURL  string   `json:"repo_html_url" yaml:"repo_html_url"`
	Labels       []string `json:"labels" yaml:"labels"`
}

// DeveloperInfo is an extended, unvalidated projection of an issue.
type DeveloperInfo struct {
	Metadata     Metadata       `json:"metadata" yaml:"metadata"`
	TopComments  []string       `json:"top_comments" yaml:"top_comments"`
	DetailedJSON map[string]any `json:"detailed_json" yaml:"detailed_json"`
}
