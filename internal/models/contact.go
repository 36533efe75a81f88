package models

// PageRecord holds everything extracted from a single fetched page.
// It is ephemeral: the orchestrator consumes it into ContactRecords immediately.
type PageRecord struct {
	URL    string   `json:"url"`
	Names  []string `json:"names"`
	Orgs   []string `json:"orgs"`
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
}

// ContactRecord is one exportable contact row. Empty string means the field
// is absent; export substitutes the configured placeholder.
type ContactRecord struct {
	PersonName  string `json:"person_name"`
	Designation string `json:"designation"` // reserved, never populated
	Company     string `json:"company"`
	Emails      string `json:"emails"` // comma-joined
	Phones      string `json:"phones"` // comma-joined
	SourceURL   string `json:"source_url"`
}

// CrawlSummary contains per-batch counters for operator messaging.
type CrawlSummary struct {
	Seeds        int `json:"seeds"`
	PagesVisited int `json:"pages_visited"`
	PagesSkipped int `json:"pages_skipped"`
	PagesFailed  int `json:"pages_failed"`
	Records      int `json:"records"`
}
