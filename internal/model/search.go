package model

// SearchResult is a single hit returned by a search provider.
type SearchResult struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
	URL     string `json:"url,omitempty"`
}

// SearchResponse is what a provider returns for one query.
type SearchResponse struct {
	Success  bool           `json:"success"`
	Provider string         `json:"provider,omitempty"`
	Results  []SearchResult `json:"results"`
}

// Usable reports whether the response succeeded and carries at least one result.
func (r *SearchResponse) Usable() bool {
	return r != nil && r.Success && len(r.Results) > 0
}
