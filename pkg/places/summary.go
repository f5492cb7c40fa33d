package places

// SearchSummary is the minimal projection of one search result, used to
// chain a search into a details lookup.
type SearchSummary struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
}
