package vo

// MintRequest is the caller's view of a mint operation.
type MintRequest struct {
	// Count is how many ids to mint; zero means one.
	Count int `json:"count"`

	// Prefix, when set, is applied to the decimal rendering of each id.
	Prefix string `json:"prefix"`

	// PrefixPosition, when set, splices Prefix at that character offset
	// instead of prepending it.
	PrefixPosition *int `json:"prefix_position"`
}

// MintedID is a single freshly minted id.
type MintedID struct {
	ID        int64  `json:"id"`
	IDString  string `json:"id_string"`
	Formatted string `json:"formatted,omitempty"`
}

// MintResult carries the ids of one mint call, in mint order.
type MintResult struct {
	IDs []MintedID `json:"ids"`
}
