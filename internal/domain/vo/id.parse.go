package vo

// ParsedID is the decoded view of an id under the service's active
// layout and epoch.
type ParsedID struct {
	ID          int64  `json:"id"`
	TimestampMs int64  `json:"timestamp_ms"`
	OffsetMs    int64  `json:"timestamp_offset_ms"`
	NodeID      int64  `json:"node_id"`
	Sequence    int64  `json:"sequence"`
	Datetime    string `json:"datetime"`
}
