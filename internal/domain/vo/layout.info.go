package vo

// LayoutInfo is the read-only rendering of the active bit layout.
type LayoutInfo struct {
	TimestampBits int    `json:"timestamp_bits"`
	NodeIDBits    int    `json:"node_id_bits"`
	SequenceBits  int    `json:"sequence_bits"`
	NodeID        int64  `json:"node_id"`
	MaxNodeID     int64  `json:"max_node_id"`
	MaxSequence   int64  `json:"max_sequence"`
	CustomEpochMs int64  `json:"custom_epoch_ms"`
	IDsPerMs      int64  `json:"ids_per_ms_per_node"`
	Description   string `json:"description"`
}
