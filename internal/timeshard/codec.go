package timeshard

import "time"

// ParsedID is the read-only decomposition of an id under a given layout.
type ParsedID struct {
	// ID is the original encoded value.
	ID int64

	// TimestampMillis is the absolute Unix millisecond the id was minted at.
	TimestampMillis int64

	// OffsetMillis is the raw 41-bit timestamp field, milliseconds past the epoch.
	OffsetMillis int64

	// NodeID is the node that minted the id.
	NodeID int64

	// Sequence is the per-millisecond counter value.
	Sequence int64

	// Time is TimestampMillis as a UTC time, millisecond resolution.
	Time time.Time
}

// Pack encodes the three fields into a single non-negative int64.
// Node id and sequence are masked to their widths as defense in depth;
// range validation is the constructor's job, not Pack's.
func (l Layout) Pack(offsetMillis, nodeID, sequence int64) int64 {
	return offsetMillis<<l.timestampShift |
		(nodeID&l.maxNodeID)<<l.nodeShift |
		sequence&l.maxSequence
}

// Unpack decodes an id produced with this layout and epoch. It never
// fails: feeding it an id encoded under a different layout yields
// well-formed but meaningless fields.
func (l Layout) Unpack(id int64) ParsedID {
	offset := id >> l.timestampShift
	timestamp := offset + l.epochMillis

	return ParsedID{
		ID:              id,
		TimestampMillis: timestamp,
		OffsetMillis:    offset,
		NodeID:          (id >> l.nodeShift) & l.maxNodeID,
		Sequence:        id & l.maxSequence,
		Time:            time.UnixMilli(timestamp).UTC(),
	}
}
