package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/joshuarp/timeshard-api/internal/domain/vo"
	"github.com/joshuarp/timeshard-api/internal/timeshard"
)

// idSourceFunc adapts a closure into an IDSource.
type idSourceFunc func() (int64, error)

func (f idSourceFunc) Next() (int64, error) { return f() }

func fixedSource(id int64) IDSource {
	return idSourceFunc(func() (int64, error) { return id, nil })
}

func countingSource(start int64) IDSource {
	next := start
	return idSourceFunc(func() (int64, error) {
		id := next
		next++
		return id, nil
	})
}

func intPtr(v int) *int { return &v }

type MintIDServiceSuite struct {
	suite.Suite
}

func (s *MintIDServiceSuite) TestMint_TableDriven() {
	sourceErr := errors.New("source failure")

	tests := []struct {
		name      string
		source    IDSource
		maxBatch  int
		request   vo.MintRequest
		assertion func(vo.MintResult, error)
	}{
		{
			name:    "zero count mints one id",
			source:  fixedSource(12345),
			request: vo.MintRequest{},
			assertion: func(result vo.MintResult, err error) {
				require.NoError(s.T(), err)
				require.Len(s.T(), result.IDs, 1)
				assert.Equal(s.T(), int64(12345), result.IDs[0].ID)
				assert.Equal(s.T(), "12345", result.IDs[0].IDString)
				assert.Empty(s.T(), result.IDs[0].Formatted)
			},
		},
		{
			name:    "batch preserves mint order",
			source:  countingSource(100),
			request: vo.MintRequest{Count: 5},
			assertion: func(result vo.MintResult, err error) {
				require.NoError(s.T(), err)
				require.Len(s.T(), result.IDs, 5)
				for i, minted := range result.IDs {
					assert.Equal(s.T(), int64(100+i), minted.ID)
				}
			},
		},
		{
			name:    "negative count rejected",
			source:  fixedSource(1),
			request: vo.MintRequest{Count: -1},
			assertion: func(result vo.MintResult, err error) {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, vo.ErrInvalidCount)
				assert.Empty(s.T(), result.IDs)
			},
		},
		{
			name:     "count above batch limit rejected",
			source:   fixedSource(1),
			maxBatch: 10,
			request:  vo.MintRequest{Count: 11},
			assertion: func(result vo.MintResult, err error) {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, vo.ErrInvalidCount)
			},
		},
		{
			name:    "prefix prepends",
			source:  fixedSource(1730678523123456789),
			request: vo.MintRequest{Prefix: "TXN"},
			assertion: func(result vo.MintResult, err error) {
				require.NoError(s.T(), err)
				assert.Equal(s.T(), "TXN1730678523123456789", result.IDs[0].Formatted)
			},
		},
		{
			name:    "prefix spliced at position",
			source:  fixedSource(1730678523123456789),
			request: vo.MintRequest{Prefix: "-REF-", PrefixPosition: intPtr(4)},
			assertion: func(result vo.MintResult, err error) {
				require.NoError(s.T(), err)
				assert.Equal(s.T(), "1730-REF-678523123456789", result.IDs[0].Formatted)
			},
		},
		{
			name:    "prefix position out of range rejected",
			source:  fixedSource(1730678523123456789),
			request: vo.MintRequest{Prefix: "XXX", PrefixPosition: intPtr(100)},
			assertion: func(result vo.MintResult, err error) {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, vo.ErrInvalidPrefixPosition)
				assert.Empty(s.T(), result.IDs)
			},
		},
		{
			name: "clock regression surfaces as clock skew",
			source: idSourceFunc(func() (int64, error) {
				return 0, fmt.Errorf("wrapped: %w", timeshard.ErrClockMovedBackward)
			}),
			request: vo.MintRequest{},
			assertion: func(result vo.MintResult, err error) {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, vo.ErrClockSkew)
			},
		},
		{
			name: "other source errors propagate",
			source: idSourceFunc(func() (int64, error) {
				return 0, sourceErr
			}),
			request: vo.MintRequest{},
			assertion: func(result vo.MintResult, err error) {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, sourceErr)
				assert.NotErrorIs(s.T(), err, vo.ErrClockSkew)
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			service := NewMintIDService(tc.source, tc.maxBatch)
			result, err := service.Mint(context.Background(), tc.request)
			tc.assertion(result, err)
		})
	}
}

func TestMintIDServiceSuite(t *testing.T) {
	suite.Run(t, new(MintIDServiceSuite))
}

// layoutDecoder decodes through a real layout, no generator involved.
type layoutDecoder struct {
	layout timeshard.Layout
}

func (d layoutDecoder) Parse(id int64) timeshard.ParsedID { return d.layout.Unpack(id) }

type ParseIDServiceSuite struct {
	suite.Suite

	layout  timeshard.Layout
	service *ParseIDService
}

func (s *ParseIDServiceSuite) SetupTest() {
	layout, err := timeshard.NewLayout(10, timeshard.DefaultEpochMillis)
	require.NoError(s.T(), err)

	s.layout = layout
	s.service = NewParseIDService(layoutDecoder{layout: layout})
}

func (s *ParseIDServiceSuite) TestParse_DecodesFields() {
	const offset = int64(86400123)
	id := s.layout.Pack(offset, 42, 7)

	parsed, err := s.service.Parse(context.Background(), fmt.Sprintf("%d", id))
	require.NoError(s.T(), err)

	assert.Equal(s.T(), id, parsed.ID)
	assert.Equal(s.T(), offset, parsed.OffsetMs)
	assert.Equal(s.T(), offset+timeshard.DefaultEpochMillis, parsed.TimestampMs)
	assert.Equal(s.T(), int64(42), parsed.NodeID)
	assert.Equal(s.T(), int64(7), parsed.Sequence)

	want := time.UnixMilli(offset + timeshard.DefaultEpochMillis).UTC().Format("2006-01-02 15:04:05.000")
	assert.Equal(s.T(), want, parsed.Datetime)
}

func (s *ParseIDServiceSuite) TestParse_TableDriven() {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "plain decimal", raw: "12345"},
		{name: "surrounding whitespace trimmed", raw: "  12345  "},
		{name: "zero is valid", raw: "0"},
		{name: "not a number", raw: "abc", wantErr: vo.ErrNotDecimal},
		{name: "prefixed id is not parseable", raw: "TXN12345", wantErr: vo.ErrNotDecimal},
		{name: "negative rejected", raw: "-5", wantErr: vo.ErrNotDecimal},
		{name: "overflowing digits rejected", raw: "99999999999999999999999", wantErr: vo.ErrNotDecimal},
		{name: "empty rejected", raw: "", wantErr: vo.ErrNotDecimal},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			_, err := s.service.Parse(context.Background(), tc.raw)

			if tc.wantErr != nil {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, tc.wantErr)
				return
			}

			require.NoError(s.T(), err)
		})
	}
}

func TestParseIDServiceSuite(t *testing.T) {
	suite.Run(t, new(ParseIDServiceSuite))
}

func TestDescribeLayoutService(t *testing.T) {
	generator, err := timeshard.New(timeshard.Options{NodeID: 42})
	require.NoError(t, err)

	service := NewDescribeLayoutService(generator)
	info := service.DescribeLayout(context.Background())

	assert.Equal(t, 41, info.TimestampBits)
	assert.Equal(t, 10, info.NodeIDBits)
	assert.Equal(t, 12, info.SequenceBits)
	assert.Equal(t, int64(42), info.NodeID)
	assert.Equal(t, int64(1023), info.MaxNodeID)
	assert.Equal(t, int64(4095), info.MaxSequence)
	assert.Equal(t, timeshard.DefaultEpochMillis, info.CustomEpochMs)
	assert.Equal(t, int64(4096), info.IDsPerMs)
	assert.Contains(t, info.Description, "41-10-12")
}
