package timeshard

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// funcClock adapts a closure into a Clock for deterministic tests.
type funcClock func() int64

func (f funcClock) NowMillis() int64 { return f() }

// steppedClock returns a clock that replays readings: reading i returns
// readings[min(i, len-1)].
func steppedClock(readings ...int64) Clock {
	var mu sync.Mutex
	index := 0
	return funcClock(func() int64 {
		mu.Lock()
		defer mu.Unlock()
		value := readings[index]
		if index < len(readings)-1 {
			index++
		}
		return value
	})
}

type GeneratorSuite struct {
	suite.Suite
}

func (s *GeneratorSuite) TestNew_Validation() {
	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{name: "defaults are valid", opts: Options{NodeID: 1}},
		{name: "zero node id is valid", opts: Options{}},
		{name: "max node id is valid", opts: Options{NodeID: 1023}},
		{name: "negative node id rejected", opts: Options{NodeID: -1}, wantErr: ErrInvalidNodeID},
		{name: "node id above max rejected", opts: Options{NodeID: 1024}, wantErr: ErrInvalidNodeID},
		{name: "node id above smaller layout max rejected", opts: Options{NodeID: 4, NodeBits: 2}, wantErr: ErrInvalidNodeID},
		{name: "invalid node bits rejected", opts: Options{NodeBits: 17}, wantErr: ErrInvalidNodeBits},
		{name: "invalid epoch rejected", opts: Options{EpochMillis: -5}, wantErr: ErrInvalidEpoch},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			generator, err := New(tc.opts)

			if tc.wantErr != nil {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, tc.wantErr)
				assert.Nil(s.T(), generator)
				return
			}

			require.NoError(s.T(), err)
			require.NotNil(s.T(), generator)
		})
	}
}

func (s *GeneratorSuite) TestNext_SequentialIDsAreUniqueAndMonotonic() {
	generator, err := New(Options{NodeID: 1})
	require.NoError(s.T(), err)

	const count = 10000
	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		id, err := generator.Next()
		require.NoError(s.T(), err)
		ids = append(ids, id)
	}

	assert.True(s.T(), sort.SliceIsSorted(ids, func(i, j int) bool { return ids[i] < ids[j] }),
		"ids must be strictly increasing in call order")

	seen := make(map[int64]struct{}, count)
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(s.T(), seen, count)
}

func (s *GeneratorSuite) TestNext_ConcurrentIDsAreUnique() {
	generator, err := New(Options{NodeID: 1})
	require.NoError(s.T(), err)

	const workers = 10
	const perWorker = 1000

	var mu sync.Mutex
	ids := make([]int64, 0, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int64, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				id, err := generator.Next()
				if err != nil {
					return
				}
				local = append(local, id)
			}
			mu.Lock()
			ids = append(ids, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(s.T(), ids, workers*perWorker)
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(s.T(), seen, workers*perWorker, "no two callers may receive the same id")
}

func (s *GeneratorSuite) TestNext_SameMillisecondIncrementsSequence() {
	generator, err := New(Options{NodeID: 3, EpochMillis: 1000, Clock: steppedClock(5000)})
	require.NoError(s.T(), err)

	for want := int64(0); want < 5; want++ {
		id, err := generator.Next()
		require.NoError(s.T(), err)

		parsed := generator.Parse(id)
		assert.Equal(s.T(), int64(4000), parsed.OffsetMillis)
		assert.Equal(s.T(), want, parsed.Sequence)
	}
}

func (s *GeneratorSuite) TestNext_NewMillisecondResetsSequence() {
	generator, err := New(Options{NodeID: 3, EpochMillis: 1000, Clock: steppedClock(5000, 5000, 6000)})
	require.NoError(s.T(), err)

	first, err := generator.Next()
	require.NoError(s.T(), err)
	second, err := generator.Next()
	require.NoError(s.T(), err)
	third, err := generator.Next()
	require.NoError(s.T(), err)

	assert.Equal(s.T(), int64(1), generator.Parse(second).Sequence)
	assert.Equal(s.T(), int64(0), generator.Parse(third).Sequence)
	assert.Equal(s.T(), int64(5000), generator.Parse(third).OffsetMillis)
	assert.Less(s.T(), first, second)
	assert.Less(s.T(), second, third)
}

func (s *GeneratorSuite) TestNext_SequenceOverflowWaitsForNextMillisecond() {
	// 16 node bits leave 6 sequence bits: 64 ids per millisecond.
	readings := make([]int64, 0, 70)
	for i := 0; i < 66; i++ {
		readings = append(readings, 5000)
	}
	readings = append(readings, 5001)

	generator, err := New(Options{NodeID: 9, NodeBits: 16, EpochMillis: 1000, Clock: steppedClock(readings...)})
	require.NoError(s.T(), err)

	for i := 0; i < 64; i++ {
		id, err := generator.Next()
		require.NoError(s.T(), err)
		assert.Equal(s.T(), int64(i), generator.Parse(id).Sequence)
	}

	// 65th id in the same millisecond: the generator must block until the
	// clock advances, then resume at sequence zero.
	id, err := generator.Next()
	require.NoError(s.T(), err)

	parsed := generator.Parse(id)
	assert.Equal(s.T(), int64(4001), parsed.OffsetMillis)
	assert.Equal(s.T(), int64(0), parsed.Sequence)
}

func (s *GeneratorSuite) TestNext_ClockRegressionFailsWithoutCorruptingState() {
	generator, err := New(Options{NodeID: 3, EpochMillis: 1000, Clock: steppedClock(5000, 4000, 5000)})
	require.NoError(s.T(), err)

	_, err = generator.Next()
	require.NoError(s.T(), err)

	_, err = generator.Next()
	require.Error(s.T(), err)
	assert.ErrorIs(s.T(), err, ErrClockMovedBackward)

	// The failed call must not have touched (lastTimestamp, sequence):
	// the next id in the original millisecond continues the sequence.
	id, err := generator.Next()
	require.NoError(s.T(), err)
	parsed := generator.Parse(id)
	assert.Equal(s.T(), int64(4000), parsed.OffsetMillis)
	assert.Equal(s.T(), int64(1), parsed.Sequence)
}

func (s *GeneratorSuite) TestNext_EpochUnderflow() {
	generator, err := New(Options{NodeID: 1, Clock: steppedClock(100)})
	require.NoError(s.T(), err)

	_, err = generator.Next()
	require.Error(s.T(), err)
	assert.ErrorIs(s.T(), err, ErrEpochUnderflow)
}

func (s *GeneratorSuite) TestNext_TimestampOverflow() {
	generator, err := New(Options{NodeID: 1, EpochMillis: 1, Clock: steppedClock(maxTimestampOffset + 2)})
	require.NoError(s.T(), err)

	_, err = generator.Next()
	require.Error(s.T(), err)
	assert.ErrorIs(s.T(), err, ErrTimestampOverflow)
}

func (s *GeneratorSuite) TestNext_CrossNodeIndependence() {
	clockA := steppedClock(5000)
	clockB := steppedClock(5000)

	generatorA, err := New(Options{NodeID: 1, EpochMillis: 1000, Clock: clockA})
	require.NoError(s.T(), err)
	generatorB, err := New(Options{NodeID: 2, EpochMillis: 1000, Clock: clockB})
	require.NoError(s.T(), err)

	// Same millisecond, same sequence counter: only the node id differs.
	idA, err := generatorA.Next()
	require.NoError(s.T(), err)
	idB, err := generatorB.Next()
	require.NoError(s.T(), err)

	assert.NotEqual(s.T(), idA, idB)
	assert.Equal(s.T(), int64(1), generatorA.Parse(idA).NodeID)
	assert.Equal(s.T(), int64(2), generatorB.Parse(idB).NodeID)
	assert.Equal(s.T(), generatorA.Parse(idA).Sequence, generatorB.Parse(idB).Sequence)
}

func (s *GeneratorSuite) TestParse_FieldsMatchMint() {
	generator, err := New(Options{NodeID: 42, EpochMillis: 1000, Clock: steppedClock(90001000)})
	require.NoError(s.T(), err)

	id, err := generator.Next()
	require.NoError(s.T(), err)

	parsed := generator.Parse(id)
	assert.Equal(s.T(), id, parsed.ID)
	assert.Equal(s.T(), int64(90000000), parsed.OffsetMillis)
	assert.Equal(s.T(), int64(90001000), parsed.TimestampMillis)
	assert.Equal(s.T(), int64(42), parsed.NodeID)
	assert.Equal(s.T(), int64(0), parsed.Sequence)
}

func (s *GeneratorSuite) TestDescribe() {
	generator, err := New(Options{NodeID: 42})
	require.NoError(s.T(), err)

	description := generator.Describe()
	assert.Contains(s.T(), description, "41-10-12")
	assert.Contains(s.T(), description, "current node 42")
	assert.Contains(s.T(), description, "4096 ids/ms per node")
}

func (s *GeneratorSuite) TestNextWithPrefixVariants() {
	generator, err := New(Options{NodeID: 1, EpochMillis: 1000, Clock: steppedClock(5000)})
	require.NoError(s.T(), err)

	prefixed, err := generator.NextWithPrefix("TXN")
	require.NoError(s.T(), err)
	assert.Regexp(s.T(), `^TXN\d+$`, prefixed)

	plain, err := generator.NextString()
	require.NoError(s.T(), err)
	assert.Regexp(s.T(), `^\d+$`, plain)

	_, err = generator.NextWithPrefixAt("X", 1000)
	require.Error(s.T(), err)
	assert.ErrorIs(s.T(), err, ErrInvalidPosition)
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}
