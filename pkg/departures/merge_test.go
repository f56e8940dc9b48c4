package departures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mergeNow = time.Date(2024, 3, 14, 14, 0, 0, 0, time.UTC)

func minutesFromNow(minutes int) time.Time {
	return mergeNow.Add(time.Duration(minutes) * time.Minute)
}

func scheduledRecord(tripID string, minutes int) Record {
	return Record{Time: minutesFromNow(minutes), Source: SourceScheduled, TripID: tripID}
}

func liveRecord(tripID string, minutes int) Record {
	return Record{Time: minutesFromNow(minutes), Source: SourceLive, TripID: tripID}
}

func TestMergeScheduleOnly(t *testing.T) {
	scheduled := []Record{
		scheduledRecord("trip-1", 5),
		scheduledRecord("trip-2", 20),
		scheduledRecord("trip-3", 35),
	}

	merged := Merge(mergeNow, scheduled, nil)

	require.Len(t, merged, 3)
	for rank, departure := range merged {
		assert.Equal(t, rank, departure.Rank)
		assert.Equal(t, SourceScheduled, departure.Source)
	}
	assert.True(t, merged[0].Time.Equal(minutesFromNow(5)))
	assert.True(t, merged[1].Time.Equal(minutesFromNow(20)))
	assert.True(t, merged[2].Time.Equal(minutesFromNow(35)))
}

func TestMergeLivePredictionReplacesScheduledTrip(t *testing.T) {
	scheduled := []Record{
		scheduledRecord("trip-1", 5),
		scheduledRecord("trip-2", 20),
	}
	live := []Record{
		liveRecord("trip-1", 9),
	}

	merged := Merge(mergeNow, scheduled, live)

	require.Len(t, merged, 2)
	assert.True(t, merged[0].Time.Equal(minutesFromNow(9)))
	assert.Equal(t, SourceLive, merged[0].Source)
	assert.True(t, merged[1].Time.Equal(minutesFromNow(20)))
	assert.Equal(t, SourceScheduled, merged[1].Source)
}

func TestMergeScheduledNeverReplacesLive(t *testing.T) {
	// Fetch completion order must not matter, so inserting the scheduled
	// record after the live one has to leave the live record in place
	live := []Record{
		liveRecord("trip-1", 9),
	}
	scheduled := []Record{
		scheduledRecord("trip-1", 5),
	}

	merged := Merge(mergeNow, scheduled, live)

	require.Len(t, merged, 1)
	assert.Equal(t, SourceLive, merged[0].Source)
	assert.True(t, merged[0].Time.Equal(minutesFromNow(9)))
}

func TestMergeStaleScheduledTripExcluded(t *testing.T) {
	scheduled := []Record{
		scheduledRecord("trip-1", -7),
	}

	merged := Merge(mergeNow, scheduled, nil)

	assert.Empty(t, merged)
}

func TestMergeThresholdsAreIndependent(t *testing.T) {
	// 20 minutes stale survives the lookback window but not the display
	// cutoff...
	merged := Merge(mergeNow, []Record{scheduledRecord("trip-1", -20)}, nil)
	assert.Empty(t, merged)

	// ...yet the same trip still matches a live prediction, which is the
	// whole point of retaining it
	merged = Merge(mergeNow,
		[]Record{scheduledRecord("trip-1", -20)},
		[]Record{liveRecord("trip-1", 2)},
	)
	require.Len(t, merged, 1)
	assert.Equal(t, SourceLive, merged[0].Source)

	// Beyond the lookback window the scheduled record is gone entirely
	merged = Merge(mergeNow, []Record{scheduledRecord("trip-2", -35)}, nil)
	assert.Empty(t, merged)
}

func TestMergeStalenessBoundary(t *testing.T) {
	scheduled := []Record{
		scheduledRecord("trip-1", -5),
		scheduledRecord("trip-2", -6),
	}

	merged := Merge(mergeNow, scheduled, nil)

	require.Len(t, merged, 1)
	assert.True(t, merged[0].Time.Equal(minutesFromNow(-5)))
}

func TestMergePredictionOnlyTripsIncluded(t *testing.T) {
	live := []Record{
		liveRecord("trip-extra", 4),
	}

	merged := Merge(mergeNow, nil, live)

	require.Len(t, merged, 1)
	assert.Equal(t, SourceLive, merged[0].Source)
}

func TestMergeCapsAndOrders(t *testing.T) {
	scheduled := []Record{
		scheduledRecord("trip-4", 40),
		scheduledRecord("trip-1", 5),
		scheduledRecord("trip-3", 30),
		scheduledRecord("trip-2", 15),
	}

	merged := Merge(mergeNow, scheduled, nil)

	require.Len(t, merged, MaxDepartures)
	for index := 1; index < len(merged); index++ {
		assert.False(t, merged[index].Time.Before(merged[index-1].Time))
	}
	assert.True(t, merged[2].Time.Equal(minutesFromNow(30)))
}

func TestMergeTieBreakDeterministic(t *testing.T) {
	scheduled := []Record{
		scheduledRecord("trip-z", 10),
	}
	live := []Record{
		{Time: minutesFromNow(10), Source: SourceLive, TripID: "trip-b", StopsAway: 2},
		{Time: minutesFromNow(10), Source: SourceLive, TripID: "trip-a", StopsAway: 1},
	}

	// Map iteration order must never leak into the output, so repeated runs
	// have to agree: live before scheduled, then ordered by trip identifier
	for run := 0; run < 5; run++ {
		merged := Merge(mergeNow, scheduled, live)

		require.Len(t, merged, 3)
		assert.Equal(t, SourceLive, merged[0].Source)
		assert.Equal(t, 1, merged[0].StopsAway)
		assert.Equal(t, SourceLive, merged[1].Source)
		assert.Equal(t, 2, merged[1].StopsAway)
		assert.Equal(t, SourceScheduled, merged[2].Source)
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	assert.Empty(t, Merge(mergeNow, nil, nil))
	assert.Empty(t, Merge(mergeNow, []Record{}, []Record{}))
}

func TestMergeCarriesStopsAway(t *testing.T) {
	live := []Record{
		{Time: minutesFromNow(6), Source: SourceLive, TripID: "trip-1", StopsAway: 3},
	}

	merged := Merge(mergeNow, nil, live)

	require.Len(t, merged, 1)
	assert.Equal(t, 3, merged[0].StopsAway)
}
