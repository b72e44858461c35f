package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/codex/items", "200"))

	RecordHTTPRequest("GET", "/codex/items", "200", 0.01)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/codex/items", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordCacheLookup(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("memory", "hit"))
	missBefore := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("memory", "miss"))

	RecordCacheLookup("memory", true)
	RecordCacheLookup("memory", false)
	RecordCacheLookup("memory", false)

	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("memory", "hit")))
	assert.Equal(t, missBefore+2, testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("memory", "miss")))
}

func TestSetDatasetSize(t *testing.T) {
	SetDatasetSize(10, 4, 2, 1)

	assert.Equal(t, float64(10), testutil.ToFloat64(DatasetSize.WithLabelValues("items")))
	assert.Equal(t, float64(4), testutil.ToFloat64(DatasetSize.WithLabelValues("recipes")))
	assert.Equal(t, float64(2), testutil.ToFloat64(DatasetSize.WithLabelValues("sources")))
	assert.Equal(t, float64(1), testutil.ToFloat64(DatasetSize.WithLabelValues("quests")))
}

func TestRecordMalformedEntries_IgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(MalformedEntriesTotal.WithLabelValues("items"))

	RecordMalformedEntries("items", 0)
	RecordMalformedEntries("items", 3)

	assert.Equal(t, before+3, testutil.ToFloat64(MalformedEntriesTotal.WithLabelValues("items")))
}

func TestRecordCraftabilityCheck(t *testing.T) {
	RecordCraftabilityCheck(42)

	var m dto.Metric
	require.NoError(t, InventoryStacksObserved.Write(&m))
	require.NotNil(t, m.Histogram)
	assert.GreaterOrEqual(t, m.Histogram.GetSampleCount(), uint64(1))
	assert.GreaterOrEqual(t, m.Histogram.GetSampleSum(), float64(42))
}
