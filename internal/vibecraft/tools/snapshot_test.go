package tools

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeSnapshotBlocks_RoundTrip(t *testing.T) {
	palette := []string{"stone", "air", "dirt"}
	// 2x2x2 region: y outermost, then z, then x.
	blocks := []interface{}{
		[]interface{}{float64(0), float64(3)}, // stone x3
		float64(2),                            // dirt x1
		[]interface{}{float64(1), float64(4)}, // air x4
	}

	ids, ok := decodeSnapshotBlocks(palette, blocks)
	require.True(t, ok)
	require.Len(t, ids, 8, "decoded length must equal the region volume")
	require.Equal(t, []string{
		"stone", "stone", "stone", "dirt",
		"air", "air", "air", "air",
	}, ids)
}

func TestDecodeSnapshotBlocks_RejectsBadIndex(t *testing.T) {
	_, ok := decodeSnapshotBlocks([]string{"stone"}, []interface{}{float64(5)})
	require.False(t, ok)

	_, ok = decodeSnapshotBlocks([]string{"stone"}, []interface{}{[]interface{}{float64(0)}})
	require.False(t, ok)
}

func TestSnapshotStats_AttachesAggregates(t *testing.T) {
	raw := map[string]interface{}{
		"origin":     []interface{}{float64(0), float64(0), float64(0)},
		"dimensions": []interface{}{float64(2), float64(1), float64(2)},
		"palette":    []interface{}{"stone", "air"},
		"blocks": []interface{}{
			[]interface{}{float64(0), float64(3)},
			float64(1),
		},
	}

	out, ok := snapshotStats(raw).(map[string]interface{})
	require.True(t, ok)

	stats, ok := out["stats"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, 4, stats["total_blocks"])
	require.Equal(t, "stone", stats["most_common"])
	require.Equal(t, map[string]int{"stone": 3, "air": 1}, stats["counts"])
}

func TestSnapshotStats_UnrecognizedShapePassesThrough(t *testing.T) {
	require.Equal(t, "raw", snapshotStats("raw"))

	m := map[string]interface{}{"palette": "not-a-list"}
	require.Equal(t, m, snapshotStats(m))
}
