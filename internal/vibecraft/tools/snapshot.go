package tools

// Region Snapshot decoding: the peer encodes a scanned region as a
// palette of block ids plus a run-length-encoded index sequence whose
// elements are either a bare palette index (run of one) or an
// [index, count] pair. Iteration order is y outermost, then z, then x.

// decodeSnapshotBlocks expands the RLE sequence against the palette,
// returning the block id of every cell in iteration order. A malformed
// element or out-of-range index returns ok=false and the caller leaves
// the snapshot untouched.
func decodeSnapshotBlocks(palette []string, blocks []interface{}) (ids []string, ok bool) {
	for _, elem := range blocks {
		index, count, valid := decodeRun(elem)
		if !valid || index < 0 || index >= len(palette) || count < 1 {
			return nil, false
		}
		for i := 0; i < count; i++ {
			ids = append(ids, palette[index])
		}
	}
	return ids, true
}

func decodeRun(elem interface{}) (index, count int, ok bool) {
	switch v := elem.(type) {
	case float64:
		return int(v), 1, true
	case int:
		return v, 1, true
	case []interface{}:
		if len(v) != 2 {
			return 0, 0, false
		}
		idx, okI := asSnapshotInt(v[0])
		n, okN := asSnapshotInt(v[1])
		return idx, n, okI && okN
	default:
		return 0, 0, false
	}
}

func asSnapshotInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

// snapshotStats decodes a raw region.scan result and, when the shape is
// recognizable, attaches aggregate stats: total cells, per-block counts,
// and the most common block. An unrecognized shape passes through
// unchanged.
func snapshotStats(result interface{}) interface{} {
	m, ok := result.(map[string]interface{})
	if !ok {
		return result
	}

	paletteRaw, ok := m["palette"].([]interface{})
	if !ok {
		return result
	}
	palette := make([]string, 0, len(paletteRaw))
	for _, p := range paletteRaw {
		s, ok := p.(string)
		if !ok {
			return result
		}
		palette = append(palette, s)
	}

	blocks, ok := m["blocks"].([]interface{})
	if !ok {
		return result
	}

	ids, ok := decodeSnapshotBlocks(palette, blocks)
	if !ok {
		return result
	}

	counts := map[string]int{}
	for _, id := range ids {
		counts[id]++
	}
	var top string
	for id, n := range counts {
		if top == "" || n > counts[top] || (n == counts[top] && id < top) {
			top = id
		}
	}

	m["stats"] = map[string]interface{}{
		"total_blocks": len(ids),
		"counts":       counts,
		"most_common":  top,
	}
	return m
}
