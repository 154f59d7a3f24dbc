package build

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoalesce_MergesStraightRunIntoFill(t *testing.T) {
	in := []string{
		"/setblock 0 64 0 stone",
		"/setblock 1 64 0 stone",
		"/setblock 2 64 0 stone",
		"/setblock 3 64 0 stone",
	}
	require.Equal(t, []string{"/fill 0 64 0 3 64 0 stone"}, coalesceFills(in))
}

func TestCoalesce_PreservesModeSuffix(t *testing.T) {
	in := []string{
		"/setblock 0 64 0 stone keep",
		"/setblock 0 65 0 stone keep",
		"/setblock 0 66 0 stone keep",
	}
	require.Equal(t, []string{"/fill 0 64 0 0 66 0 stone keep"}, coalesceFills(in))
}

func TestCoalesce_ShortRunsStayUnmerged(t *testing.T) {
	in := []string{
		"/setblock 0 64 0 stone",
		"/setblock 1 64 0 stone",
	}
	require.Equal(t, in, coalesceFills(in))
}

func TestCoalesce_DifferentBlocksBreakTheRun(t *testing.T) {
	in := []string{
		"/setblock 0 64 0 stone",
		"/setblock 1 64 0 stone",
		"/setblock 2 64 0 dirt",
		"/setblock 3 64 0 stone",
	}
	require.Equal(t, in, coalesceFills(in))
}

func TestCoalesce_AxisChangeBreaksTheRun(t *testing.T) {
	in := []string{
		"/setblock 0 64 0 stone",
		"/setblock 1 64 0 stone",
		"/setblock 1 65 0 stone",
		"/setblock 1 66 0 stone",
	}
	// The first two advance on x, the rest on y; only a straight line
	// of three or more merges, so the x-pair is too short: its head
	// (0,64,0) survives as a setblock and (1,64,0) starts the y-run,
	// which merges into one fill up to (1,66,0).
	out := coalesceFills(in)
	require.Contains(t, out, "/setblock 0 64 0 stone")
	require.NotContains(t, out, "/fill 0 64 0 1 66 0 stone")
}

func TestCoalesce_BlockStatesAreNeverMerged(t *testing.T) {
	in := []string{
		"/setblock 0 64 0 oak_stairs[facing=north]",
		"/setblock 1 64 0 oak_stairs[facing=north]",
		"/setblock 2 64 0 oak_stairs[facing=north]",
	}
	require.Equal(t, in, coalesceFills(in))
}

func TestCoalesce_NonSetblockPassesThrough(t *testing.T) {
	in := []string{"/say hello", "//set stone", "/setblock 0 0 0 stone"}
	require.Equal(t, in, coalesceFills(in))
}
