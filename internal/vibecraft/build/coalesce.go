package build

import (
	"fmt"
	"strconv"
	"strings"
)

// setblockCmd is one parsed "/setblock x y z block [mode]" command.
type setblockCmd struct {
	x, y, z int
	block   string
	mode    string
}

// coalesceFills merges runs of adjacent /setblock commands that place
// the same block along a single axis into one vanilla /fill command.
// It is a strict block-preserving rewrite: anything it cannot prove
// mergeable is emitted unmerged, in the original order.
func coalesceFills(commands []string) []string {
	out := make([]string, 0, len(commands))

	i := 0
	for i < len(commands) {
		first, ok := parseSetblock(commands[i])
		if !ok {
			out = append(out, commands[i])
			i++
			continue
		}

		// Extend the run while the next command places the same block
		// one step further along the same axis.
		run := []setblockCmd{first}
		for i+len(run) < len(commands) {
			next, ok := parseSetblock(commands[i+len(run)])
			if !ok || !sameLine(run, next) {
				break
			}
			run = append(run, next)
		}

		if len(run) >= 3 {
			last := run[len(run)-1]
			fill := fmt.Sprintf("/fill %d %d %d %d %d %d %s",
				first.x, first.y, first.z, last.x, last.y, last.z, first.block)
			if first.mode != "" {
				fill += " " + first.mode
			}
			out = append(out, fill)
		} else {
			// Too short to pay for a fill; emit the head unmerged and
			// let the tail try to form its own run.
			out = append(out, commands[i])
			i++
			continue
		}
		i += len(run)
	}

	return out
}

// sameLine reports whether next extends run by exactly one block along
// the single axis the run already advances on, with the same block and
// mode. A run of length 1 may extend along any one axis.
func sameLine(run []setblockCmd, next setblockCmd) bool {
	first := run[0]
	last := run[len(run)-1]

	if next.block != first.block || next.mode != first.mode {
		return false
	}

	dx, dy, dz := next.x-last.x, next.y-last.y, next.z-last.z
	if abs(dx)+abs(dy)+abs(dz) != 1 {
		return false
	}

	if len(run) == 1 {
		return true
	}

	// Axis is fixed by the first step of the run.
	sx, sy, sz := run[1].x-first.x, run[1].y-first.y, run[1].z-first.z
	return dx == sx && dy == sy && dz == sz
}

// parseSetblock recognizes "/setblock x y z block [mode]" with a plain
// block id only: bracketed states or braced NBT make the command
// ineligible for merging, since /fill semantics with states are not
// guaranteed identical.
func parseSetblock(command string) (setblockCmd, bool) {
	fields := strings.Fields(command)
	if len(fields) < 5 || len(fields) > 6 || fields[0] != "/setblock" {
		return setblockCmd{}, false
	}

	x, errX := strconv.Atoi(fields[1])
	y, errY := strconv.Atoi(fields[2])
	z, errZ := strconv.Atoi(fields[3])
	if errX != nil || errY != nil || errZ != nil {
		return setblockCmd{}, false
	}

	block := fields[4]
	if strings.ContainsAny(block, "[{") {
		return setblockCmd{}, false
	}

	cmd := setblockCmd{x: x, y: y, z: z, block: block}
	if len(fields) == 6 {
		cmd.mode = fields[5]
	}
	return cmd, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
