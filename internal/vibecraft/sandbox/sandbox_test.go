package sandbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun_SimpleLoopEmitsCommands(t *testing.T) {
	src := `
commands = []
for i in range(5):
    commands.append("/setblock " + str(i) + " 64 0 stone")
`
	out, logs, err := Run(context.Background(), src, DefaultQuotas())
	require.NoError(t, err)
	require.Empty(t, logs)
	require.Len(t, out, 5)
	require.Equal(t, "/setblock 0 64 0 stone", out[0])
	require.Equal(t, "/setblock 4 64 0 stone", out[4])
}

func TestRun_MathHelpers(t *testing.T) {
	src := `
commands = []
r = int(math.sqrt(16))
commands.append("/say " + str(r))
commands.append("/say " + str(abs(-3)))
`
	out, _, err := Run(context.Background(), src, DefaultQuotas())
	require.NoError(t, err)
	require.Equal(t, []string{"/say 4", "/say 3"}, out)
}

func TestRun_RejectsDef(t *testing.T) {
	src := `
def helper():
    return 1
commands = []
`
	_, _, err := Run(context.Background(), src, DefaultQuotas())
	require.ErrorContains(t, err, "function definitions are not allowed")
}

func TestRun_RejectsWhile(t *testing.T) {
	src := `
commands = []
i = 0
while i < 10:
    i = i + 1
`
	_, _, err := Run(context.Background(), src, DefaultQuotas())
	require.ErrorContains(t, err, "while loops are not allowed")
}

func TestRun_RejectsLoad(t *testing.T) {
	src := `
load("foo.star", "bar")
commands = []
`
	_, _, err := Run(context.Background(), src, DefaultQuotas())
	require.ErrorContains(t, err, "imports are not allowed")
}

func TestRun_RejectsLambda(t *testing.T) {
	src := `
f = lambda x: x + 1
commands = []
`
	_, _, err := Run(context.Background(), src, DefaultQuotas())
	require.ErrorContains(t, err, "lambda")
}

func TestRun_RejectsDunderAttr(t *testing.T) {
	src := `
commands = []
x = commands.__class__
`
	_, _, err := Run(context.Background(), src, DefaultQuotas())
	require.ErrorContains(t, err, "not allowed")
}

func TestRun_RejectsDisallowedCall(t *testing.T) {
	src := `
commands = []
print("hi")
`
	_, _, err := Run(context.Background(), src, DefaultQuotas())
	require.ErrorContains(t, err, `call to "print" is not allowed`)
}

func TestRun_RejectsDisallowedMathAttr(t *testing.T) {
	src := `
commands = []
x = math.log(2)
`
	_, _, err := Run(context.Background(), src, DefaultQuotas())
	require.ErrorContains(t, err, "not part of the allowed math module")
}

func TestRun_MissingCommandsBinding(t *testing.T) {
	src := `x = 1`
	_, _, err := Run(context.Background(), src, DefaultQuotas())
	require.ErrorContains(t, err, `must bind a "commands" list`)
}

func TestRun_NonStringCommandElement(t *testing.T) {
	src := `commands = [1, 2, 3]`
	_, _, err := Run(context.Background(), src, DefaultQuotas())
	require.ErrorContains(t, err, "is not a string")
}

func TestRun_CommandListQuota(t *testing.T) {
	src := `
commands = []
for i in range(10):
    commands.append("/say " + str(i))
`
	q := Quotas{MaxIterations: 1000, MaxCommands: 3, MaxWallClock: time.Second}
	_, _, err := Run(context.Background(), src, q)
	require.ErrorContains(t, err, "exceeds quota")
}

func TestRun_IterationQuota(t *testing.T) {
	src := `
commands = []
for i in range(1000):
    commands.append("/say " + str(i))
`
	q := Quotas{MaxIterations: 10, MaxCommands: 10_000, MaxWallClock: time.Second}
	_, _, err := Run(context.Background(), src, q)
	require.ErrorContains(t, err, "iteration quota exceeded")
}

func TestRun_WallClockQuota(t *testing.T) {
	// No native sleep builtin is exposed, so the wall-clock watchdog is
	// exercised indirectly: a huge but permitted iteration budget run
	// under a near-zero timeout must still fail closed rather than hang.
	src := `
commands = []
for i in range(200000):
    commands.append("/say " + str(i))
`
	q := Quotas{MaxIterations: 10_000_000, MaxCommands: 1_000_000, MaxWallClock: time.Nanosecond}
	_, _, err := Run(context.Background(), src, q)
	require.Error(t, err)
}

func TestRun_SyntaxError(t *testing.T) {
	src := `commands = [`
	_, _, err := Run(context.Background(), src, DefaultQuotas())
	require.ErrorContains(t, err, "syntax error")
}
