// Package cliflag groups pflag.FlagSets by name for organized --help
// output and normalizes flag names.
package cliflag

import (
	"bytes"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// NamedFlagSets stores flag sets in the order they were added, keyed by
// a human-readable group name ("grpc", "generic", "bridge", ...).
type NamedFlagSets struct {
	Order    []string
	FlagSets map[string]*pflag.FlagSet
}

// FlagSet returns the flag set for name, creating it if necessary.
func (nfs *NamedFlagSets) FlagSet(name string) *pflag.FlagSet {
	if nfs.FlagSets == nil {
		nfs.FlagSets = map[string]*pflag.FlagSet{}
	}
	if _, ok := nfs.FlagSets[name]; !ok {
		fs := pflag.NewFlagSet(name, pflag.ExitOnError)
		fs.SetNormalizeFunc(WordSepNormalizeFunc)
		nfs.FlagSets[name] = fs
		nfs.Order = append(nfs.Order, name)
	}
	return nfs.FlagSets[name]
}

// PrintSections writes each named flag set's usage under its own header.
func (nfs *NamedFlagSets) PrintSections(cols int) string {
	var buf bytes.Buffer
	for _, name := range nfs.Order {
		fs := nfs.FlagSets[name]
		if !fs.HasFlags() {
			continue
		}
		buf.WriteString(strings.ToUpper(name[:1]) + name[1:] + " flags:\n")
		fs.SetOutput(&buf)
		fs.PrintDefaults()
		buf.WriteString("\n")
	}
	return buf.String()
}

// WordSepNormalizeFunc rewrites underscores to dashes in flag names so
// "max_command_length" and "max-command-length" resolve identically.
func WordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if strings.Contains(name, "_") {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	}
	return pflag.NormalizedName(name)
}

// WarnWordSepNormalizeFunc is the normalizer set on the root command; it
// applies the same underscore-to-dash rewrite as WordSepNormalizeFunc and
// does not log or report collisions between the two styles.
func WarnWordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return WordSepNormalizeFunc(f, name)
}

// SortedNames returns the group names in alphabetical order, useful for
// deterministic --help output independent of registration order.
func (nfs *NamedFlagSets) SortedNames() []string {
	names := make([]string, 0, len(nfs.FlagSets))
	for name := range nfs.FlagSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
