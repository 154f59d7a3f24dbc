package sanitizer

// Policy is the frozen, process-lifetime safety policy the Sanitizer
// enforces. It is derived from Configuration once at startup and never
// mutated afterwards.
type Policy struct {
	SafetyChecksOn   bool
	DangerousAllowed bool
	MaxCommandLength int
	BuildBox         *Box // nil means no coordinate restriction
}

// Box is an axis-aligned bounding box of permitted build coordinates.
type Box struct {
	MinX, MinY, MinZ int
	MaxX, MaxY, MaxZ int
}

// Contains reports whether (x, y, z) lies inside the box, inclusive.
func (b *Box) Contains(x, y, z int) bool {
	if b == nil {
		return true
	}
	return x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY &&
		z >= b.MinZ && z <= b.MaxZ
}

// dangerousFirstTokens is the closed, documented set of destructive
// command verbs rejected unless DangerousAllowed is set.
var dangerousFirstTokens = map[string]string{
	"/mcregen":      "world regeneration",
	"//regen":       "world regeneration",
	"/forceload":    "chunk deletion",
	"//removeabove": "remove above/below/near sweep",
	"//removebelow": "remove above/below/near sweep",
	"//removenear":  "remove above/below/near sweep",
	"/op":           "administrative verb",
	"/deop":         "administrative verb",
	"/stop":         "administrative verb",
	"/save-off":     "administrative verb",
	"/whitelist":    "administrative verb",
	"/ban":          "administrative verb",
	"/banip":        "administrative verb",
}

// DangerousReason returns the documented rule name for a dangerous first
// token, or "" if the token isn't in the closed set.
func DangerousReason(firstToken string) string {
	return dangerousFirstTokens[firstToken]
}
