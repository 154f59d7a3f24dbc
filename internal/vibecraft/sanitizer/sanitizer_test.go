package sanitizer

import "testing"

func defaultPolicy() *Policy {
	return &Policy{
		SafetyChecksOn:   true,
		DangerousAllowed: false,
		MaxCommandLength: 256,
	}
}

func TestCheck_Accepts(t *testing.T) {
	r := Check("/setblock 100 64 200 stone", defaultPolicy())
	if !r.Accepted {
		t.Fatalf("expected accept, got reject: %s", r.Reason)
	}
}

func TestCheck_EmptyRejected(t *testing.T) {
	r := Check("   ", defaultPolicy())
	if r.Accepted {
		t.Fatal("expected reject for empty command")
	}
}

func TestCheck_TooLongRejected(t *testing.T) {
	policy := defaultPolicy()
	policy.MaxCommandLength = 5
	r := Check("/setblock 100 64 200 stone", policy)
	if r.Accepted {
		t.Fatal("expected reject for over-length command")
	}
}

func TestCheck_DangerousRejectedByDefault(t *testing.T) {
	r := Check("//regen", defaultPolicy())
	if r.Accepted {
		t.Fatal("expected reject for dangerous command")
	}
	if r.Reason == "" {
		t.Fatal("expected a reason naming the rule")
	}
}

func TestCheck_DangerousAllowedWhenConfigured(t *testing.T) {
	policy := defaultPolicy()
	policy.DangerousAllowed = true
	r := Check("//regen", policy)
	if !r.Accepted {
		t.Fatalf("expected accept when dangerous_allowed, got reject: %s", r.Reason)
	}
}

func TestCheck_NewlineRejected(t *testing.T) {
	r := Check("/say hi\n/op attacker", defaultPolicy())
	if r.Accepted {
		t.Fatal("expected reject for embedded newline")
	}
}

func TestCheck_CoordinateGuard(t *testing.T) {
	policy := defaultPolicy()
	policy.BuildBox = &Box{MinX: 0, MinY: 0, MinZ: 0, MaxX: 10, MaxY: 10, MaxZ: 10}

	r := Check("/setblock 100 64 200 stone", policy)
	if r.Accepted {
		t.Fatal("expected reject for out-of-box coordinate")
	}

	r = Check("/setblock 1 2 3 stone", policy)
	if !r.Accepted {
		t.Fatalf("expected accept for in-box coordinate, got reject: %s", r.Reason)
	}
}

func TestCheck_CoordinateGuardBestEffort(t *testing.T) {
	policy := defaultPolicy()
	policy.BuildBox = &Box{MinX: 0, MinY: 0, MinZ: 0, MaxX: 10, MaxY: 10, MaxZ: 10}

	// Non-numeric tokens must never be treated as violating evidence.
	r := Check("/tell Steve hello there friend", policy)
	if !r.Accepted {
		t.Fatalf("expected accept, unparseable tokens must not count as violations: %s", r.Reason)
	}
}

func TestCheck_LargeRegionCommaTriple(t *testing.T) {
	policy := defaultPolicy()
	policy.BuildBox = &Box{MinX: 0, MinY: 0, MinZ: 0, MaxX: 10, MaxY: 10, MaxZ: 10}

	r := Check("//pos1 100,64,200", policy)
	if r.Accepted {
		t.Fatal("expected reject for out-of-box large-region coordinate")
	}
}
