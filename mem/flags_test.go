package mem

import "testing"

// Test_Flags_Algebra covers the bitwise laws the combinators promise.
func Test_Flags_Algebra(t *testing.T) {
	values := []Flags{0, FlagZero, FlagNoWait, FlagZero | FlagAccount,
		FlagHighPriority | FlagNoWait, 0xDEADBEEF}

	for _, a := range values {
		for _, b := range values {
			if a.Or(b) != b.Or(a) {
				t.Fatalf("Or not commutative for %x, %x", uint32(a), uint32(b))
			}
			if a.And(b) != b.And(a) {
				t.Fatalf("And not commutative for %x, %x", uint32(a), uint32(b))
			}
		}
		if a.And(a) != a {
			t.Fatalf("And not idempotent for %x", uint32(a))
		}
		if !a.Contains(a) {
			t.Fatalf("Contains(self) false for %x", uint32(a))
		}
		if !a.Contains(0) {
			t.Fatalf("Contains(empty) false for %x", uint32(a))
		}
	}
}

// Test_Flags_Complement pins the fixed 32-bit complement semantics.
func Test_Flags_Complement(t *testing.T) {
	if Flags(0).Not() != Flags(0xFFFFFFFF) {
		t.Fatalf("Not(empty) = %x, want all ones", uint32(Flags(0).Not()))
	}
	a := FlagZero | FlagAccount
	if got := a.Or(a.Not()); got != Flags(0xFFFFFFFF) {
		t.Fatalf("a | ^a = %x, want all ones", uint32(got))
	}
	if a.Or(a.Not()).IsEmpty() {
		t.Fatal("union with complement reported empty")
	}
	if !a.And(a.Not()).IsEmpty() {
		t.Fatal("intersection with complement not empty")
	}
}

// Test_Flags_Contains_IsSubsetNotEquality checks the subset reading: a
// superset contains the subset even with unrelated bits set.
func Test_Flags_Contains_IsSubsetNotEquality(t *testing.T) {
	have := FlagZero | FlagNoWait | FlagAccount
	if !have.Contains(FlagNoWait) {
		t.Fatal("superset does not contain member")
	}
	if !have.Contains(FlagZero | FlagAccount) {
		t.Fatal("superset does not contain subset")
	}
	if FlagZero.Contains(have) {
		t.Fatal("subset claims to contain superset")
	}
}

func Test_Flags_IsEmpty(t *testing.T) {
	if !Flags(0).IsEmpty() {
		t.Fatal("zero value not empty")
	}
	if FlagZero.IsEmpty() {
		t.Fatal("FlagZero reported empty")
	}
}

func Test_Flags_String(t *testing.T) {
	cases := []struct {
		in   Flags
		want string
	}{
		{0, "none"},
		{FlagZero, "zero"},
		{FlagZero | FlagNoWait, "zero|nowait"},
		{FlagHighPriority, "highprio"},
		{FlagAccount | Flags(1 << 30), "account|0x40000000"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("String(%x) = %q, want %q", uint32(c.in), got, c.want)
		}
	}
}
