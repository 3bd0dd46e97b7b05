package dex_test

import (
	"testing"

	"github.com/wippyai/dexmodel/dex"
)

func TestAccessFlagsString(t *testing.T) {
	tests := []struct {
		flags dex.AccessFlags
		want  string
	}{
		{0, ""},
		{dex.AccPublic, "public"},
		{0x21, "public synchronized"},
		{0x40C, "protected static abstract"},
		{0x2601, "public abstract interface"},
		{dex.AccVolatile, "volatile bridge"},
		{dex.AccTransient, "transient varargs"},
		{dex.AccAnnotation, ""},
		{dex.AccConstructor | dex.AccDeclaredSynchronized, "constructor synchronized"},
		{dex.AccPrivate | dex.AccFinal | dex.AccSynthetic | dex.AccEnum, "private final synthetic enum"},
		{dex.AccNative | dex.AccStrict, "native strict"},
	}

	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("AccessFlags(%#x).String() = %q, want %q", uint32(tt.flags), got, tt.want)
		}
	}
}

func TestAccessFlagsFormat(t *testing.T) {
	tests := []struct {
		flags dex.AccessFlags
		owner dex.Owner
		want  string
	}{
		{0x41, dex.OwnerField, "public volatile"},
		{0x41, dex.OwnerMethod, "public bridge"},
		{0x41, dex.OwnerClass, "public"},
		{0x82, dex.OwnerField, "private transient"},
		{0x82, dex.OwnerMethod, "private varargs"},
		{0x2601, dex.OwnerClass, "public abstract interface"},
		{dex.AccSynchronized | dex.AccDeclaredSynchronized, dex.OwnerMethod, "synchronized"},
		{dex.AccDeclaredSynchronized, dex.OwnerMethod, "synchronized"},
		{dex.AccNative | dex.AccPublic, dex.OwnerField, "public"},
		{dex.AccConstructor | dex.AccPublic, dex.OwnerMethod, "public constructor"},
	}

	for _, tt := range tests {
		if got := tt.flags.Format(tt.owner); got != tt.want {
			t.Errorf("AccessFlags(%#x).Format(%v) = %q, want %q", uint32(tt.flags), tt.owner, got, tt.want)
		}
	}
}

func TestAccessFlagsSetOps(t *testing.T) {
	f := dex.AccPublic.Union(dex.AccStatic)
	if !f.Contains(dex.AccPublic | dex.AccStatic) {
		t.Error("Union lost a bit")
	}
	if f.Contains(dex.AccPublic | dex.AccFinal) {
		t.Error("Contains should require every bit")
	}
	if !f.Any(dex.AccFinal | dex.AccStatic) {
		t.Error("Any should match a single bit")
	}
	if got := f.Intersect(dex.AccStatic | dex.AccFinal); got != dex.AccStatic {
		t.Errorf("Intersect = %#x", uint32(got))
	}
}

func TestAccessFlagsValid(t *testing.T) {
	tests := []struct {
		flags dex.AccessFlags
		owner dex.Owner
		want  bool
	}{
		{dex.AccPublic | dex.AccInterface | dex.AccAnnotation, dex.OwnerClass, true},
		{dex.AccNative, dex.OwnerClass, false},
		{dex.AccVolatile | dex.AccTransient, dex.OwnerField, true},
		{dex.AccAbstract, dex.OwnerField, false},
		{dex.AccBridge | dex.AccConstructor, dex.OwnerMethod, true},
		{dex.AccInterface, dex.OwnerMethod, false},
	}
	for _, tt := range tests {
		if got := tt.flags.Valid(tt.owner); got != tt.want {
			t.Errorf("AccessFlags(%#x).Valid(%v) = %v, want %v", uint32(tt.flags), tt.owner, got, tt.want)
		}
	}
}
