package dex_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/dexmodel/dex"
	"github.com/wippyai/dexmodel/errors"
)

var errInvalidType = &errors.Error{Phase: errors.PhaseParse, Kind: errors.KindInvalidTypeDescriptor}

func TestParseTypePrimitives(t *testing.T) {
	tests := []struct {
		desc string
		kind dex.TypeKind
		want string
	}{
		{"V", dex.KindVoid, "void"},
		{"Z", dex.KindBoolean, "boolean"},
		{"B", dex.KindByte, "byte"},
		{"S", dex.KindShort, "short"},
		{"C", dex.KindChar, "char"},
		{"I", dex.KindInt, "int"},
		{"J", dex.KindLong, "long"},
		{"F", dex.KindFloat, "float"},
		{"D", dex.KindDouble, "double"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := dex.ParseType(tt.desc)
			if err != nil {
				t.Fatalf("ParseType(%q): %v", tt.desc, err)
			}
			if got.Kind() != tt.kind {
				t.Errorf("Kind = %v, want %v", got.Kind(), tt.kind)
			}
			if got.String() != tt.want {
				t.Errorf("String = %q, want %q", got.String(), tt.want)
			}
			if got.Descriptor() != tt.desc {
				t.Errorf("Descriptor = %q, want %q", got.Descriptor(), tt.desc)
			}
			if !got.IsPrimitive() || got.IsReference() {
				t.Errorf("%q should be primitive", tt.desc)
			}
		})
	}
}

func TestParseTypeIgnoresTrailing(t *testing.T) {
	got, err := dex.ParseType("IJunk")
	if err != nil {
		t.Fatalf("ParseType: %v", err)
	}
	if got.Kind() != dex.KindInt {
		t.Errorf("Kind = %v, want int", got.Kind())
	}
}

func TestParseTypeReference(t *testing.T) {
	got, err := dex.ParseType("Lcom/example/Foo;")
	if err != nil {
		t.Fatalf("ParseType: %v", err)
	}
	if got.Kind() != dex.KindReference {
		t.Fatalf("Kind = %v, want reference", got.Kind())
	}
	if got.Name() != "com/example/Foo;" {
		t.Errorf("Name = %q, want %q", got.Name(), "com/example/Foo;")
	}
	if got.String() != "com/example/Foo;" {
		t.Errorf("String = %q", got.String())
	}
	if got.Descriptor() != "Lcom/example/Foo;" {
		t.Errorf("Descriptor = %q", got.Descriptor())
	}
	if !got.IsReference() || got.IsPrimitive() {
		t.Error("reference type misclassified")
	}
}

func TestParseTypeArrays(t *testing.T) {
	elements := []string{"I", "J", "Z", "Ljava/lang/String;"}
	for _, d := range elements {
		for n := 1; n <= 4; n++ {
			desc := strings.Repeat("[", n) + d
			got, err := dex.ParseType(desc)
			if err != nil {
				t.Fatalf("ParseType(%q): %v", desc, err)
			}
			if got.Kind() != dex.KindArray {
				t.Fatalf("ParseType(%q).Kind = %v", desc, got.Kind())
			}
			if got.Dimensions() != n {
				t.Errorf("ParseType(%q).Dimensions = %d, want %d", desc, got.Dimensions(), n)
			}
			want := dex.MustParseType(d)
			if !got.Element().Equal(want) {
				t.Errorf("ParseType(%q).Element = %v, want %v", desc, got.Element(), want)
			}
			if got.Element().Kind() == dex.KindArray {
				t.Errorf("ParseType(%q) element is nested array", desc)
			}
			if got.Descriptor() != desc {
				t.Errorf("Descriptor = %q, want %q", got.Descriptor(), desc)
			}
		}
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"[I", "int[1]"},
		{"[[I", "int[2]"},
		{"[[[Ljava/lang/Object;", "java/lang/Object;[3]"},
	}
	for _, tt := range tests {
		if got := dex.MustParseType(tt.desc).String(); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.desc, got, tt.want)
		}
	}
}

func TestParseTypeErrors(t *testing.T) {
	tests := []string{"", "[", "[[[", "X", "[Q", "l"}
	for _, desc := range tests {
		t.Run(desc, func(t *testing.T) {
			_, err := dex.ParseType(desc)
			if err == nil {
				t.Fatalf("ParseType(%q) should fail", desc)
			}
			if !stderrors.Is(err, errInvalidType) {
				t.Errorf("ParseType(%q) error = %v, want invalid_type_descriptor", desc, err)
			}
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Value != desc {
				t.Errorf("error should carry the descriptor %q", desc)
			}
		})
	}
}

func TestParseTypeRankLimit(t *testing.T) {
	ok := strings.Repeat("[", dex.MaxArrayDimensions) + "I"
	if _, err := dex.ParseType(ok); err != nil {
		t.Fatalf("rank %d: %v", dex.MaxArrayDimensions, err)
	}
	tooDeep := strings.Repeat("[", dex.MaxArrayDimensions+1) + "I"
	if _, err := dex.ParseType(tooDeep); !stderrors.Is(err, errInvalidType) {
		t.Errorf("rank %d: error = %v", dex.MaxArrayDimensions+1, err)
	}
}

func TestArrayOf(t *testing.T) {
	inner, err := dex.ArrayOf(dex.Primitive(dex.KindInt), 2)
	if err != nil {
		t.Fatalf("ArrayOf: %v", err)
	}
	outer, err := dex.ArrayOf(inner, 1)
	if err != nil {
		t.Fatalf("ArrayOf: %v", err)
	}
	if outer.Dimensions() != 3 || outer.Element().Kind() != dex.KindInt {
		t.Errorf("ArrayOf flattened to %v", outer)
	}
	if !outer.Equal(dex.MustParseType("[[[I")) {
		t.Errorf("ArrayOf = %v, want int[3]", outer)
	}
	if _, err := dex.ArrayOf(dex.Reference("Foo;"), 0); err == nil {
		t.Error("rank 0 should fail")
	}
}

func TestPrimitivePanicsOnReference(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Primitive(KindReference) should panic")
		}
	}()
	dex.Primitive(dex.KindReference)
}

func TestTypeEqual(t *testing.T) {
	if dex.MustParseType("[I").Equal(dex.MustParseType("[J")) {
		t.Error("int[1] should not equal long[1]")
	}
	if dex.MustParseType("LFoo;").Equal(dex.MustParseType("LBar;")) {
		t.Error("different names should not be equal")
	}
	if !dex.MustParseType("J").IsWide() || dex.MustParseType("I").IsWide() {
		t.Error("IsWide misclassified")
	}
}
