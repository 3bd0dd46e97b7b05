package dex_test

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/dexmodel/dex"
	"github.com/wippyai/dexmodel/errors"
)

var errMismatch = &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindPrototypeMismatch}

func TestNewPrototypeIsPure(t *testing.T) {
	shorty, err := dex.ParseShorty("VI")
	if err != nil {
		t.Fatal(err)
	}
	// disagreeing types are accepted at construction
	p := dex.NewPrototype(shorty, dex.MustParseType("J"), []dex.Type{dex.MustParseType("LFoo;")})

	if p.Shorty().String() != "VI" {
		t.Errorf("Shorty = %v", p.Shorty())
	}
	if p.ReturnType().Kind() != dex.KindLong {
		t.Errorf("ReturnType = %v", p.ReturnType())
	}
	params, ok := p.Parameters()
	if !ok || len(params) != 1 || params[0].Name() != "Foo;" {
		t.Errorf("Parameters = %v, %v", params, ok)
	}
	if err := p.Validate(); !stderrors.Is(err, errMismatch) {
		t.Errorf("Validate = %v, want prototype_mismatch", err)
	}
}

func TestPrototypeAbsentParameters(t *testing.T) {
	p := dex.NewPrototype(dex.NewShortyDescriptor(dex.ShortyVoid), dex.Primitive(dex.KindVoid), nil)
	params, ok := p.Parameters()
	if ok || params != nil {
		t.Errorf("Parameters = %v, %v, want absent", params, ok)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if p.String() != "()void" {
		t.Errorf("String = %q", p.String())
	}
}

func TestPrototypeValidate(t *testing.T) {
	tests := []struct {
		name   string
		shorty string
		ret    string
		params []string
		path   []string
	}{
		{"match", "LIL", "Ljava/lang/String;", []string{"I", "[J"}, nil},
		{"array return", "L", "[[I", nil, nil},
		{"return mismatch", "IL", "J", []string{"LFoo;"}, []string{"return"}},
		{"arity", "VII", "V", []string{"I"}, []string{"params"}},
		{"param mismatch", "VIJ", "V", []string{"I", "D"}, []string{"params", "1"}},
		{"reference vs primitive", "VL", "V", []string{"I"}, []string{"params", "0"}},
		{"last param mismatch", "VIJL", "V", []string{"I", "J", "Z"}, []string{"params", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := dex.DefaultOptions()
			_, err := dex.ParsePrototype(opts, tt.shorty, tt.ret, tt.params...)
			if tt.path == nil {
				if err != nil {
					t.Fatalf("ParsePrototype: %v", err)
				}
				return
			}
			if !stderrors.Is(err, errMismatch) {
				t.Fatalf("ParsePrototype error = %v, want prototype_mismatch", err)
			}
			var e *errors.Error
			stderrors.As(err, &e)
			if len(e.Path) != len(tt.path) {
				t.Fatalf("Path = %v, want %v", e.Path, tt.path)
			}
			for i := range tt.path {
				if e.Path[i] != tt.path[i] {
					t.Errorf("Path = %v, want %v", e.Path, tt.path)
				}
			}

			// without verification the same input builds
			opts.VerifyPrototypes = false
			if _, err := dex.ParsePrototype(opts, tt.shorty, tt.ret, tt.params...); err != nil {
				t.Errorf("unverified ParsePrototype: %v", err)
			}
		})
	}
}

func TestParsePrototypeBadDescriptor(t *testing.T) {
	_, err := dex.ParsePrototype(dex.DefaultOptions(), "VI", "V", "Q")
	if !stderrors.Is(err, errInvalidType) {
		t.Fatalf("error = %v, want invalid_type_descriptor", err)
	}
	var e *errors.Error
	stderrors.As(err, &e)
	if len(e.Path) != 2 || e.Path[0] != "params" || e.Path[1] != "0" {
		t.Errorf("Path = %v", e.Path)
	}

	if _, err := dex.ParsePrototype(dex.DefaultOptions(), "", "V"); err == nil {
		t.Error("empty shorty should fail")
	}
}

func TestPrototypeString(t *testing.T) {
	p, err := dex.ParsePrototype(dex.DefaultOptions(), "ZLI", "Z", "[Ljava/lang/String;", "I")
	if err != nil {
		t.Fatal(err)
	}
	want := "(java/lang/String;[1], int)boolean"
	if p.String() != want {
		t.Errorf("String = %q, want %q", p.String(), want)
	}
}
