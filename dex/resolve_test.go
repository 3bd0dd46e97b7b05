package dex_test

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/dexmodel/dex"
	"github.com/wippyai/dexmodel/errors"
)

type countingTables struct {
	dex.SliceTables
	lookups int
}

func (c *countingTables) TypeDescriptor(idx uint32) (string, error) {
	c.lookups++
	return c.SliceTables.TypeDescriptor(idx)
}

func newTables() *countingTables {
	return &countingTables{SliceTables: dex.SliceTables{
		Strings: []string{"Ljava/lang/Object;", "LFoo;", "Foo.java", "value", "[I", "Q"},
		Types:   []uint32{0, 1, 4, 5},
	}}
}

func TestResolverTypes(t *testing.T) {
	tables := newTables()
	r, err := dex.NewResolver(tables, dex.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	c := dex.NewClass(1, dex.AccPublic, 0, nil, 2, nil, nil, nil)
	ct, err := r.ClassType(c)
	if err != nil || ct.Name() != "Foo;" {
		t.Fatalf("ClassType = %v, %v", ct, err)
	}
	super, ok, err := r.Superclass(c)
	if err != nil || !ok || super.Name() != "java/lang/Object;" {
		t.Errorf("Superclass = %v, %v, %v", super, ok, err)
	}
	src, ok, err := r.SourceFile(c)
	if err != nil || !ok || src != "Foo.java" {
		t.Errorf("SourceFile = %q, %v, %v", src, ok, err)
	}

	arr, err := r.Type(2)
	if err != nil || arr.Dimensions() != 1 {
		t.Errorf("Type(2) = %v, %v", arr, err)
	}

	root := dex.NewClass(0, 0, dex.NoIndex, nil, dex.NoIndex, nil, nil, nil)
	if _, ok, err := r.Superclass(root); ok || err != nil {
		t.Errorf("root Superclass = %v, %v", ok, err)
	}
	if _, ok, err := r.SourceFile(root); ok || err != nil {
		t.Errorf("root SourceFile = %v, %v", ok, err)
	}
}

func TestResolverCaches(t *testing.T) {
	tables := newTables()
	r, err := dex.NewResolver(tables, dex.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if _, err := r.Type(1); err != nil {
			t.Fatal(err)
		}
	}
	if tables.lookups != 1 {
		t.Errorf("lookups = %d, want 1", tables.lookups)
	}
	if r.Cached() != 1 {
		t.Errorf("Cached = %d, want 1", r.Cached())
	}
}

func TestResolverEvicts(t *testing.T) {
	opts := dex.DefaultOptions()
	opts.TypeCacheSize = 1
	tables := newTables()
	r, err := dex.NewResolver(tables, opts)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = r.Type(0)
	_, _ = r.Type(1)
	_, _ = r.Type(0)
	if tables.lookups != 3 {
		t.Errorf("lookups = %d, want 3", tables.lookups)
	}
	if r.Cached() != 1 {
		t.Errorf("Cached = %d, want 1", r.Cached())
	}
}

func TestResolverErrors(t *testing.T) {
	r, err := dex.NewResolver(newTables(), dex.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Type(3); !stderrors.Is(err, errInvalidType) {
		t.Errorf("Type(3) = %v, want invalid_type_descriptor", err)
	}
	outOfBounds := &errors.Error{Phase: errors.PhaseResolve, Kind: errors.KindOutOfBounds}
	if _, err := r.Type(99); !stderrors.Is(err, outOfBounds) {
		t.Errorf("Type(99) = %v, want out_of_bounds", err)
	}
	if _, err := r.String(99); !stderrors.Is(err, outOfBounds) {
		t.Errorf("String(99) = %v, want out_of_bounds", err)
	}
	if r.Cached() != 0 {
		t.Errorf("failed lookups were cached: %d", r.Cached())
	}
}

func TestResolverAnnotation(t *testing.T) {
	r, err := dex.NewResolver(newTables(), dex.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	a := dex.NewEncodedAnnotation(1, dex.NewAnnotationElement(3, dex.IntValue(1)))
	typ, err := r.AnnotationType(a)
	if err != nil || typ.Name() != "Foo;" {
		t.Errorf("AnnotationType = %v, %v", typ, err)
	}
	name, err := r.ElementName(a.Elements()[0])
	if err != nil || name != "value" {
		t.Errorf("ElementName = %q, %v", name, err)
	}
}
