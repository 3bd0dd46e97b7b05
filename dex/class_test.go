package dex_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/dexmodel/dex"
	"github.com/wippyai/dexmodel/errors"
)

func TestClassAbsentFields(t *testing.T) {
	c := dex.NewClass(0, dex.AccPublic, dex.NoIndex, nil, dex.NoIndex, nil, nil, nil)

	if _, ok := c.SuperclassIndex(); ok {
		t.Error("superclass should be absent")
	}
	if _, ok := c.SourceFileIndex(); ok {
		t.Error("source file should be absent")
	}
	if c.Annotations() != nil || c.Data() != nil || c.StaticValues() != nil {
		t.Error("absent records should be nil")
	}
	if len(c.Interfaces()) != 0 {
		t.Errorf("Interfaces = %v", c.Interfaces())
	}
	if err := c.CheckStaticValues(0); err != nil {
		t.Errorf("CheckStaticValues: %v", err)
	}
}

func TestClassAccessors(t *testing.T) {
	ifaces := []dex.Type{dex.MustParseType("Ljava/io/Serializable;"), dex.MustParseType("Ljava/lang/Runnable;")}
	dir := dex.NewAnnotationsDirectory(nil, nil, nil, nil)
	body := struct{ methods int }{methods: 3}
	statics := dex.NewArray(dex.IntValue(5))

	c := dex.NewClass(12, dex.AccPublic|dex.AccFinal, 3, ifaces, 40, dir, body, statics)

	if c.ClassIndex() != 12 {
		t.Errorf("ClassIndex = %d", c.ClassIndex())
	}
	if c.AccessFlags() != dex.AccPublic|dex.AccFinal {
		t.Errorf("AccessFlags = %v", c.AccessFlags())
	}
	if idx, ok := c.SuperclassIndex(); !ok || idx != 3 {
		t.Errorf("SuperclassIndex = %d, %v", idx, ok)
	}
	if idx, ok := c.SourceFileIndex(); !ok || idx != 40 {
		t.Errorf("SourceFileIndex = %d, %v", idx, ok)
	}
	if got := c.Interfaces(); len(got) != 2 || got[1].Name() != "java/lang/Runnable;" {
		t.Errorf("Interfaces = %v", got)
	}
	if c.Annotations() != dir || c.StaticValues() != statics {
		t.Error("records not kept")
	}
	if c.Data() != body {
		t.Errorf("Data = %v", c.Data())
	}
	if s := c.String(); !strings.Contains(s, "type=12") || !strings.Contains(s, "public final") {
		t.Errorf("String = %q", s)
	}
}

func TestClassStaticValue(t *testing.T) {
	c := dex.NewClass(1, 0, 0, nil, dex.NoIndex, nil, nil,
		dex.NewArray(dex.IntValue(7), dex.StringValue(2)))

	if v := c.StaticValue(0, dex.MustParseType("I")); v.Int() != 7 {
		t.Errorf("StaticValue(0) = %v", v.Int())
	}
	if v := c.StaticValue(1, dex.MustParseType("Ljava/lang/String;")); v.Type() != dex.ValueString || v.Index() != 2 {
		t.Errorf("StaticValue(1) = %v", v.Type())
	}
	// beyond the stored prefix the field's zero value applies
	if v := c.StaticValue(2, dex.MustParseType("J")); v.Type() != dex.ValueLong || v.Int() != 0 {
		t.Errorf("StaticValue(2) = %v %d", v.Type(), v.Int())
	}
	if v := c.StaticValue(3, dex.MustParseType("[I")); !v.IsNull() {
		t.Errorf("StaticValue(3) = %v", v.Type())
	}

	if err := c.CheckStaticValues(2); err != nil {
		t.Errorf("CheckStaticValues(2): %v", err)
	}
	err := c.CheckStaticValues(1)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindOutOfBounds}) {
		t.Errorf("CheckStaticValues(1) = %v, want out_of_bounds", err)
	}
}
