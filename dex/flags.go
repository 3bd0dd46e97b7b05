package dex

import "strings"

// AccessFlags is the raw access_flags bit set of a class, field or method.
//
// Some bits are shared: 0x40 is volatile on a field and bridge on a method,
// 0x80 is transient on a field and varargs on a method. The raw set does not
// know its owner; use Format to render it for a specific one.
type AccessFlags uint32

const (
	AccPublic               AccessFlags = 0x1
	AccPrivate              AccessFlags = 0x2
	AccProtected            AccessFlags = 0x4
	AccStatic               AccessFlags = 0x8
	AccFinal                AccessFlags = 0x10
	AccSynchronized         AccessFlags = 0x20
	AccVolatile             AccessFlags = 0x40
	AccBridge               AccessFlags = 0x40
	AccTransient            AccessFlags = 0x80
	AccVarargs              AccessFlags = 0x80
	AccNative               AccessFlags = 0x100
	AccInterface            AccessFlags = 0x200
	AccAbstract             AccessFlags = 0x400
	AccStrict               AccessFlags = 0x800
	AccSynthetic            AccessFlags = 0x1000
	AccAnnotation           AccessFlags = 0x2000
	AccEnum                 AccessFlags = 0x4000
	AccConstructor          AccessFlags = 0x10000
	AccDeclaredSynchronized AccessFlags = 0x20000
)

// Flags permitted on each owner kind.
const (
	ClassFlags = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal |
		AccInterface | AccAbstract | AccSynthetic | AccAnnotation | AccEnum
	FieldFlags = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal |
		AccVolatile | AccTransient | AccSynthetic | AccEnum
	MethodFlags = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal |
		AccSynchronized | AccBridge | AccVarargs | AccNative | AccAbstract |
		AccStrict | AccSynthetic | AccConstructor | AccDeclaredSynchronized
)

// Owner is the kind of item an AccessFlags value decorates.
type Owner byte

const (
	OwnerClass Owner = iota
	OwnerField
	OwnerMethod
)

func (o Owner) String() string {
	switch o {
	case OwnerClass:
		return "class"
	case OwnerField:
		return "field"
	case OwnerMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Mask returns the flags permitted on the owner.
func (o Owner) Mask() AccessFlags {
	switch o {
	case OwnerClass:
		return ClassFlags
	case OwnerField:
		return FieldFlags
	case OwnerMethod:
		return MethodFlags
	default:
		return 0
	}
}

type flagName struct {
	name string
	flag AccessFlags
}

// canonical rendering order; annotation is never rendered
var flagNames = []flagName{
	{"public", AccPublic},
	{"private", AccPrivate},
	{"protected", AccProtected},
	{"static", AccStatic},
	{"final", AccFinal},
	{"synchronized", AccSynchronized},
	{"volatile", AccVolatile},
	{"bridge", AccBridge},
	{"transient", AccTransient},
	{"varargs", AccVarargs},
	{"native", AccNative},
	{"abstract", AccAbstract},
	{"interface", AccInterface},
	{"strict", AccStrict},
	{"synthetic", AccSynthetic},
	{"enum", AccEnum},
	{"constructor", AccConstructor},
	{"synchronized", AccDeclaredSynchronized},
}

// Contains reports whether every bit of o is set in f.
func (f AccessFlags) Contains(o AccessFlags) bool { return f&o == o }

// Any reports whether any bit of o is set in f.
func (f AccessFlags) Any(o AccessFlags) bool { return f&o != 0 }

// Union returns f | o.
func (f AccessFlags) Union(o AccessFlags) AccessFlags { return f | o }

// Intersect returns f & o.
func (f AccessFlags) Intersect(o AccessFlags) AccessFlags { return f & o }

// Valid reports whether f only uses bits permitted on the owner.
func (f AccessFlags) Valid(owner Owner) bool { return f&^owner.Mask() == 0 }

// String renders every recognized flag without regard to owner, so a shared
// bit shows both of its meanings.
func (f AccessFlags) String() string {
	return f.render(flagNames)
}

// Format renders the flags as they read on the given owner. Bits that do not
// apply to the owner are dropped, and a shared bit renders only the meaning
// it has for the owner.
func (f AccessFlags) Format(owner Owner) string {
	masked := f & owner.Mask()
	names := make([]flagName, 0, len(flagNames))
	for _, n := range flagNames {
		switch {
		case owner != OwnerField && (n.name == "volatile" || n.name == "transient"):
			continue
		case owner != OwnerMethod && (n.name == "bridge" || n.name == "varargs"):
			continue
		case n.flag == AccDeclaredSynchronized && masked.Contains(AccSynchronized):
			continue
		}
		names = append(names, n)
	}
	return masked.render(names)
}

func (f AccessFlags) render(names []flagName) string {
	var b strings.Builder
	for _, n := range names {
		if f.Contains(n.flag) {
			b.WriteString(n.name)
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}
