// Package dex models the class container of the Dalvik executable format.
//
// It covers the pieces a class definition is built from: type descriptors
// and their shorty form, prototypes, access flags, encoded values,
// annotations and the annotations directory, and the assembled Class.
//
// # Descriptors
//
//	t, err := dex.ParseType("[[I")            // int[2]
//	s, err := dex.ParseShorty("VLI")          // void (ref, int)
//	p, err := dex.ParsePrototype(opts, "VLI", "V", "Ljava/lang/String;", "I")
//
// Arrays are flattened into a single Type carrying a rank, never nested.
//
// # Access Flags
//
// Bits 0x40 and 0x80 mean different things on fields and methods. String
// renders every meaning of a set bit; Format renders for one owner:
//
//	f := dex.AccPublic | dex.AccVolatile
//	f.Format(dex.OwnerField)  // "public volatile"
//	f.Format(dex.OwnerMethod) // "public bridge"
//
// # Encoded Values
//
// Value is an immutable tagged union. Arrays and annotations nest to any
// depth; the Decoder bounds nesting with Options.MaxDepth, and Walk and
// Depth traverse without recursion.
//
//	dec := dex.NewDecoder(dex.DefaultOptions())
//	v, err := dec.DecodeValue(data)
//	err = dex.Walk(v, func(depth int, v dex.Value) error { ... })
//
// # Indices
//
// Strings, types, fields and methods are referenced by index into tables
// the container owns. A Resolver maps them through a Tables implementation.
package dex
