// Package dexmodel provides a Go model of the class container of the Dalvik
// executable format.
//
// The library turns the index-referencing, tag-encoded structures of a DEX
// file into validated, strongly typed values that disassemblers, verifiers
// and rewriters can traverse safely.
//
// # Architecture Overview
//
//	dexmodel/            Root package with the ClassBody collaborator type
//	├── dex/             Type descriptors, prototypes, access flags, encoded
//	│                    values, annotations and class assembly
//	├── config/          TOML configuration and logger construction
//	├── errors/          Structured error types for debugging
//	└── cmd/dexmodel/    Command line inspector
//
// # Quick Start
//
// Parse descriptors:
//
//	t, err := dex.ParseType("[[Ljava/lang/String;")
//	fmt.Println(t) // "java/lang/String;[2]"
//
//	proto, err := dex.ParsePrototype(dex.DefaultOptions(), "VL", "V", "Ljava/lang/Object;")
//
// Decode an encoded value:
//
//	dec := dex.NewDecoder(dex.DefaultOptions())
//	v, err := dec.DecodeValue(data)
//
// # Shared Tables
//
// Every model value refers to strings, types, fields and methods by index
// into tables owned by the container. Nothing in the model resolves them;
// use dex.Resolver with the container's tables when names are needed.
//
// # Thread Safety
//
// Model values are immutable once built and safe for concurrent reads.
// Decoder is safe for concurrent use. Classes are independent of each other
// and can be assembled in parallel with dex.Assemble.
package dexmodel
