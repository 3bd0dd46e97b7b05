package dexmodel

// ClassBody is the decoded class_data_item of a class: its fields, methods
// and their code. It is produced by the class-body decoder and stored on a
// class without being inspected.
type ClassBody any
