// Package schema maps typed configuration schemas onto command-line flags and
// builds one or more populated instances of a schema from parsed arguments.
//
// # Schemas
//
// A [Schema] is an ordered list of named, typed fields. Build one from field
// declarations, from a Go struct type, or from a YAML [Document]:
//
//	s := schema.MustNew("train",
//		schema.Optional("epochs", schema.Int, 10),
//		schema.Required("lr", schema.Float).Where("value > 0"),
//		schema.Optional("layers", schema.List(schema.Int), []int{64, 64}),
//	)
//
//	s, err := schema.Of[Train]("train")
//
// Field types are the scalars [Int], [Float], [String] and [Bool], and
// containers of a scalar: [List] holds any number of items and [Tuple] holds
// exactly n. A field with a default is optional; one without is required.
//
// # Instances
//
// Registering a schema on a [Parser] under a destination name synthesizes one
// long flag per field. Requesting N instances changes how a flag's values are
// distributed:
//
//   - no values: every instance gets the field default
//   - one value (for containers, one container's worth): broadcast to all
//   - N values: instance i gets value i
//
// Any other count fails with a [*MismatchError]. For example, with N=3:
//
//	--lr 0.1           all three instances use 0.1
//	--lr 0.1 0.2 0.3   one value per instance
//	--lr 0.1 --lr 0.2 --lr 0.3
//	                   the same, one occurrence at a time
//
// A [List] slot is one occurrence of the flag, so "--layers 1 2 --layers 3"
// gives two instances the lists [1 2] and [3]. A [Tuple] slot is every
// consecutive group of n values.
//
// # Errors
//
// Every error matches one of the sentinel errors such as [ErrMissingRequired]
// with [errors.Is], and carries structured attributes naming the destination
// and flag. Parsing is all-or-nothing: on error, no instance is returned.
package schema
