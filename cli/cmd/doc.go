// Package cmd implements the subcommands of schemaflag: parse, flags and init.
//
// Schema files are named once on the root command and handed to each
// subcommand through its context with [WithSchemaFiles].
package cmd
