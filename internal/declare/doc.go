// Package declare reads parser trees described as data in HCL files.
//
// A file holds one top-level parser block. Parser blocks nest: an inner
// parser block becomes a sub-parser named after its label, and argument
// blocks declare the arguments of the enclosing parser:
//
//	parser "convert" {
//	  description = "Convert images"
//
//	  argument "path" {
//	    required = true
//	  }
//	  argument "format" {
//	    default = "png"
//	    choices = ["png", "jpeg", "gif"]
//	  }
//	  argument "sizes" {
//	    type = list(number)
//	  }
//
//	  parser "upload" {
//	    argument "bucket" {}
//	  }
//	}
//
// Go code is referenced by name through the registry: converter,
// callback, validate and produce. All references are checked before the
// tree is built.
package declare
