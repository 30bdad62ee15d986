// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store provides cmdline.Store implementations.
//
// Static serves a catalog written as Go values. File reads a catalog
// document from disk and resolves the names in it through a Registry.
//
// A TOML catalog looks like:
//
//	[[action]]
//	name = "copy"
//	description = "Copy a file"
//
//	[[option]]
//	name = "dest"
//	short = "d"
//	arity = "one"
//	required_for = ["copy"]
//	actions = ["copy"]
//
//	  [[option.validator]]
//	  type = "not_empty"
//
//	  [option.handler]
//	  type = "set"
//	  property = "dest"
//
// The same document in HCL:
//
//	action "copy" {
//	  description = "Copy a file"
//	}
//
//	option "dest" {
//	  short        = "d"
//	  arity        = "one"
//	  required_for = ["copy"]
//	  actions      = ["copy"]
//	  validator "not_empty" {}
//	  handler "set" {
//	    property = "dest"
//	  }
//	}
//
// YAML uses the same field names under top-level "actions" and "options"
// lists, with "validators" for the validator list.
package store
