// Package hcl_adapter loads chain declarations written in HCL.
//
// A file may declare any number of top-level `component` and `chain` blocks:
//
//	component "auth:1.2" {
//	  class    = "generic"
//	  provides = ["security"]
//	  before   = ["render"]
//	  config = {
//	    realm   = upper(env.REALM)
//	    retries = 3
//	  }
//	}
//
//	chain "default" {
//	  components = ["auth:1", "render"]
//	  inherits   = ["base"]
//	  excludes   = ["legacy"]
//
//	  phase "setup" {
//	    before = ["auth"]
//	  }
//
//	  component "local" {
//	    after = ["auth"]
//	  }
//	}
//
// The `config` attribute is evaluated with the process environment available
// as `env` and the functions upper, lower, join and format.
package hcl_adapter
