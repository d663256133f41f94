// Package model provides the parsed universe of one configuration
// generation: every declared component and every chain specification, with
// ids and references already parsed into componentid values.
//
// # Core Concepts
//
//   - ComponentModel: a declared component with its class, its Dependencies
//     and free-form config values.
//
//   - ChainSpecification: a chain's own component references, the chains it
//     inherits, the components it excludes and the phases it declares.
//
//   - ChainsModel: the immutable collection of both, with lookup by
//     specification, structural validation and flattening.
//
// # Flattening
//
// Flattening resolves a chain's inheritance into one concrete set of
// component references. Inherited chains are flattened first (depth first,
// memoized per chain within one Flattener), their references are unioned
// into the chain's own, and the chain's exclusions are subtracted last.
// A reference already present by name and namespace is never replaced by an
// inherited one, so a chain can pin a different version of an inherited
// component. Exclusions apply to the declaring chain only: a descendant
// inherits the already reduced set but may add the component back.
package model
