/*
Package componentid provides the identity model for chainable components and
chains: versions, fully qualified identifiers and the partial specifications
used to reference them.

The canonical string format is `name[:version][@namespace]`, where version is
`major[.minor[.micro[.qualifier]]]` and namespace is itself an identifier,
e.g. `stemmer:1.2@default` or `com.example.Rank:2.0.0.beta`.

A Specification is a filter, not an equivalence class: `rank:1` matches the
ids `rank:1` and `rank:1.4.2` but neither `rank:2` nor the unversioned `rank`.
*/
package componentid
