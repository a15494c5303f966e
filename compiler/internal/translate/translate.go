// Package translate stands in for the downstream IR translation
// collaborator (spec.md §1: "every checker result carries a
// 'translated expression' field whose opaque type is provided by a
// Translation collaborator; the type checker emits a placeholder
// value for that field, leaving real translation to later passes").
package translate

// Exp is the opaque translated-expression placeholder. A real backend
// would give this fields (IR nodes, frame offsets); the checker never
// inspects it, only passes one through.
type Exp struct{}

// Placeholder is the single value the checker emits wherever spec.md
// calls for a "translated-placeholder" result.
var Placeholder = Exp{}
