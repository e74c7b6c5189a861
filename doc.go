// Package jsonpath implements a JSONPath query engine: compiling an
// expression once and evaluating it against decoded JSON documents to
// search, sort, extract fields from, and update matched locations.
//
// A document is a Value, the tagged-union representation produced by
// FromAny from the output of encoding/json.Unmarshal. Compile parses an
// expression into a *CompiledExpression; SearchAll applies compiled
// expressions to a document. Search, SearchPaths, Update and UpdateFunc
// take the expression string and compile it through an Engine's cache;
// they do not accept a *CompiledExpression. An Engine provides the same
// operations with a compiled-expression cache, structured logging and
// metrics, for callers that evaluate many expressions against many
// documents.
package jsonpath
