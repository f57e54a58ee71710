// Package llm provides clients for LLM-backed project analysis.
//
// The analyzer reads a project's recent communications and returns a richer
// assessment than the local word-list heuristic: a sentiment score, an
// at-risk flag, a risk category, a one-line summary, and a trend. Callers
// merge the result onto the project before the rule engine runs; when the
// analyzer is unavailable they fall back to the local heuristic.
package llm
