// Package workflow defines the Temporal workflow that generates a level.
//
// The workflow makes one generation attempt and saves the artifact only when
// the attempt was accepted. Activities are never retried: a model that
// produced an unusable level is reported to the caller, who decides whether
// to start another run.
//
// Workflow code must stay deterministic. Model invocation and file or Redis
// I/O happen in activities.
package workflow
