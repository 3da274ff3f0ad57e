// Package preflight provides readiness checks for the filesystem paths and
// external binaries shortreel depends on.
//
// These checks run in two contexts:
//   - The workflow orchestrator calls RunAll before rendering a project. If any
//     required check fails, the render stops before the first encode.
//   - The CLI "shortreel status" command shows the same results alongside the
//     dependency table from CheckSystemDeps.
//
// Each check is gated by its config toggle; disabled features are skipped.
package preflight
