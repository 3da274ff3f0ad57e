// Package workflow renders one project through the ordered stages: timing,
// compose, captions, and music.
//
// The Orchestrator takes a per-project file lock, assigns a run id, tees the
// logger into the project's render.log, and hands each stage to
// stageexec.Run, which records the outcome in the history store. A failed
// stage is logged and the render continues with the next one; later stages
// then report their own missing inputs. All failures are returned joined.
//
// Captions and music can be toggled per render. Add a stage by extending
// StageSet and its Ordered method.
package workflow
