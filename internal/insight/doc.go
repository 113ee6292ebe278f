// Package insight defines the value types and orchestration for attaching
// purpose descriptions to scanned files and directories.
//
// The package owns the Mode/Category enums, the Insight result value, the
// Node and Settings inputs, the bilingual keyword classifier, and the
// Coordinator that dispatches describe calls to whichever Provider is
// registered for the active mode.
//
// # Fail-Soft Contract
//
// Coordinator.Describe is total. Disabled or unregistered modes, invalid
// configuration, transport failures, timeouts, and blank model output all
// resolve to the same Empty() insight; only logs differentiate the causes.
// A slow or broken endpoint must never stall or fail a bulk scan, so no
// error ever crosses this boundary and no layer here retries.
package insight
