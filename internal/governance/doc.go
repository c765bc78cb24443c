// Package governance implements the donor-governed treasury: the donor
// registry, the treasury balance, the proposal lifecycle and the
// quorum/threshold tally that decides proposals as votes arrive.
//
// An Engine is not safe for concurrent use. The host serializes calls and
// supplies the caller identity and wall-clock time through a Call.
//
// Errors do not roll back earlier mutations. A vote on an expired proposal
// and an execution against an insufficient treasury both force the
// proposal to rejected and return an error in the same call.
package governance
