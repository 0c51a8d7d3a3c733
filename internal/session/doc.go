// Package session orchestrates interactive recoloring of one image.
//
// An Editor owns the current pixel buffer, a bounded undo history and a
// Selection. The selection is a small state machine:
//
//	Idle --StartSelection--> Collecting --AddPoint--> Collecting
//	Collecting --CancelSelection--> Idle
//	Collecting --CommitSelection (>= 3 points)--> Idle
//
// Committing rasterizes the polygon, recolors the current buffer, pushes
// the pre-edit buffer onto the undo history and makes the recolored buffer
// current. Undo pops the most recent pre-edit buffer back.
//
// Loading a new image resets the selection and the undo history.
package session
