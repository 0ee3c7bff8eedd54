// Package assessor scores planning projects.
//
// Every function is pure: the project description and the regulation list
// are passed in explicitly and nothing is cached between calls, so
// assessments may run concurrently without locking.
package assessor
