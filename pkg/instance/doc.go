// Package instance defines the in-memory model for resource-constrained
// project scheduling problem instances.
//
// An [Instance] aggregates [Job], [Precedence] and [Resource] collections
// together with a name and a scheduling horizon. Derived lookup tables
// (jobs by ID, resources by key, predecessor/successor adjacency) are
// computed lazily on first access and cached; the build is guarded so
// concurrent readers observe a single consistent snapshot.
//
// Instances are produced by the PSPLIB decoder in package psplib or by the
// JSON codec in package io, and consumed by the graph builder in package
// graph. The model itself performs no I/O.
package instance
