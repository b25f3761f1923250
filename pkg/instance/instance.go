package instance

import (
	"fmt"
	"sync"
)

// JobID identifies a job within an instance. IDs are positive integers
// assigned by the instance file, with the supersource and sink jobs
// conventionally carrying the smallest and largest IDs.
type JobID = int

// ResourceKey identifies a resource within an instance, e.g. "R 1".
type ResourceKey = string

// ResourceKind distinguishes renewable from non-renewable resources.
type ResourceKind int

const (
	// Renewable resources replenish their full capacity every period
	// (e.g. workers, machines).
	Renewable ResourceKind = iota
	// NonRenewable resources hold a fixed total budget over the whole
	// horizon (e.g. raw material).
	NonRenewable
)

// String returns the canonical name of the kind, as used on the wire.
func (k ResourceKind) String() string {
	switch k {
	case Renewable:
		return "Renewable"
	case NonRenewable:
		return "NonRenewable"
	default:
		return fmt.Sprintf("ResourceKind(%d)", int(k))
	}
}

// Job is an atomic unit of work with a duration and a per-resource
// consumption map. The consumption map is total: every resource declared by
// the owning instance has an entry, zero when the job does not consume it.
//
// Job identity is the ID alone. Two jobs with the same ID are the same job
// regardless of other fields.
type Job struct {
	ID          JobID
	Duration    int
	Consumption map[ResourceKey]int
}

// String returns a short identity-only representation.
func (j Job) String() string {
	return fmt.Sprintf("Job(%d)", j.ID)
}

// Precedence is a directed "must finish before" relation: the predecessor
// job must complete before the successor job starts. Identity is the pair;
// duplicate pairs are semantically duplicate edges and are not deduplicated
// by this type.
type Precedence struct {
	Predecessor JobID
	Successor   JobID
}

// String returns the pair in predecessor->successor form.
func (p Precedence) String() string {
	return fmt.Sprintf("%d->%d", p.Predecessor, p.Successor)
}

// Resource is a capacity-constrained resource with a kind tag. The Capacity
// field holds the per-period capacity for Renewable resources and the
// initial (total) capacity for NonRenewable ones; InitialCapacity exposes
// the latter under its proper name. Identity is (Kind, Key).
type Resource struct {
	Key      ResourceKey
	Kind     ResourceKind
	Capacity int
}

// InitialCapacity returns the total budget of a non-renewable resource.
// Calling it on a renewable resource is a programming error and panics.
func (r Resource) InitialCapacity() int {
	if r.Kind != NonRenewable {
		panic(fmt.Sprintf("InitialCapacity on %s resource %q", r.Kind, r.Key))
	}
	return r.Capacity
}

// Instance is the aggregate root for one scheduling problem: a name (free
// text, not necessarily unique), a horizon (upper bound on schedule length)
// and the job, precedence and resource collections. The collections carry
// no intrinsic ordering; slices preserve decoding order for determinism
// only.
//
// Instances are immutable after construction. Derived lookup tables are
// built once on first access (see [Instance.JobsByID] and friends) and are
// safe for concurrent readers.
//
// The decoder guarantees that every job ID referenced by a precedence
// exists and that every consumption key references a declared resource;
// hand-built instances violating that are not rejected here. Duplicate job
// IDs or resource keys are likewise permitted, with the last entry winning
// in the by-ID maps.
type Instance struct {
	Name    string
	Horizon int

	Jobs        []Job
	Precedences []Precedence
	Resources   []Resource

	once         sync.Once
	jobsByID     map[JobID]Job
	resourcesKey map[ResourceKey]Resource
	predecessors map[JobID][]JobID
	successors   map[JobID][]JobID
}

// New constructs an Instance from its collections. The slices are owned by
// the returned instance and must not be mutated afterwards.
func New(name string, horizon int, jobs []Job, precedences []Precedence, resources []Resource) *Instance {
	return &Instance{
		Name:        name,
		Horizon:     horizon,
		Jobs:        jobs,
		Precedences: precedences,
		Resources:   resources,
	}
}

// JobsByID returns the job lookup table, building the derived indices on
// first access.
func (in *Instance) JobsByID() map[JobID]Job {
	in.buildIndex()
	return in.jobsByID
}

// ResourcesByKey returns the resource lookup table, building the derived
// indices on first access.
func (in *Instance) ResourcesByKey() map[ResourceKey]Resource {
	in.buildIndex()
	return in.resourcesKey
}

// JobPredecessors maps each job ID to the IDs of jobs that must finish
// before it, in precedence insertion order. Jobs with no predecessors are
// absent from the map rather than mapped to an empty slice.
func (in *Instance) JobPredecessors() map[JobID][]JobID {
	in.buildIndex()
	return in.predecessors
}

// JobSuccessors maps each job ID to the IDs of jobs that may only start
// after it finishes, in precedence insertion order. Jobs with no successors
// are absent from the map rather than mapped to an empty slice.
func (in *Instance) JobSuccessors() map[JobID][]JobID {
	in.buildIndex()
	return in.successors
}

// buildIndex scans the collections exactly once and caches the lookup
// tables. Duplicate edges are preserved in the adjacency lists.
func (in *Instance) buildIndex() {
	in.once.Do(func() {
		in.jobsByID = make(map[JobID]Job, len(in.Jobs))
		for _, j := range in.Jobs {
			in.jobsByID[j.ID] = j
		}

		in.predecessors = make(map[JobID][]JobID)
		in.successors = make(map[JobID][]JobID)
		for _, p := range in.Precedences {
			in.successors[p.Predecessor] = append(in.successors[p.Predecessor], p.Successor)
			in.predecessors[p.Successor] = append(in.predecessors[p.Successor], p.Predecessor)
		}

		in.resourcesKey = make(map[ResourceKey]Resource, len(in.Resources))
		for _, r := range in.Resources {
			in.resourcesKey[r.Key] = r
		}
	})
}
