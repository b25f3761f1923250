package psplib

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/psptools/psplib/pkg/errors"
	"github.com/psptools/psplib/pkg/instance"
)

// Record patterns for the fixed PSPLIB sections. Leading whitespace is
// tolerated everywhere; trailing whitespace is stripped by the scanner.
var (
	// "    1     30      0       38       26       38" — only duedate and
	// tardiness cost are captured; the rest is validated but discarded.
	projectRE = regexp.MustCompile(`^\s*(\d+)\s+(?:\d+)\s+(?:\d+)\s+(\d+)\s+(\d+)\s+(?:\d+)$`)

	// "   1        1          3           2   3   4" — job, mode count,
	// successor count, optional successor list.
	precedenceRE = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+(\d+)((?:\s+\d+)*)$`)

	// "jobnr. mode duration  R 1   R 2   R 3   R 4" — the resource keys
	// declare the column order for the consumption records that follow.
	resourceKeysRE = regexp.MustCompile(`^\s*jobnr\.\s+mode\s+duration((?:\s+[RND]\s\d+)*)$`)

	// "  1      1     0       0    0    0    0" — job, mode, duration,
	// one consumption per declared resource.
	requestRE = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+(\d+)((?:\s+\d+)*)$`)

	// "   12   13    4   12" — one capacity per declared resource.
	capacitiesRE = regexp.MustCompile(`^\s*((?:\d+(?:\s+\d+)*)?)$`)
)

// keyValueRE builds the pattern for an info-block "key : value" line.
func keyValueRE(key string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*` + regexp.QuoteMeta(key) + `\s*:\s*(\d+)$`)
}

// resourceDefRE builds the pattern for a resource-definition line such as
// "  - renewable                 :  4   R".
func resourceDefRE(resource, tag string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*-\s+` + regexp.QuoteMeta(resource) + `\s*:\s*(\d+)\s+` + tag + `$`)
}

var (
	projectsRE          = keyValueRE("projects")
	jobsRE              = keyValueRE("jobs (incl. supersource/sink )")
	horizonRE           = keyValueRE("horizon")
	renewableRE         = resourceDefRE("renewable", "R")
	nonrenewableRE      = resourceDefRE("nonrenewable", "N")
	doublyConstrainedRE = resourceDefRE("doubly constrained", "D")
)

// DecodeFile parses the PSPLIB instance file at path. If name is empty, the
// file's base name is used as the instance name.
func DecodeFile(path, name string) (*instance.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "PSPLIB file not found: %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if name == "" {
		name = filepath.Base(path)
	}
	return Decode(f, name)
}

// Decode parses a PSPLIB document from r and returns the fully populated
// instance. The name becomes both the instance name and the source
// identifier embedded in error messages.
//
// Decode drives a line scanner through the fixed section sequence of the
// format: header, info block, project information, precedence relations,
// requests/durations and resource availabilities. Any failure aborts the
// whole decode; no partial instance is ever returned.
//
// Unsupported inputs are rejected with UNSUPPORTED_OPERATION errors:
// multi-project instances, doubly-constrained resources and resource keys
// naming neither a renewable nor a non-renewable kind. Shape violations
// (unmatched lines, count mismatches) yield PARSE_ERROR.
func Decode(r io.Reader, name string) (*instance.Instance, error) {
	source := name
	if source == "" {
		source = "<input>"
	}
	s := newScanner(source, r)

	// Header: divider, generator banner, seed line. Uninterpreted.
	if err := s.skipLines(3); err != nil {
		return nil, err
	}

	// Info block.
	if err := s.skipLines(1); err != nil {
		return nil, err
	}
	projectCount, err := parseInt(s, projectsRE)
	if err != nil {
		return nil, err
	}
	jobCount, err := parseInt(s, jobsRE)
	if err != nil {
		return nil, err
	}
	horizon, err := parseInt(s, horizonRE)
	if err != nil {
		return nil, err
	}
	if err := s.skipLines(1); err != nil { // RESOURCES list header
		return nil, err
	}
	renewableCount, err := parseInt(s, renewableRE)
	if err != nil {
		return nil, err
	}
	nonrenewableCount, err := parseInt(s, nonrenewableRE)
	if err != nil {
		return nil, err
	}
	doublyConstrainedCount, err := parseInt(s, doublyConstrainedRE)
	if err != nil {
		return nil, err
	}

	if projectCount != 1 {
		return nil, s.unsupportedf("only single-project instances are currently supported")
	}
	if doublyConstrainedCount > 0 {
		return nil, s.unsupportedf("doubly-constrained resources are not currently supported")
	}

	resourceCount := renewableCount + nonrenewableCount + doublyConstrainedCount

	// Project information. Consumed for shape validation only; due dates
	// and tardiness costs are not retained on the instance.
	if err := s.skipLines(3); err != nil {
		return nil, err
	}
	for i := 0; i < projectCount; i++ {
		if _, err := s.parseLine(projectRE, true, intField, intField, intField); err != nil {
			return nil, err
		}
	}

	// Precedence relations.
	if err := s.skipLines(3); err != nil {
		return nil, err
	}
	var precedences []instance.Precedence
	for i := 0; i < jobCount; i++ {
		values, err := s.parseLine(precedenceRE, true, intField, intField, intField, intListField)
		if err != nil {
			return nil, err
		}
		jobID := values[0].(int)
		successorCount := values[2].(int)
		successors := values[3].([]int)
		if successorCount != len(successors) {
			return nil, s.parseErrorf("number of parsed job successors does not match the expected number of job successors")
		}
		for _, succ := range successors {
			precedences = append(precedences, instance.Precedence{Predecessor: jobID, Successor: succ})
		}
	}

	// Requests/durations: header, resource-key line, divider, one record
	// per job. Multi-mode jobs are not supported, so exactly one record per
	// job is read.
	if err := s.skipLines(2); err != nil {
		return nil, err
	}
	keyValues, err := s.parseLine(resourceKeysRE, true, keyListField)
	if err != nil {
		return nil, err
	}
	resourceKeys := keyValues[0].([]string)
	if len(resourceKeys) != resourceCount {
		return nil, s.parseErrorf("number of parsed resource keys does not match the expected number of resources")
	}
	if err := s.skipLines(1); err != nil {
		return nil, err
	}

	type jobRecord struct {
		id           instance.JobID
		duration     int
		consumptions []int
	}
	jobRecords := make([]jobRecord, 0, jobCount)
	for i := 0; i < jobCount; i++ {
		values, err := s.parseLine(requestRE, true, intField, intField, intField, intListField)
		if err != nil {
			return nil, err
		}
		consumptions := values[3].([]int)
		if len(consumptions) != resourceCount {
			return nil, s.parseErrorf("number of parsed job resource-consumptions does not match the expected number of resources")
		}
		jobRecords = append(jobRecords, jobRecord{
			id:           values[0].(int),
			duration:     values[2].(int),
			consumptions: consumptions,
		})
	}

	// Resource availabilities: divider, section title, key header line,
	// then one capacity per resource in resource-key order.
	if err := s.skipLines(3); err != nil {
		return nil, err
	}
	capacities, err := parseOne(s, capacitiesRE, func(g string) ([]int, error) {
		v, err := intListField(g)
		if err != nil {
			return nil, err
		}
		return v.([]int), nil
	})
	if err != nil {
		return nil, err
	}
	if len(capacities) != resourceCount {
		return nil, s.parseErrorf("number of parsed resource capacities does not match the expected number of resources")
	}

	// Assembly.
	jobs := make([]instance.Job, 0, len(jobRecords))
	for _, rec := range jobRecords {
		consumption := make(map[instance.ResourceKey]int, len(resourceKeys))
		for i, key := range resourceKeys {
			consumption[key] = rec.consumptions[i]
		}
		jobs = append(jobs, instance.Job{ID: rec.id, Duration: rec.duration, Consumption: consumption})
	}

	resources := make([]instance.Resource, 0, len(resourceKeys))
	for i, key := range resourceKeys {
		kind, err := resourceKind(s, key)
		if err != nil {
			return nil, err
		}
		resources = append(resources, instance.Resource{Key: key, Kind: kind, Capacity: capacities[i]})
	}

	return instance.New(name, horizon, jobs, precedences, resources), nil
}

// resourceKind derives the resource kind from the key token: 'R' marks a
// renewable resource, 'N' a non-renewable one.
func resourceKind(s *scanner, key string) (instance.ResourceKind, error) {
	switch {
	case strings.Contains(key, "R"):
		return instance.Renewable, nil
	case strings.Contains(key, "N"):
		return instance.NonRenewable, nil
	default:
		return 0, s.unsupportedf("can not recognize resource type from resource key %q", key)
	}
}
