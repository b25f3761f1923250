package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/psptools/psplib/pkg/errors"
	"github.com/psptools/psplib/pkg/instance"
)

// ReadJSON decodes a JSON instance encoding from r.
//
// The decode is strict: the required fields Name, Horizon, Resources and
// Jobs must all be present, every resource must carry a Capacity, every
// job must carry a Successors array, and unknown fields are rejected. Any
// violation fails with a VALIDATION_ERROR; nothing is defaulted silently.
//
// Job consumption maps may omit resources the job does not consume; they
// are normalized to total maps with zero entries. A consumption key that
// names no declared resource is a validation error.
func ReadJSON(r io.Reader) (*instance.Instance, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var data instanceJSON
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeValidation, err, "decode instance")
	}

	return toInstance(data)
}

// ImportJSON reads a JSON instance file at path.
func ImportJSON(path string) (*instance.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "instance file not found: %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Unmarshal decodes an instance from JSON bytes.
func Unmarshal(data []byte) (*instance.Instance, error) {
	return ReadJSON(bytes.NewReader(data))
}

func toInstance(data instanceJSON) (*instance.Instance, error) {
	if data.Name == nil {
		return nil, errors.New(errors.ErrCodeValidation, "missing required field %q", "Name")
	}
	if data.Horizon == nil {
		return nil, errors.New(errors.ErrCodeValidation, "missing required field %q", "Horizon")
	}
	if data.Resources == nil {
		return nil, errors.New(errors.ErrCodeValidation, "missing required field %q", "Resources")
	}
	if data.Jobs == nil {
		return nil, errors.New(errors.ErrCodeValidation, "missing required field %q", "Jobs")
	}

	resources := make([]instance.Resource, len(data.Resources))
	declared := make(map[instance.ResourceKey]bool, len(data.Resources))
	for i, r := range data.Resources {
		if r.Capacity == nil {
			return nil, errors.New(errors.ErrCodeValidation, "resource %q: missing required field %q", r.Key, "Capacity")
		}
		kind, err := kindFromString(r.Type)
		if err != nil {
			return nil, fmt.Errorf("resource %q: %w", r.Key, err)
		}
		resources[i] = instance.Resource{Key: r.Key, Kind: kind, Capacity: *r.Capacity}
		declared[r.Key] = true
	}

	jobs := make([]instance.Job, len(data.Jobs))
	var precedences []instance.Precedence
	for i, j := range data.Jobs {
		if j.Successors == nil {
			return nil, errors.New(errors.ErrCodeValidation, "job %d: missing required field %q", j.ID, "Successors")
		}

		consumption := make(map[instance.ResourceKey]int, len(declared))
		for _, r := range resources {
			consumption[r.Key] = 0
		}
		for key, amount := range j.Consumption {
			if !declared[key] {
				return nil, errors.New(errors.ErrCodeValidation, "job %d: consumption references undeclared resource %q", j.ID, key)
			}
			consumption[key] = amount
		}

		jobs[i] = instance.Job{ID: j.ID, Duration: j.Duration, Consumption: consumption}
		for _, succ := range *j.Successors {
			precedences = append(precedences, instance.Precedence{Predecessor: j.ID, Successor: succ})
		}
	}

	return instance.New(*data.Name, *data.Horizon, jobs, precedences, resources), nil
}

func kindFromString(s string) (instance.ResourceKind, error) {
	switch s {
	case instance.Renewable.String():
		return instance.Renewable, nil
	case instance.NonRenewable.String():
		return instance.NonRenewable, nil
	default:
		return 0, errors.New(errors.ErrCodeValidation, "unknown resource type %q", s)
	}
}
