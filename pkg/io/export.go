package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/psptools/psplib/pkg/instance"
)

// DefaultIndent is the indentation depth used by the CLI when no other
// indent is configured.
const DefaultIndent = 4

// instanceJSON is the wire format for a problem instance. Scalar required
// fields are pointers so a decode can tell "absent" from "zero".
type instanceJSON struct {
	Name      *string        `json:"Name"`
	Horizon   *int           `json:"Horizon"`
	Resources []resourceJSON `json:"Resources"`
	Jobs      []jobJSON      `json:"Jobs"`
}

type resourceJSON struct {
	Key      string `json:"Key"`
	Type     string `json:"Type"`
	Capacity *int   `json:"Capacity"`
}

type jobJSON struct {
	ID          int            `json:"Id"`
	Duration    int            `json:"Duration"`
	Consumption map[string]int `json:"Resource consumption"`
	Successors  *[]int         `json:"Successors"`
}

// WriteJSON encodes the instance as JSON and writes it to w. Resources are
// sorted by key and jobs by ID, with sorted successor lists, so output is
// deterministic and diff-friendly. indent is the number of spaces per
// nesting level; zero or negative produces compact output.
func WriteJSON(in *instance.Instance, w io.Writer, indent int) error {
	out := fromInstance(in)

	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal returns the JSON encoding of the instance as bytes.
func Marshal(in *instance.Instance, indent int) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(in, &buf, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes the instance to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(in *instance.Instance, path string, indent int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(in, f, indent)
}

func fromInstance(in *instance.Instance) instanceJSON {
	resources := make([]resourceJSON, len(in.Resources))
	for i, r := range in.Resources {
		capacity := r.Capacity
		resources[i] = resourceJSON{Key: r.Key, Type: r.Kind.String(), Capacity: &capacity}
	}
	slices.SortFunc(resources, func(a, b resourceJSON) int {
		return strings.Compare(a.Key, b.Key)
	})

	successors := in.JobSuccessors()
	jobs := make([]jobJSON, len(in.Jobs))
	for i, j := range in.Jobs {
		succ := make([]int, 0, len(successors[j.ID]))
		succ = append(succ, successors[j.ID]...)
		slices.Sort(succ)

		consumption := make(map[string]int, len(j.Consumption))
		for k, v := range j.Consumption {
			consumption[k] = v
		}

		jobs[i] = jobJSON{ID: j.ID, Duration: j.Duration, Consumption: consumption, Successors: &succ}
	}
	slices.SortFunc(jobs, func(a, b jobJSON) int { return a.ID - b.ID })

	return instanceJSON{
		Name:      &in.Name,
		Horizon:   &in.Horizon,
		Resources: resources,
		Jobs:      jobs,
	}
}
