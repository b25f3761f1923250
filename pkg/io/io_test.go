package io

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/psptools/psplib/pkg/errors"
	"github.com/psptools/psplib/pkg/instance"
)

func testInstance() *instance.Instance {
	return instance.New("j-test", 20,
		[]instance.Job{
			{ID: 2, Duration: 3, Consumption: map[instance.ResourceKey]int{"R 1": 2, "N 1": 0}},
			{ID: 1, Duration: 0, Consumption: map[instance.ResourceKey]int{"R 1": 0, "N 1": 0}},
			{ID: 3, Duration: 0, Consumption: map[instance.ResourceKey]int{"R 1": 0, "N 1": 5}},
		},
		[]instance.Precedence{
			{Predecessor: 1, Successor: 3},
			{Predecessor: 1, Successor: 2},
			{Predecessor: 2, Successor: 3},
		},
		[]instance.Resource{
			{Key: "R 1", Kind: instance.Renewable, Capacity: 4},
			{Key: "N 1", Kind: instance.NonRenewable, Capacity: 30},
		},
	)
}

func TestWriteJSONShape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(testInstance(), &buf, 2); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, field := range []string{"Name", "Horizon", "Resources", "Jobs"} {
		if _, ok := out[field]; !ok {
			t.Errorf("output missing field %q", field)
		}
	}
	if len(out) != 4 {
		t.Errorf("output has %d top-level fields, want 4", len(out))
	}

	// Resources sorted by key, jobs by ID, successors ascending.
	var resources []struct {
		Key  string
		Type string
	}
	if err := json.Unmarshal(out["Resources"], &resources); err != nil {
		t.Fatal(err)
	}
	if resources[0].Key != "N 1" || resources[1].Key != "R 1" {
		t.Errorf("resources not sorted by key: %+v", resources)
	}
	if resources[0].Type != "NonRenewable" || resources[1].Type != "Renewable" {
		t.Errorf("resource type tags wrong: %+v", resources)
	}

	var jobs []struct {
		ID         int   `json:"Id"`
		Successors []int `json:"Successors"`
	}
	if err := json.Unmarshal(out["Jobs"], &jobs); err != nil {
		t.Fatal(err)
	}
	if jobs[0].ID != 1 || jobs[1].ID != 2 || jobs[2].ID != 3 {
		t.Errorf("jobs not sorted by ID: %+v", jobs)
	}
	if want := []int{2, 3}; !equalInts(jobs[0].Successors, want) {
		t.Errorf("job 1 successors = %v, want %v", jobs[0].Successors, want)
	}
	if jobs[2].Successors == nil || len(jobs[2].Successors) != 0 {
		t.Errorf("job 3 successors = %v, want empty array", jobs[2].Successors)
	}
}

func TestRoundTrip(t *testing.T) {
	in := testInstance()

	data, err := Marshal(in, DefaultIndent)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if back.Name != in.Name {
		t.Errorf("Name = %q, want %q", back.Name, in.Name)
	}
	if back.Horizon != in.Horizon {
		t.Errorf("Horizon = %d, want %d", back.Horizon, in.Horizon)
	}

	wantJobs := in.JobsByID()
	gotJobs := back.JobsByID()
	if len(gotJobs) != len(wantJobs) {
		t.Fatalf("job count = %d, want %d", len(gotJobs), len(wantJobs))
	}
	for id, want := range wantJobs {
		got, ok := gotJobs[id]
		if !ok {
			t.Errorf("job %d missing after round-trip", id)
			continue
		}
		if got.Duration != want.Duration {
			t.Errorf("job %d duration = %d, want %d", id, got.Duration, want.Duration)
		}
		for key, amount := range want.Consumption {
			if got.Consumption[key] != amount {
				t.Errorf("job %d consumption[%s] = %d, want %d", id, key, got.Consumption[key], amount)
			}
		}
	}

	if len(back.Precedences) != len(in.Precedences) {
		t.Fatalf("precedence count = %d, want %d", len(back.Precedences), len(in.Precedences))
	}
	wantSet := make(map[instance.Precedence]bool)
	for _, p := range in.Precedences {
		wantSet[p] = true
	}
	for _, p := range back.Precedences {
		if !wantSet[p] {
			t.Errorf("unexpected precedence %v after round-trip", p)
		}
	}

	wantRes := in.ResourcesByKey()
	gotRes := back.ResourcesByKey()
	if len(gotRes) != len(wantRes) {
		t.Fatalf("resource count = %d, want %d", len(gotRes), len(wantRes))
	}
	for key, want := range wantRes {
		got := gotRes[key]
		if got.Kind != want.Kind || got.Capacity != want.Capacity {
			t.Errorf("resource %s = %+v, want %+v", key, got, want)
		}
	}
}

func TestReadJSONValidation(t *testing.T) {
	valid := `{
		"Name": "n", "Horizon": 10,
		"Resources": [{"Key": "R 1", "Type": "Renewable", "Capacity": 4}],
		"Jobs": [{"Id": 1, "Duration": 2, "Resource consumption": {"R 1": 1}, "Successors": []}]
	}`

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "unexpected top-level field",
			input: `{"UnexpectedField": 42}`,
		},
		{
			name:  "missing everything but name",
			input: `{"Name": "Instance with missing fields"}`,
		},
		{
			name:  "missing horizon",
			input: `{"Name": "n", "Resources": [], "Jobs": []}`,
		},
		{
			name:  "horizon wrong type",
			input: `{"Name": "n", "Horizon": "Text instead of integer", "Resources": [], "Jobs": []}`,
		},
		{
			name:  "resource missing capacity",
			input: `{"Name": "n", "Horizon": 1, "Resources": [{"Key": "R 1", "Type": "Renewable"}], "Jobs": []}`,
		},
		{
			name:  "unknown resource type tag",
			input: `{"Name": "n", "Horizon": 1, "Resources": [{"Key": "D 1", "Type": "DoublyConstrained", "Capacity": 1}], "Jobs": []}`,
		},
		{
			name:  "job missing successors",
			input: `{"Name": "n", "Horizon": 1, "Resources": [], "Jobs": [{"Id": 1, "Duration": 5, "Resource consumption": {}}]}`,
		},
		{
			name:  "consumption references undeclared resource",
			input: `{"Name": "n", "Horizon": 1, "Resources": [], "Jobs": [{"Id": 1, "Duration": 5, "Resource consumption": {"R 9": 2}, "Successors": []}]}`,
		},
	}

	// The baseline must decode.
	if _, err := ReadJSON(strings.NewReader(valid)); err != nil {
		t.Fatalf("valid encoding rejected: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadJSON() succeeded, want validation error")
			}
			if !errors.Is(err, errors.ErrCodeValidation) {
				t.Errorf("ReadJSON() error = %v, want VALIDATION_ERROR", err)
			}
		})
	}
}

func TestReadJSONNormalizesConsumption(t *testing.T) {
	input := `{
		"Name": "n", "Horizon": 10,
		"Resources": [
			{"Key": "R 1", "Type": "Renewable", "Capacity": 4},
			{"Key": "R 2", "Type": "Renewable", "Capacity": 2}
		],
		"Jobs": [{"Id": 1, "Duration": 2, "Resource consumption": {"R 1": 3}, "Successors": []}]
	}`

	in, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	job := in.JobsByID()[1]
	if len(job.Consumption) != 2 {
		t.Fatalf("consumption has %d entries, want 2 (total over declared resources)", len(job.Consumption))
	}
	if job.Consumption["R 1"] != 3 || job.Consumption["R 2"] != 0 {
		t.Errorf("consumption = %v, want R 1: 3, R 2: 0", job.Consumption)
	}
}

func TestImportJSONNotFound(t *testing.T) {
	_, err := ImportJSON("testdata/missing.json")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want FILE_NOT_FOUND", err)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
