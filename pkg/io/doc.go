// Package io provides the JSON codec for problem instances.
//
// The wire format is a single object:
//
//	{
//	  "Name": "j301_1.sm",
//	  "Horizon": 158,
//	  "Resources": [{"Key": "R 1", "Type": "Renewable", "Capacity": 12}, ...],
//	  "Jobs": [
//	    {"Id": 1, "Duration": 0, "Resource consumption": {"R 1": 0, ...}, "Successors": [2, 3, 4]},
//	    ...
//	  ]
//	}
//
// Resources are sorted by Key and jobs by Id on output; successor lists are
// sorted ascending. Decoding is strict: all required fields must be present
// and unknown fields are rejected with a VALIDATION_ERROR (see [ReadJSON]).
//
// Encoding an instance and decoding the result yields an instance with the
// same name, horizon, job set, precedence set and resource set.
package io
