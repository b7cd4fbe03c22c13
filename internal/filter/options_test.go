package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildOptions(t *testing.T) {
	opts := BuildOptions(sampleRecords())

	want := []Option{{Value: "Amina", Label: "Amina"}, {Value: "Karim", Label: "Karim"}}
	if diff := cmp.Diff(want, opts.Technicians); diff != "" {
		t.Fatalf("technicians (-want +got):\n%s", diff)
	}
	if len(opts.FacilityTypes) != 5 || len(opts.Statuses) != 3 || len(opts.Regions) != 1 {
		t.Fatalf("unexpected option counts: %+v", opts)
	}
	if opts.Statuses[2].Label != "Non réparé" {
		t.Fatalf("status label: %+v", opts.Statuses[2])
	}
}
