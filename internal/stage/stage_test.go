package stage

import "testing"

func TestResultConstructors(t *testing.T) {
	if r := Produced("/v/a.mp4"); r.Skipped || r.Output != "/v/a.mp4" {
		t.Fatalf("unexpected produced result %+v", r)
	}
	if r := Existing("/v/a.mp4"); !r.Skipped || r.Detail == "" {
		t.Fatalf("unexpected existing result %+v", r)
	}
	if h := Unhealthy("music", "no tracks"); h.Ready || h.Detail != "no tracks" {
		t.Fatalf("unexpected health %+v", h)
	}
	if h := Healthy("timing"); !h.Ready || h.Name != "timing" {
		t.Fatalf("unexpected health %+v", h)
	}
}
