package xbatch

import "testing"

func makeSpec(name string, fnAddr, trampAddr uint32) Spec {
	return Spec{
		Name:      name,
		Fn:        []byte{0x90, 0x90, 0x90, 0x90, 0x90, 0x90, 0xC3},
		FnAddr:    fnAddr,
		TrampAddr: trampAddr,
		Arg:       0,
		Callback:  0x9000,
	}
}

func TestRunAllInstallsEveryDisjointSpec(t *testing.T) {
	specs := make([]Spec, 0, 20)
	for i := 0; i < 20; i++ {
		specs = append(specs, makeSpec("fn", uint32(0x1000+i*0x100), uint32(0x5000+i*0x100)))
	}

	in := NewInstaller(4)
	in.RunAll(specs, false)

	installed, failed := in.Stats()
	if failed != 0 {
		t.Errorf("failed = %d, want 0", failed)
	}
	if installed != int64(len(specs)) {
		t.Errorf("installed = %d, want %d", installed, len(specs))
	}

	all := in.Results.All()
	if len(all) != len(specs) {
		t.Fatalf("got %d outcomes, want %d", len(all), len(specs))
	}
	for _, o := range all {
		if o.Err != nil {
			t.Errorf("%s: unexpected error: %v", o.Spec.Name, o.Err)
		}
		if o.BytesReplaced < 5 {
			t.Errorf("%s: bytesReplaced = %d, want >= 5", o.Spec.Name, o.BytesReplaced)
		}
	}
}

func TestRunAllReportsFailuresWithoutStoppingOthers(t *testing.T) {
	specs := []Spec{
		makeSpec("good", 0x1000, 0x5000),
		{Name: "too-short", Fn: []byte{0x90, 0x90}, FnAddr: 0x2000, TrampAddr: 0x6000, Callback: 0x9000},
		makeSpec("good2", 0x3000, 0x7000),
	}

	in := NewInstaller(2)
	in.RunAll(specs, false)

	installed, failed := in.Stats()
	if installed != 2 {
		t.Errorf("installed = %d, want 2", installed)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}

	var sawFailure bool
	for _, o := range in.Results.All() {
		if o.Spec.Name == "too-short" {
			sawFailure = true
			if o.Err == nil {
				t.Error("expected too-short to fail")
			}
		}
	}
	if !sawFailure {
		t.Error("too-short outcome missing from results")
	}
}

func TestNewInstallerDefaultsWorkerCount(t *testing.T) {
	in := NewInstaller(0)
	if in.NumWorkers <= 0 {
		t.Errorf("NumWorkers = %d, want > 0", in.NumWorkers)
	}
}
