package stage_test

import (
	"reflect"
	"testing"

	"github.com/kingrea/windscout/internal/stage"
)

type fakeStage struct {
	info stage.Info
}

func (f *fakeStage) Info() stage.Info { return f.info }

func (f *fakeStage) Run(*stage.Context) (stage.Result, error) {
	return stage.Result{Status: stage.StatusCompleted}, nil
}

func fakeFactory(id string) stage.Factory {
	return func() (stage.Stage, error) {
		return &fakeStage{info: stage.Info{ID: id, Name: "Fake " + id, Version: "1.0.0"}}, nil
	}
}

func TestRegistryRegisterAndResolve(t *testing.T) {
	reg := stage.NewRegistry()
	if err := reg.Register("alpha", fakeFactory("alpha")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	s, err := reg.Resolve("alpha")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.Info().ID != "alpha" {
		t.Fatalf("unexpected stage %q", s.Info().ID)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := stage.NewRegistry()
	if err := reg.Register("alpha", fakeFactory("alpha")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register("alpha", fakeFactory("alpha")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestRegistryUnknownID(t *testing.T) {
	reg := stage.NewRegistry()
	if _, err := reg.Resolve("missing"); err == nil {
		t.Fatalf("expected unknown id error")
	}
}

func TestRegistryValidatesInfo(t *testing.T) {
	reg := stage.NewRegistry()
	reg.MustRegister("broken", func() (stage.Stage, error) {
		return &fakeStage{info: stage.Info{ID: "broken"}}, nil
	})
	if _, err := reg.Resolve("broken"); err == nil {
		t.Fatalf("expected info validation error")
	}
}

func TestRegistryIDsSorted(t *testing.T) {
	reg := stage.NewRegistry()
	for _, id := range []string{"grid", "geocode", "imagery"} {
		reg.MustRegister(id, fakeFactory(id))
	}
	want := []string{"geocode", "grid", "imagery"}
	if got := reg.IDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
