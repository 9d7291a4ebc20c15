package params

import (
	"testing"
)

func TestRead(t *testing.T) {
	t.Run("full profile", func(t *testing.T) {
		doc := []byte("nmin: 5\nminleaf: 2\nnfeat: 3\ntrees: 100\nworkers: 4\nseed: 1234\n")
		p, err := Read(doc)
		if err != nil {
			t.Fatalf("reading profile: %v", err)
		}
		expected := Profile{NMin: 5, MinLeaf: 2, NFeat: 3, Trees: 100, Workers: 4, Seed: 1234}
		if *p != expected {
			t.Errorf("expected profile %+v, got %+v", expected, *p)
		}
	})
	t.Run("partial profile", func(t *testing.T) {
		p, err := Read([]byte("nmin: 10\n"))
		if err != nil {
			t.Fatalf("reading profile: %v", err)
		}
		if p.NMin != 10 || p.MinLeaf != 0 || p.Trees != 0 {
			t.Errorf("expected only nmin to be set, got %+v", *p)
		}
	})
	t.Run("empty document", func(t *testing.T) {
		p, err := Read(nil)
		if err != nil {
			t.Fatalf("reading empty profile: %v", err)
		}
		if *p != (Profile{}) {
			t.Errorf("expected a zero profile, got %+v", *p)
		}
	})
	t.Run("negative value", func(t *testing.T) {
		_, err := Read([]byte("nmin: -1\n"))
		if err == nil {
			t.Error("expected an error for a negative parameter")
		}
	})
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Read([]byte("nmin: [\n"))
		if err == nil {
			t.Error("expected an error for malformed yaml")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	_, err := ReadFromFile("does-not-exist.yml")
	if err == nil {
		t.Error("expected an error for a missing profile file")
	}
}
