package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"accneat/internal/model"
)

func champion(id string, fitness float32, selectedAt string) model.Champion {
	traits := model.NewTraitSet()
	traits.Put(model.TraitRecord{ID: 1, Params: [8]float32{0.5}})
	nodes := model.NewNodeSet()
	nodes.Put(model.NodeRecord{ID: 1, TraitID: 1, Kind: model.NodeBias})
	nodes.Put(model.NodeRecord{ID: 2, TraitID: 1, Kind: model.NodeOutput})
	genes := []model.GeneRecord{{TraitID: 1, InNodeID: 1, OutNodeID: 2, Weight: 0.75, InnovationNum: 1, Enabled: true}}
	return model.Champion{
		ID:            id,
		Experiment:    "xor",
		SourcePath:    filepath.Join("experiments", "run-1", "fittest_1"),
		SelectedAtUTC: selectedAt,
		Genome:        model.NewParsedGenome(model.OrganismInfo{ID: 6, Fitness: fitness, Error: 0.5}, traits, nodes, genes, true),
	}
}

func newStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite := NewSQLiteStore(filepath.Join(t.TempDir(), "accneat.db"))
	t.Cleanup(func() {
		_ = sqlite.Close()
	})
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreChampionRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(ctx); err != nil {
				t.Fatalf("init: %v", err)
			}

			input := champion("c1", 0.9, "2026-01-02T00:00:00Z")
			if err := store.SaveChampion(ctx, input); err != nil {
				t.Fatalf("save champion: %v", err)
			}

			output, ok, err := store.GetChampion(ctx, "c1")
			if err != nil {
				t.Fatalf("get champion: %v", err)
			}
			if !ok {
				t.Fatal("expected persisted champion")
			}
			if output.SchemaVersion != CurrentSchemaVersion || output.CodecVersion != CurrentCodecVersion {
				t.Fatalf("expected stamped versions, got %+v", output.VersionedRecord)
			}
			if output.Genome.Info() != input.Genome.Info() || output.Genome.GeneCount() != 1 || output.Genome.NodeCount() != 2 {
				t.Fatalf("unexpected champion genome: %s", output.Genome)
			}
			if output.SourcePath != input.SourcePath || output.Experiment != "xor" {
				t.Fatalf("unexpected champion metadata: %+v", output)
			}

			_, ok, err = store.GetChampion(ctx, "missing")
			if err != nil || ok {
				t.Fatalf("expected missing champion, got ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestStoreListChampionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(ctx); err != nil {
				t.Fatalf("init: %v", err)
			}
			for _, c := range []model.Champion{
				champion("old", 0.4, "2026-01-01T00:00:00Z"),
				champion("new", 0.8, "2026-03-01T00:00:00Z"),
				champion("mid", 0.6, "2026-02-01T00:00:00Z"),
			} {
				if err := store.SaveChampion(ctx, c); err != nil {
					t.Fatalf("save %s: %v", c.ID, err)
				}
			}
			// Overwrite keeps a single row per id.
			if err := store.SaveChampion(ctx, champion("old", 0.5, "2026-01-01T00:00:00Z")); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			list, err := store.ListChampions(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(list) != 3 {
				t.Fatalf("expected 3 champions, got %d", len(list))
			}
			if list[0].ID != "new" || list[1].ID != "mid" || list[2].ID != "old" {
				t.Fatalf("unexpected order: %s %s %s", list[0].ID, list[1].ID, list[2].ID)
			}
			if list[2].Genome.Fitness() != 0.5 {
				t.Fatalf("expected overwritten fitness, got %v", list[2].Genome.Fitness())
			}
		})
	}
}

func TestStoreRequiresInit(t *testing.T) {
	ctx := context.Background()
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.SaveChampion(ctx, champion("c1", 0.1, "")); err == nil {
				t.Fatal("expected error before init")
			}
		})
	}
}

func TestStoreRejectsEmptyID(t *testing.T) {
	ctx := context.Background()
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(ctx); err != nil {
				t.Fatalf("init: %v", err)
			}
			if err := store.SaveChampion(ctx, champion("", 0.1, "")); err == nil {
				t.Fatal("expected error for empty id")
			}
		})
	}
}

func TestDecodeChampionVersionMismatch(t *testing.T) {
	data, err := EncodeChampion(champion("c1", 0.2, ""))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeChampion(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch for unstamped record, got %v", err)
	}

	data, err = EncodeChampion(Stamp(champion("c1", 0.2, "")))
	if err != nil {
		t.Fatalf("encode stamped: %v", err)
	}
	decoded, err := DecodeChampion(data)
	if err != nil {
		t.Fatalf("decode stamped: %v", err)
	}
	if decoded.ID != "c1" {
		t.Fatalf("unexpected decoded champion: %+v", decoded)
	}
}
