package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"alfredoptarigan/job-project-generator/internal/models"
	"alfredoptarigan/job-project-generator/internal/testutil"
)

func newTestRepo(t *testing.T) ArtifactRepository {
	t.Helper()
	return NewArtifactRepository(testutil.NewTestDB(t))
}

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &models.Artifact{InputText: "Backend engineer, Go", GeneratedText: "# Job Post Analysis\nGo"}
	second := &models.Artifact{InputText: "Data analyst, SQL", GeneratedText: "# Job Post Analysis\nSQL"}

	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	if first.ID != 1 {
		t.Errorf("first.ID = %d, want 1", first.ID)
	}
	if second.ID <= first.ID {
		t.Errorf("second.ID = %d, want > %d", second.ID, first.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set on insert")
	}
}

func TestCreateRejectsPresetID(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Create(context.Background(), &models.Artifact{ID: 7, InputText: "x", GeneratedText: "y"})
	if err == nil {
		t.Fatal("expected error for preset id")
	}

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}

func TestFindByIDRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := &models.Artifact{
		InputText:     "Data analyst role requiring SQL and Tableau",
		GeneratedText: "# Job Post Analysis\n...",
		CreatedAt:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 3; i++ {
		got, err := repo.FindByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if diff := cmp.Diff(created, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
			t.Errorf("FindByID mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestFindByIDUnknown(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), 42)
	if !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound, got %v", err)
	}
}

func TestConcurrentCreatesGetUniqueIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const workers, perWorker = 4, 5
	var (
		mu  sync.Mutex
		ids = make(map[uint]bool)
		wg  sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				a := &models.Artifact{InputText: "concurrent", GeneratedText: "plan"}
				if err := repo.Create(ctx, a); err != nil {
					t.Errorf("Create: %v", err)
					return
				}
				mu.Lock()
				if ids[a.ID] {
					t.Errorf("duplicate id %d", a.ID)
				}
				ids[a.ID] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != workers*perWorker || len(ids) != workers*perWorker {
		t.Errorf("Count = %d, unique ids = %d, want %d", n, len(ids), workers*perWorker)
	}
}
