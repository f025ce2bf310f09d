package artwork

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cinelookup/internal/services"
	"cinelookup/internal/testsupport"
)

func newImageServer(t *testing.T, body []byte) (*httptest.Server, *atomic.Int32, *sync.Map) {
	t.Helper()
	var hits atomic.Int32
	var paths sync.Map
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		paths.Store(r.URL.Path, true)
		if filepath.Base(r.URL.Path) == "missing.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server, &hits, &paths
}

func TestFetchOrDownloadIsIdempotent(t *testing.T) {
	server, hits, paths := newImageServer(t, []byte("jpeg-bytes"))
	dir := t.TempDir()
	cache := New(dir, server.URL)

	first, err := cache.FetchOrDownload(context.Background(), KindPoster, 872585, "/abc123.jpg")
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := cache.FetchOrDownload(context.Background(), KindPoster, 872585, "/abc123.jpg")
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if first != second {
		t.Fatalf("paths differ: %q vs %q", first, second)
	}
	if want := filepath.Join(dir, "poster_872585_abc123.jpg"); first != want {
		t.Fatalf("path = %q, want %q", first, want)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one network fetch, got %d", hits.Load())
	}
	if _, ok := paths.Load("/w500/abc123.jpg"); !ok {
		t.Fatal("expected poster size in request path")
	}
	data, err := os.ReadFile(first)
	if err != nil || string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected file content %q err=%v", data, err)
	}
}

func TestFetchOrDownloadCollapsesConcurrentRequests(t *testing.T) {
	server, hits, _ := newImageServer(t, []byte("png"))
	cache := New(t.TempDir(), server.URL, WithSize(KindBackdrop, "original"))

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path, err := cache.FetchOrDownload(context.Background(), KindBackdrop, 7, "/bg.png")
			if err != nil {
				t.Errorf("fetch %d: %v", i, err)
			}
			results[i] = path
		}(i)
	}
	wg.Wait()
	for _, path := range results {
		if path != results[0] {
			t.Fatalf("paths differ: %v", results)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected a single download, got %d", hits.Load())
	}
}

// newGatedServer holds every response until release is called.
func newGatedServer(t *testing.T, body []byte) (*httptest.Server, func(), *atomic.Int32) {
	t.Helper()
	gate := make(chan struct{})
	var once sync.Once
	release := func() { once.Do(func() { close(gate) }) }
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-gate
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	t.Cleanup(release)
	return server, release, &hits
}

func TestFetchOrDownloadSurvivesFirstCallerGivingUp(t *testing.T) {
	server, release, hits := newGatedServer(t, []byte("jpeg"))
	dir := t.TempDir()
	cache := New(dir, server.URL)

	short, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.FetchOrDownload(short, KindPoster, 7, "/p.jpg")
		firstErr <- err
	}()
	for hits.Load() == 0 {
		time.Sleep(5 * time.Millisecond)
	}

	type result struct {
		path string
		err  error
	}
	second := make(chan result, 1)
	go func() {
		path, err := cache.FetchOrDownload(context.Background(), KindPoster, 7, "/p.jpg")
		second <- result{path: path, err: err}
	}()

	select {
	case err := <-firstErr:
		if !errors.Is(err, services.ErrArtworkUnavailable) || !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("first caller should stop at its own deadline, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first caller did not return after its deadline")
	}
	release()

	select {
	case r := <-second:
		if r.err != nil {
			t.Fatalf("second caller inherited the first caller's cancellation: %v", r.err)
		}
		if r.path != filepath.Join(dir, "poster_7_p.jpg") {
			t.Fatalf("unexpected path %q", r.path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second caller did not finish")
	}
	if hits.Load() != 1 {
		t.Fatalf("expected a single shared download, got %d", hits.Load())
	}
}

func TestFetchOrDownloadFinishesAfterCallerLeaves(t *testing.T) {
	server, release, _ := newGatedServer(t, []byte("jpeg"))
	dir := t.TempDir()
	cache := New(dir, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := cache.FetchOrDownload(ctx, KindBackdrop, 9, "/late.jpg")
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled wait, got %v", err)
	}
	release()

	target := filepath.Join(dir, "backdrop_9_late.jpg")
	deadline := time.Now().Add(2 * time.Second)
	for !cached(target) {
		if time.Now().After(deadline) {
			t.Fatal("late download never landed in the cache")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestFetchOrDownloadFailures(t *testing.T) {
	server, hits, _ := newImageServer(t, []byte("x"))
	dir := t.TempDir()

	disabled := New(dir, server.URL, WithDisabled())
	if _, err := disabled.FetchOrDownload(context.Background(), KindPoster, 1, "/a.jpg"); !errors.Is(err, services.ErrArtworkUnavailable) {
		t.Fatalf("expected artwork unavailable when disabled, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatal("disabled cache must not hit the network")
	}

	cache := New(dir, server.URL)
	if _, err := cache.FetchOrDownload(context.Background(), KindPoster, 1, ""); !errors.Is(err, services.ErrArtworkUnavailable) {
		t.Fatalf("expected artwork unavailable for empty path, got %v", err)
	}
	if _, err := cache.FetchOrDownload(context.Background(), KindPoster, 1, "/missing.jpg"); !errors.Is(err, services.ErrArtworkUnavailable) {
		t.Fatalf("expected artwork unavailable for 404, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "poster_1_missing.jpg")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("failed download must not leave a file, stat err=%v", err)
	}
}

func TestClearAllEmpty(t *testing.T) {
	cache := New(filepath.Join(t.TempDir(), "absent"), "http://unused")
	stats, err := cache.ClearAll(context.Background())
	if err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if stats.Count != 0 || stats.FreedMB != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}

	cache = New(t.TempDir(), "http://unused")
	stats, err = cache.ClearAll(context.Background())
	if err != nil || stats.Count != 0 || stats.FreedMB != 0 {
		t.Fatalf("expected zero stats for empty dir, got %+v err=%v", stats, err)
	}
}

func TestClearAllRemovesOnlyRecognizedFiles(t *testing.T) {
	body := make([]byte, 2048)
	server, _, _ := newImageServer(t, body)
	dir := t.TempDir()
	cache := New(dir, server.URL)
	ctx := context.Background()

	downloads := []struct {
		kind  Kind
		id    int64
		image string
	}{
		{KindPoster, 1, "/a.jpg"},
		{KindBackdrop, 1, "/b.jpg"},
		{KindPerson, 2, "/c.png"},
	}
	for _, d := range downloads {
		if _, err := cache.FetchOrDownload(ctx, d.kind, d.id, d.image); err != nil {
			t.Fatalf("download %s: %v", d.image, err)
		}
	}
	// legacy prefix from older layouts
	testsupport.WriteFile(t, filepath.Join(dir, "movie_9_legacy.jpg"), int64(len(body)))
	keep := []string{"notes.txt", "poster_1_a.webp", "random.jpg"}
	for _, name := range keep {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("keep"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	before, err := cache.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if before.Count != 4 || before.Bytes != 4*2048 {
		t.Fatalf("unexpected stats %+v", before)
	}

	stats, err := cache.ClearAll(ctx)
	if err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if stats.Count != 4 {
		t.Fatalf("count = %d, want 4", stats.Count)
	}
	if want := float64(4*2048) / (1024 * 1024); stats.FreedMB != want {
		t.Fatalf("freed = %f, want %f", stats.FreedMB, want)
	}
	for _, name := range keep {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s should remain: %v", name, err)
		}
	}
	after, err := cache.Stats(ctx)
	if err != nil || after.Count != 0 {
		t.Fatalf("expected no recognized files after clear, got %+v err=%v", after, err)
	}
}

func TestFileName(t *testing.T) {
	cases := []struct {
		kind   Kind
		id     int64
		remote string
		want   string
	}{
		{KindPoster, 603, "/pEoqbqtLc4CcwDUDqxmEDSWpWTZ.jpg", "poster_603_pEoqbqtLc4CcwDUDqxmEDSWpWTZ.jpg"},
		{KindPerson, 287, "/nested/dir/face.png", "person_287_face.png"},
		{KindBackdrop, 1, "", ""},
		{KindBackdrop, 1, "/", ""},
	}
	for _, tc := range cases {
		if got := FileName(tc.kind, tc.id, tc.remote); got != tc.want {
			t.Fatalf("FileName(%s, %d, %q) = %q, want %q", tc.kind, tc.id, tc.remote, got, tc.want)
		}
	}
}
