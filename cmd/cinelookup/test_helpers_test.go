package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cinelookup/internal/config"
	"cinelookup/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	server     *httptest.Server
	requests   *atomic.Int64
}

func setupCLITestEnv(t *testing.T, handler http.Handler, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	home := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("OMDB_API_KEY", "")

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithTMDBServer(server)}, opts...)...)
	cfg.Logging.Level = "error"
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		server:     server,
		requests:   &requests,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}

// catalogHandler serves a tiny catalog: one movie (603), one person (6384)
// and a popular list. Every other search returns no results.
func catalogHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/multi", func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(strings.ToLower(r.URL.Query().Get("query")), "matrix") {
			writeBody(w, `{"results":[]}`)
			return
		}
		writeBody(w, `{"results":[
			{"id":603,"media_type":"movie","title":"The Matrix","release_date":"1999-03-30","popularity":80.5,"vote_average":8.2,"vote_count":24000,"poster_path":"/matrix.jpg"},
			{"id":6384,"media_type":"person","name":"Keanu Reeves","popularity":60}
		]}`)
	})
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(strings.ToLower(r.URL.Query().Get("query")), "matrix") {
			writeBody(w, `{"results":[]}`)
			return
		}
		writeBody(w, `{"results":[{"id":603,"title":"The Matrix","release_date":"1999-03-30","popularity":80.5,"poster_path":"/matrix.jpg"}]}`)
	})
	mux.HandleFunc("/search/tv", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"results":[]}`)
	})
	mux.HandleFunc("/search/person", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"results":[{"id":6384,"name":"Keanu Reeves","popularity":60,"profile_path":"/keanu.jpg"}]}`)
	})
	mux.HandleFunc("/movie/603", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{
			"id":603,"title":"The Matrix","original_title":"The Matrix","release_date":"1999-03-30",
			"runtime":136,"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}],
			"overview":"A hacker learns the truth about his reality.",
			"vote_average":8.2,"vote_count":24000,"poster_path":"/matrix.jpg","imdb_id":"tt0133093",
			"credits":{"cast":[{"name":"Keanu Reeves","character":"Neo","order":0}],
				"crew":[{"name":"Lana Wachowski","job":"Director","department":"Directing"}]}
		}`)
	})
	mux.HandleFunc("/movie/603/images", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"id":603,
			"posters":[{"file_path":"/low.jpg","width":500,"height":750,"iso_639_1":"en","vote_average":2,"vote_count":1},
				{"file_path":"/high.jpg","width":2000,"height":3000,"iso_639_1":"en","vote_average":5.5,"vote_count":10}],
			"backdrops":[{"file_path":"/wide.jpg","width":3840,"height":2160,"iso_639_1":null,"vote_average":5,"vote_count":4}]}`)
	})
	mux.HandleFunc("/movie/popular", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"results":[
			{"id":603,"title":"The Matrix","release_date":"1999-03-30","popularity":80.5,"vote_average":8.2},
			{"id":604,"title":"The Matrix Reloaded","release_date":"2003-05-15","popularity":40.1,"vote_average":7.0}
		]}`)
	})
	mux.HandleFunc("/person/6384", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"id":6384,"name":"Keanu Reeves","known_for_department":"Acting","birthday":"1964-09-02",
			"biography":"Canadian actor.","profile_path":"/keanu.jpg",
			"movie_credits":{"cast":[{"id":603,"title":"The Matrix","release_date":"1999-03-30","character":"Neo","vote_average":8.2,"vote_count":24000}]},
			"tv_credits":{"cast":[]}}`)
	})
	mux.HandleFunc("/configuration", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"images":{}}`)
	})
	mux.HandleFunc("/images/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("\xff\xd8\xff\xe0fake-jpeg"))
	})
	return mux
}

func writeBody(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}
