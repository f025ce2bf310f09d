package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"cinelookup/internal/config"
	"cinelookup/internal/identification/tmdb"
	"cinelookup/internal/media"
	"cinelookup/internal/services"
	"cinelookup/internal/services/omdb"
)

const (
	checkTimeout = 5 * time.Second
	// checkIMDbID is a long-lived title used to validate the OMDb key.
	checkIMDbID = "tt0111161"
)

// CheckTMDB verifies the catalog is reachable and accepts the key.
func CheckTMDB(ctx context.Context, cfg *config.Config) Result {
	const name = "TMDB"
	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language, tmdb.WithTimeout(checkTimeout))
	if err != nil {
		return Result{Name: name, Detail: "API key missing"}
	}
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if err := client.Ping(checkCtx); err != nil {
		return Result{Name: name, Detail: summarize(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("Reachable (language %s)", cfg.TMDB.Language)}
}

// CheckOMDb verifies the rating service key. A missing key is not a
// failure: ratings are optional.
func CheckOMDb(ctx context.Context, cfg *config.Config) Result {
	const name = "OMDb"
	client, err := omdb.New(cfg.OMDb.APIKey, cfg.OMDb.BaseURL, omdb.WithTimeout(checkTimeout))
	if err != nil {
		return Result{Name: name, Passed: true, Detail: "Disabled (no API key)"}
	}
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if _, err := client.FetchRating(checkCtx, &media.Detail{IMDbID: checkIMDbID}); err != nil {
		return Result{Name: name, Detail: summarize(err)}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarize(err error) string {
	if errors.Is(err, services.ErrConfigurationMissing) {
		return "auth failed (invalid api key)"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (service unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (service unreachable)"
	}
	return "unreachable"
}
