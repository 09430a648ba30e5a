package provider

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// offlineCandidates returns the search path for a provider's offline dataset,
// most specific first. The file holds the provider's native response shape,
// exactly what the live API would return, so normalization is identical for
// both paths.
func offlineCandidates(name, dir string) []string {
	file := name + "_offline.json"
	var paths []string
	if dir != "" {
		paths = append(paths, filepath.Join(dir, file))
	}
	return append(paths, filepath.Join("data", file), file)
}

// loadOfflineDataset reads the first readable offline dataset on the search
// path. Unreadable candidates are logged and skipped.
func loadOfflineDataset(name, dir string) ([]byte, error) {
	candidates := offlineCandidates(name, dir)
	for _, p := range candidates {
		raw, err := os.ReadFile(p)
		if err != nil {
			if !os.IsNotExist(err) {
				slog.Error("offline dataset unreadable",
					slog.String("provider", name),
					slog.String("path", p),
					slog.Any("error", err))
			}
			continue
		}
		slog.Debug("loaded offline dataset",
			slog.String("provider", name),
			slog.String("path", p))
		return raw, nil
	}
	return nil, fmt.Errorf("%w: %s not in %s",
		ErrOfflineDataNotFound, name+"_offline.json", strings.Join(candidates, ", "))
}
