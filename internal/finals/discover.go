package finals

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Configuration errors. Anything wrapping one of these means no season can
// be processed and nothing should be written.
var (
	ErrInvalidSeason = errors.New("season must be a 4-digit year")
	ErrNoSeason      = errors.New("could not infer season: no final tables found")
	ErrNoFiles       = errors.New("no final tables found for season")
)

// IsConfigError reports whether err is a configuration error
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidSeason) || errors.Is(err, ErrNoSeason) || errors.Is(err, ErrNoFiles)
}

var (
	finalPattern  = regexp.MustCompile(`(?i)^(\d{4})_wk(\d{2})_final\.(csv|xlsx)$`)
	seasonPattern = regexp.MustCompile(`^\d{4}$`)
)

// File is one weekly final table on disk
type File struct {
	Path    string
	Season  string
	Week    int
	Ext     string
	ModTime time.Time
}

// Name returns the file's base name
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// ParseName extracts season and week from a final table file name
func ParseName(name string) (season string, week int, ext string, ok bool) {
	m := finalPattern.FindStringSubmatch(name)
	if m == nil {
		return "", 0, "", false
	}
	week, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, "", false
	}
	return m[1], week, strings.ToLower(m[3]), true
}

// Discover lists every final table in dir, ordered by season, week and extension
func Discover(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		season, week, ext, ok := ParseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		files = append(files, File{
			Path:    filepath.Join(dir, entry.Name()),
			Season:  season,
			Week:    week,
			Ext:     ext,
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		return a.Ext < b.Ext
	})
	return files, nil
}

// Seasons lists the distinct seasons present in dir
func Seasons(dir string) ([]string, error) {
	files, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	var seasons []string
	for _, f := range files {
		if n := len(seasons); n == 0 || seasons[n-1] != f.Season {
			seasons = append(seasons, f.Season)
		}
	}
	return seasons, nil
}

// SeasonFiles returns one table per week of a season. When a week exists
// as both CSV and XLSX the CSV is used.
func SeasonFiles(dir, season string) ([]File, error) {
	files, err := Discover(dir)
	if err != nil {
		return nil, err
	}

	var out []File
	for _, f := range files {
		if f.Season != season {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Week == f.Week {
			log.Debug().
				Str("kept", out[n-1].Name()).
				Str("ignored", f.Name()).
				Msg("Duplicate week table")
			continue
		}
		out = append(out, f)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w %s in %s", ErrNoFiles, season, dir)
	}
	return out, nil
}

// InferSeason returns the season of the most recently modified final table
func InferSeason(dir string) (string, error) {
	files, err := Discover(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoSeason, dir)
	}

	newest := files[0]
	for _, f := range files[1:] {
		if f.ModTime.After(newest.ModTime) || (f.ModTime.Equal(newest.ModTime) && f.Name() > newest.Name()) {
			newest = f
		}
	}
	return newest.Season, nil
}

// ResolveSeason applies the precedence explicit > override > newest file
func ResolveSeason(explicit, override, dir string) (string, error) {
	for _, candidate := range []string{explicit, override} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if !seasonPattern.MatchString(candidate) {
			return "", fmt.Errorf("%w: %q", ErrInvalidSeason, candidate)
		}
		return candidate, nil
	}
	return InferSeason(dir)
}
