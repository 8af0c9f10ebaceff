package staging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"TwitchWarehouse/internal/config"
)

// The backspace quote character effectively disables quote interpretation, so
// embedded delimiters and quotes pass through verbatim.
const copyStatement = `
COPY staging_twitch_dataset
FROM '%s' DELIMITER '%s' CSV %s QUOTE E'\b'
`

// Loader bulk-copies every data file of the configured directory into the
// staging table, one COPY per file.
type Loader struct {
	db     *gorm.DB
	logger *logrus.Logger
	cfg    config.StagingConfig
}

func NewLoader(db *gorm.DB, logger *logrus.Logger, cfg config.StagingConfig) *Loader {
	return &Loader{db: db, logger: logger, cfg: cfg}
}

// Load truncates staging and copies every file in. Per-file failures are
// logged and the remaining files still load; the returned count is the number
// of files that copied successfully.
func (l *Loader) Load(ctx context.Context) (int, error) {
	if err := l.db.WithContext(ctx).Exec("TRUNCATE TABLE staging_twitch_dataset").Error; err != nil {
		l.logger.WithError(err).Error("truncate staging table")
	}

	files, err := listDataFiles(l.cfg.Filepath)
	if err != nil {
		return 0, fmt.Errorf("list staging files in %s: %w", l.cfg.Filepath, err)
	}

	loaded := 0
	for _, f := range files {
		stmt := buildCopyStatement(f, l.cfg.Delimiter, l.cfg.Header)
		if err := l.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			l.logger.WithError(err).Errorf("copy %s into staging", f)
			continue
		}
		loaded++
	}
	l.logger.Infof("loaded staging table from %d/%d files", loaded, len(files))
	return loaded, nil
}

// listDataFiles returns the absolute paths of all regular files in dir,
// skipping hidden files.
func listDataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.Name()[0] == '.' || !e.Type().IsRegular() {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, abs)
	}
	return files, nil
}

// buildCopyStatement renders the COPY statement for one file. The statement
// shape is a wire contract; change it and every deployment's load breaks.
func buildCopyStatement(path, delimiter string, header bool) string {
	head := ""
	if header {
		head = "HEADER"
	}
	return fmt.Sprintf(copyStatement, path, delimiter, head)
}
