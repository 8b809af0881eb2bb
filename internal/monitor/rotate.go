package monitor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mbbank-monitor/pkg/logger"
)

// RotateLogs archives and truncates every non-empty *.log file in dir. Each
// file's content is copied to "<name>.<yyyymmdd>", with ".1", ".2", … suffixes
// disambiguating same-day collisions, and the original is reset to a single
// marker line. A failure on one file never prevents rotation of the others.
func RotateLogs(dir string, now time.Time, log *logger.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Error("Failed to list log directory", "dir", dir, "error", err)
		return
	}

	stamp := now.Format("20060102")
	rotated := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		backup, err := rotateFile(path, stamp, now)
		if err != nil {
			log.Error("Failed to rotate log file", "file", path, "error", err)
			continue
		}
		if backup == "" {
			log.Debug("Skipping empty log file", "file", path)
			continue
		}

		rotated++
		log.Info("Log file rotated", "file", path, "backup", backup)
	}

	log.Info("Log rotation complete", "rotated", rotated)
}

// rotateFile archives a single log file. Returns the backup path, or "" when
// the file was empty and left alone.
func rotateFile(path, stamp string, now time.Time) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() == 0 {
		return "", nil
	}

	// Never overwrite an earlier backup from the same day
	backup := fmt.Sprintf("%s.%s", path, stamp)
	base := backup
	for i := 1; ; i++ {
		if _, err := os.Stat(backup); os.IsNotExist(err) {
			break
		}
		backup = fmt.Sprintf("%s.%d", base, i)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(backup, data, 0644); err != nil {
		return "", err
	}

	marker := fmt.Sprintf("--- Log file cleared at %s ---\n", now.Format(time.RFC3339))
	if err := os.WriteFile(path, []byte(marker), 0644); err != nil {
		return "", err
	}

	return backup, nil
}
