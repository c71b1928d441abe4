package runutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NumberedName returns the first dir/prefix<N>suffix (N ≥ 1) that does
// not already exist.
func NumberedName(dir, prefix, suffix string) string {
	for n := 1; ; n++ {
		name := filepath.Join(dir, fmt.Sprintf("%s%d%s", prefix, n, suffix))
		if _, err := os.Stat(name); os.IsNotExist(err) {
			return name
		}
	}
}

// BackupExisting moves path aside to a generated backup name in dir and
// returns the backup path, or "" when path did not exist. The caller
// removes the backup on successful exit, so an aborted run still leaves
// the original recoverable.
func BackupExisting(path, dir string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	backup := NumberedName(dir, "indelfix_backup", "_"+filepath.Base(path))
	if err := os.Rename(path, backup); err != nil {
		return "", err
	}
	return backup, nil
}

// LogName derives a fresh trace-log path from the genome file name:
// <stem>_run<N>.log in dir.
func LogName(dir, genomePath string) string {
	stem := filepath.Base(genomePath)
	if i := strings.LastIndex(stem, "."); i > 0 {
		stem = stem[:i]
	}
	return NumberedName(dir, "indelfix_"+stem+"_run", ".log")
}
