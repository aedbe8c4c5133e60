// Package backup keeps rotated copies of the SQLite database in a backups
// directory next to it.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/estudai/estudai/internal/constants"
	"github.com/estudai/estudai/internal/logger"
)

const (
	// MaxBackups is how many backups rotation keeps.
	MaxBackups = 14
	DirName    = "backups"

	filePrefix  = constants.AppName + "-"
	fileSuffix  = ".db"
	stampLayout = "20060102-150405"
)

// ErrNotEstudai is returned when a file is a SQLite database without the
// tasks table.
var ErrNotEstudai = errors.New("not an estudai database")

type Info struct {
	Path  string
	Taken time.Time
	Size  int64
}

func (i Info) Name() string {
	return filepath.Base(i.Path)
}

type Manager struct {
	dbPath string
	dir    string
	keep   int
	now    func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		keep:   MaxBackups,
		now:    time.Now,
	}
}

func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Dir returns the backup directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Create writes a new backup and drops the oldest ones beyond MaxBackups.
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "dir", m.dir, "error", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dest, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := vacuumInto(m.dbPath, dest); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	logger.Info("Database backup created", "path", dest)
	return dest, nil
}

// nextPath returns estudai-<stamp>.db, or estudai-<stamp>-N.db when
// several backups land in the same second.
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(stampLayout)
	path := filepath.Join(m.dir, filePrefix+stamp+fileSuffix)
	for n := 1; fileExists(path); n++ {
		if n > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", filePrefix, stamp, n, fileSuffix))
	}
	return path, nil
}

func vacuumInto(src, dest string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := checkSchema(db); err != nil {
		return err
	}
	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying the file instead", "error", err)
		db.Close()
		return copyFile(src, dest)
	}
	return nil
}

// List returns the backups newest first. Files that do not follow the
// naming scheme are ignored.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		if len(stamp) < len(stampLayout) {
			continue
		}
		taken, err := time.ParseInLocation(stampLayout, stamp[:len(stampLayout)], time.Local)
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{Path: filepath.Join(m.dir, name), Taken: taken, Size: info.Size()})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Taken.Equal(backups[j].Taken) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Taken.After(backups[j].Taken)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := m.keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Resolve finds a backup given as an absolute path, a path relative to the
// working directory or a file name inside the backup directory.
func (m *Manager) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		if !fileExists(name) {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if fileExists(name) {
		return filepath.Abs(name)
	}
	inDir := filepath.Join(m.dir, name)
	if fileExists(inDir) {
		return inDir, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", m.dir)
}

// Restore replaces the database with the backup at path. The current
// database is saved first, outside rotation; its path is returned, or ""
// when there was no database. The store must be closed.
func (m *Manager) Restore(path string) (string, error) {
	if err := verify(path); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var saved string
	if fileExists(m.dbPath) {
		var err error
		if saved, err = m.create(); err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return saved, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tmp, "error", rmErr)
		}
		return saved, fmt.Errorf("failed to restore database: %w", err)
	}
	// Stale WAL files belong to the replaced database.
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(m.dbPath + suffix); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove stale sqlite file", "path", m.dbPath+suffix, "error", err)
		}
	}
	logger.Info("Database restored", "from", path, "saved", saved)
	return saved, nil
}

func verify(path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return checkSchema(db)
}

func checkSchema(db *sql.DB) error {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", constants.TableTasks).Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotEstudai
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
