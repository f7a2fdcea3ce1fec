package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// BackupManager creates and restores database backups.
type BackupManager struct {
	dbPath string
}

// NewBackupManager creates a backup manager for the database at dbPath.
func NewBackupManager(dbPath string) *BackupManager {
	return &BackupManager{dbPath: dbPath}
}

// BackupConfig controls backup behavior.
type BackupConfig struct {
	// Dir is the directory backups are written to. Default: "<db dir>/backups".
	Dir string

	// Passphrase, when non-empty, encrypts the backup file.
	Passphrase string
}

// BackupInfo describes one backup on disk.
type BackupInfo struct {
	Path      string
	Size      int64
	CreatedAt time.Time
	Encrypted bool
}

// Backup copies the database file into the backup directory, optionally
// encrypting it, and returns the backup path.
func (bm *BackupManager) Backup(config *BackupConfig) (string, error) {
	if config == nil {
		config = &BackupConfig{}
	}
	dir := config.Dir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(bm.dbPath), "backups")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("league-hq-%s.db", time.Now().Format("20060102-150405"))
	backupPath := filepath.Join(dir, name)

	if config.Passphrase != "" {
		backupPath += ".enc"
		if err := EncryptFile(bm.dbPath, backupPath, config.Passphrase); err != nil {
			return "", fmt.Errorf("encrypted backup failed: %w", err)
		}
		return backupPath, nil
	}

	if err := copyFile(bm.dbPath, backupPath); err != nil {
		return "", fmt.Errorf("backup copy failed: %w", err)
	}
	return backupPath, nil
}

// Restore replaces the database file with a backup. Encrypted backups need
// the passphrase they were created with.
func (bm *BackupManager) Restore(backupPath, passphrase string) error {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	if IsEncryptedFile(data) {
		if passphrase == "" {
			return fmt.Errorf("backup is encrypted, passphrase required")
		}
		return DecryptFile(backupPath, bm.dbPath, passphrase)
	}

	if err := copyFile(backupPath, bm.dbPath); err != nil {
		return fmt.Errorf("restore copy failed: %w", err)
	}
	return nil
}

// ListBackups returns known backups in the directory, newest first.
func (bm *BackupManager) ListBackups(dir string) ([]BackupInfo, error) {
	if dir == "" {
		dir = filepath.Join(filepath.Dir(bm.dbPath), "backups")
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "league-hq-") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(dir, entry.Name()),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
			Encrypted: strings.HasSuffix(entry.Name(), ".enc"),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Checksum returns the SHA-256 of a backup file for verification.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
