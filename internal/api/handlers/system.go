package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/twinsuns/league-hq/internal/api/response"
	"github.com/twinsuns/league-hq/internal/storage"
	"github.com/twinsuns/league-hq/internal/version"
)

// SystemHandler serves server status and database backup operations.
type SystemHandler struct {
	db      *storage.DB
	backups *storage.BackupManager
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(db *storage.DB, backups *storage.BackupManager) *SystemHandler {
	return &SystemHandler{db: db, backups: backups}
}

// GetStatus reports server and database health.
func (h *SystemHandler) GetStatus(w http.ResponseWriter, _ *http.Request) {
	dbHealthy := h.db != nil && h.db.Ping() == nil

	response.Success(w, map[string]interface{}{
		"version":  version.GetVersion(),
		"database": dbHealthy,
	})
}

// BackupRequest optionally carries a passphrase for an encrypted backup.
type BackupRequest struct {
	Passphrase string `json:"passphrase,omitempty"`
}

// CreateBackup writes a backup of the database file, encrypted when a
// passphrase is given.
func (h *SystemHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	if h.backups == nil {
		response.InternalError(w, errors.New("backups are not configured"))
		return
	}

	var req BackupRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, errors.New("invalid request body"))
			return
		}
	}

	path, err := h.backups.Backup(&storage.BackupConfig{Passphrase: req.Passphrase})
	if err != nil {
		response.InternalError(w, err)
		return
	}

	checksum, err := storage.Checksum(path)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Created(w, map[string]string{
		"path":     path,
		"checksum": checksum,
	})
}

// ListBackups returns the known backups, newest first.
func (h *SystemHandler) ListBackups(w http.ResponseWriter, _ *http.Request) {
	if h.backups == nil {
		response.InternalError(w, errors.New("backups are not configured"))
		return
	}

	backups, err := h.backups.ListBackups("")
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, backups)
}
