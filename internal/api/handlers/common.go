package handlers

import (
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies; decklists and pool entries are small.
const maxBodyBytes = 4 << 20

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.New("failed to read request body")
	}
	if len(data) == 0 {
		return nil, errors.New("request body is required")
	}
	return data, nil
}
