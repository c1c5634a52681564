package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"driprun/internal/domain"
	"driprun/internal/ingest"
	"driprun/internal/wallet"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "upload failed, please choose a file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	phrases, err := ingest.ReadSeedPhrases(header.Filename, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ids := make([]domain.Identity, 0, len(phrases))
	for i, phrase := range phrases {
		id, err := wallet.FromSeedPhrase(phrase)
		if err != nil {
			// +2: rows are 1-based and the header row is skipped
			http.Error(w, fmt.Sprintf("row %d: %v", i+2, err), http.StatusBadRequest)
			return
		}
		ids = append(ids, id)
	}

	if err := s.runner.LoadWorklist(ids); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fmt.Fprintf(w, "loaded %d seed phrases, ready to execute", len(ids))
}

func (s *Server) handleIdentities(w http.ResponseWriter, r *http.Request) {
	seeds := s.runner.Identities()
	if len(seeds) == 0 {
		http.Error(w, "please upload a seed phrase file first", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(seeds)
}

// flexInt decodes JSON numbers and numeric strings; dashboards post the
// config form both ways.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %s", s)
	}
	*f = flexInt(n)
	return nil
}

type setConfigReq struct {
	BatchSize           flexInt `json:"batchSize"`
	MaxTransactionCount flexInt `json:"maxTransactionCount"`
	MaxFailureCount     flexInt `json:"maxFailureCount"`
}

func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var cfg domain.RunConfig

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req setConfigReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cfg = domain.RunConfig{
			BatchSize:   int(req.BatchSize),
			MaxAttempts: int(req.MaxTransactionCount),
			MaxFailures: int(req.MaxFailureCount),
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var err error
		if cfg, err = configFromForm(r); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := s.runner.SetConfig(cfg); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fmt.Fprint(w, "configuration saved")
}

func configFromForm(r *http.Request) (domain.RunConfig, error) {
	var cfg domain.RunConfig
	for field, dst := range map[string]*int{
		"batchSize":           &cfg.BatchSize,
		"maxTransactionCount": &cfg.MaxAttempts,
		"maxFailureCount":     &cfg.MaxFailures,
	} {
		n, err := strconv.Atoi(strings.TrimSpace(r.FormValue(field)))
		if err != nil {
			return cfg, fmt.Errorf("%w: %s is not an integer", domain.ErrConfig, field)
		}
		*dst = n
	}
	return cfg, nil
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	summary, err := s.runner.Execute(r.Context())
	switch {
	case errors.Is(err, domain.ErrNoWorklist):
		http.Error(w, "please upload a seed phrase file first", http.StatusBadRequest)
	case errors.Is(err, domain.ErrRunInProgress):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, context.Canceled):
		fmt.Fprint(w, "run aborted")
	case err != nil:
		http.Error(w, "an error occurred during execution", http.StatusInternalServerError)
	default:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(summary)
	}
}

func (s *Server) handleAbort(w http.ResponseWriter, r *http.Request) {
	if !s.runner.Abort() {
		http.Error(w, "no run in progress", http.StatusConflict)
		return
	}
	fmt.Fprint(w, "abort requested")
}
