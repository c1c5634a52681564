// Package termfile persists termination records as a plain-text file.
package termfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"driprun/internal/domain"
	"driprun/internal/ports"
)

type Store struct {
	path string
}

var _ ports.TerminationStore = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path}
}

// Save overwrites the log file with one line per terminated account.
// Nothing is written when records is empty.
func (s *Store) Save(records []domain.TerminationRecord) error {
	if len(records) == 0 {
		return nil
	}

	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = rec.Line()
	}
	data := []byte(strings.Join(lines, "\n") + "\n")

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write termination log: %w", err)
	}
	log.Info().Msgf("wrote %d termination records to %s", len(records), s.path)
	return nil
}
