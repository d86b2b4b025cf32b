package repositories

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/homescope/homescope/internal/models"
)

// recordPrefix versions the authoritative record encoding. Lines without it
// (the generated header and the derived NAME=value lines) are skipped on read.
const recordPrefix = "key/v1 "

const fileHeader = "# homescope API keys. Generated file, do not edit by hand."

// APIKeyRepository persists API key records in a single flat file. Every
// mutation rewrites the whole file; there is no locking, so two concurrent
// writers race last-writer-wins. Call volume is administrative, not a hot
// path.
type APIKeyRepository struct {
	path string
}

func NewAPIKeyRepository(path string) *APIKeyRepository {
	return &APIKeyRepository{path: path}
}

// Path returns the backing file location
func (r *APIKeyRepository) Path() string {
	return r.path
}

// Load reads and parses all records from the file. A missing file yields an
// empty set. Malformed record lines are skipped.
func (r *APIKeyRepository) Load() ([]*models.APIKey, error) {
	file, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var keys []*models.APIKey
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, ok := decodeRecord(scanner.Text())
		if !ok {
			continue
		}
		keys = append(keys, key)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

// Save rewrites the whole file: one authoritative record line per key,
// followed by the derived environment-style lines for runtime consumption.
// The derived lines are regenerated on every save and never parsed back.
func (r *APIKeyRepository) Save(keys []*models.APIKey) error {
	var sb strings.Builder
	sb.WriteString(fileHeader)
	sb.WriteString("\n")

	for _, key := range keys {
		sb.WriteString(encodeRecord(key))
		sb.WriteString("\n")
	}

	for _, key := range keys {
		sb.WriteString(models.EnvVarName(key.Service))
		sb.WriteString("=")
		sb.WriteString(key.Key)
		sb.WriteString("\n")
	}

	return os.WriteFile(r.path, []byte(sb.String()), 0600)
}

func encodeRecord(key *models.APIKey) string {
	return fmt.Sprintf("%s%s|%s|%s|%s|%s",
		recordPrefix,
		key.ID,
		key.Name,
		key.Service,
		key.Key,
		key.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
}

func decodeRecord(line string) (*models.APIKey, bool) {
	if !strings.HasPrefix(line, recordPrefix) {
		return nil, false
	}

	fields := strings.Split(strings.TrimPrefix(line, recordPrefix), "|")
	if len(fields) != 5 {
		return nil, false
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields[4])
	if err != nil {
		return nil, false
	}

	key := &models.APIKey{
		ID:        fields[0],
		Name:      fields[1],
		Service:   fields[2],
		Key:       fields[3],
		CreatedAt: createdAt,
	}
	if key.ID == "" || key.Name == "" || key.Service == "" || key.Key == "" {
		return nil, false
	}

	return key, true
}
