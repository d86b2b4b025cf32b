package services

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/homescope/homescope/internal/models"
	"github.com/homescope/homescope/internal/repositories"
	"github.com/homescope/homescope/internal/secrets"
	"github.com/homescope/homescope/pkg/logger"
	"github.com/homescope/homescope/pkg/metrics"
)

// APIKeyService manages third-party service credentials. Records live in a
// flat file; every mutation rewrites the full set and republishes the
// materialized environment variables through the injected registry.
type APIKeyService struct {
	apiKeyRepo *repositories.APIKeyRepository
	registry   secrets.Registry
}

func NewAPIKeyService(apiKeyRepo *repositories.APIKeyRepository, registry secrets.Registry) *APIKeyService {
	return &APIKeyService{
		apiKeyRepo: apiKeyRepo,
		registry:   registry,
	}
}

// Create stores a new API key. If a record already exists for the same
// normalized service, it is replaced in place. The returned record carries
// the plaintext secret; List masks it.
func (s *APIKeyService) Create(request *models.APIKeyRequest) (*models.APIKey, error) {
	if err := request.Validate(); err != nil {
		metrics.GetMetrics().KeyStoreOperationsTotal.WithLabelValues("create", "invalid").Inc()
		return nil, err
	}

	key := &models.APIKey{
		ID:        randomHex(4),
		Name:      strings.TrimSpace(request.Name),
		Service:   models.NormalizeService(request.Service),
		Key:       randomHex(32),
		CreatedAt: time.Now().UTC(),
	}

	keys := s.loadAll()

	replaced := false
	for i, existing := range keys {
		if existing.Service == key.Service {
			keys[i] = key
			replaced = true
			break
		}
	}
	if !replaced {
		keys = append(keys, key)
	}

	s.persist(keys)
	s.materialize(keys)

	metrics.GetMetrics().KeyStoreOperationsTotal.WithLabelValues("create", "ok").Inc()
	return key, nil
}

// List returns all stored keys with masked secrets. It fails open: an
// unreadable or malformed file yields an empty list.
func (s *APIKeyService) List() []*models.APIKeyResponse {
	keys := s.loadAll()

	responses := make([]*models.APIKeyResponse, 0, len(keys))
	for _, key := range keys {
		responses = append(responses, key.Masked())
	}
	return responses
}

// Delete removes one record matched by, in order of preference: exact id,
// case-insensitive service name, or the legacy "<service>1" alias. The first
// match in iteration order wins and at most one record is removed.
func (s *APIKeyService) Delete(identifier string) error {
	keys := s.loadAll()

	idx := -1
	for i, key := range keys {
		if key.ID == identifier {
			idx = i
			break
		}
	}
	if idx < 0 {
		for i, key := range keys {
			if strings.EqualFold(key.Service, identifier) {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		for i, key := range keys {
			if strings.EqualFold(key.Service+"1", identifier) {
				idx = i
				break
			}
		}
	}

	if idx < 0 {
		metrics.GetMetrics().KeyStoreOperationsTotal.WithLabelValues("delete", "not_found").Inc()
		return &models.NotFoundError{Resource: "API key", Identifier: identifier}
	}

	keys = append(keys[:idx], keys[idx+1:]...)

	s.persist(keys)
	s.materialize(keys)

	metrics.GetMetrics().KeyStoreOperationsTotal.WithLabelValues("delete", "ok").Inc()
	return nil
}

// MaterializeEnvironment publishes every persisted record's variable into
// the registry. Idempotent and total: existing values are overwritten.
// Called once at startup and after every mutation.
func (s *APIKeyService) MaterializeEnvironment() {
	s.materialize(s.loadAll())
}

// loadAll reads the record set, degrading to empty on persistence errors
func (s *APIKeyService) loadAll() []*models.APIKey {
	keys, err := s.apiKeyRepo.Load()
	if err != nil {
		logger.WithError(err).WithField("path", s.apiKeyRepo.Path()).Error("Failed to read API key file, treating as empty")
		return nil
	}
	return keys
}

// persist writes the record set, logging and swallowing failures. A failed
// write leaves the previous file contents in place.
func (s *APIKeyService) persist(keys []*models.APIKey) {
	if err := s.apiKeyRepo.Save(keys); err != nil {
		logger.WithError(err).WithField("path", s.apiKeyRepo.Path()).Error("Failed to write API key file")
	}
}

func (s *APIKeyService) materialize(keys []*models.APIKey) {
	for _, key := range keys {
		s.registry.Set(models.EnvVarName(key.Service), key.Key)
	}
}

// randomHex returns n cryptographically random bytes, hex-encoded.
// rand.Read never fails on supported platforms.
func randomHex(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
