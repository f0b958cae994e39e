package gateway

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/campusvoice/student-portal/pkg/logger"
)

// decodeCollection normalizes the two collection shapes the backend uses:
// a bare JSON array, or an envelope `{"results": [...]}`. This is the single
// place envelope handling happens; everything downstream sees one canonical
// slice. Malformed payloads degrade to an empty collection instead of
// failing the caller.
func decodeCollection[T any](body []byte) []T {
	var bare []T
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results
	}

	logger.Warn("unexpected collection shape from backend, treating as empty",
		zap.Int("body_bytes", len(body)))
	return []T{}
}
