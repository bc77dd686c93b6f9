package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, APIRequestDuration)
	assert.NotNil(t, APIRequestsTotal)
	assert.NotNil(t, TokenRefreshTotal)
	assert.NotNil(t, WebRequestDuration)
	assert.NotNil(t, WebRequestsTotal)
	assert.NotNil(t, CartRollbacksTotal)
}
