package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRender(t *testing.T) {
	okBefore := testutil.ToFloat64(RendersTotal.WithLabelValues(StatusOK))
	emptyBefore := testutil.ToFloat64(RendersTotal.WithLabelValues(StatusNoGeometry))

	ObserveRender(StatusOK, time.Now().Add(-time.Second), 12)
	ObserveRender(StatusNoGeometry, time.Now(), 0)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(RendersTotal.WithLabelValues(StatusOK)))
	assert.Equal(t, emptyBefore+1, testutil.ToFloat64(RendersTotal.WithLabelValues(StatusNoGeometry)))
}
