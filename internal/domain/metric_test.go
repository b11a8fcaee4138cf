package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricSample_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sample  MetricSample
		wantErr error
	}{
		{name: "amostra válida", sample: MetricSample{Impressions: 10, Spend: 5, CTR: 1.5}},
		{name: "cliques negativos", sample: MetricSample{Clicks: -1}, wantErr: ErrNegativeMetric},
		{name: "gasto negativo", sample: MetricSample{Spend: -0.01}, wantErr: ErrNegativeMetric},
		{name: "gasto NaN", sample: MetricSample{Spend: math.NaN()}, wantErr: ErrInvalidMetric},
		{name: "ROAS infinito", sample: MetricSample{ROAS: math.Inf(1)}, wantErr: ErrInvalidMetric},
		{name: "CPA infinito negativo", sample: MetricSample{CPA: math.Inf(-1)}, wantErr: ErrInvalidMetric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sample.Validate()

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsKind(err, KindValidation))
		})
	}
}
