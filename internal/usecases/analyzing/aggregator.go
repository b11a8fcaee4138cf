package analyzing

import (
	"github.com/vfg2006/tracionar-api/internal/domain"
)

// Aggregate consolida amostras diárias em um KPISet.
// Totais são somas simples; métricas de razão são médias ponderadas pelo seu denominador.
func Aggregate(samples []*domain.MetricSample) domain.KPISet {
	var (
		kpis domain.KPISet

		cpaWeighted, roasWeighted, ctrWeighted, cpcWeighted, cpmWeighted float64
	)

	for _, s := range samples {
		if s == nil {
			continue
		}

		kpis.TotalSpend += s.Spend
		kpis.TotalImpressions += s.Impressions
		kpis.TotalClicks += s.Clicks
		kpis.TotalConversions += s.Conversions

		cpaWeighted += s.CPA * float64(s.Conversions)
		roasWeighted += s.ROAS * s.Spend
		ctrWeighted += s.CTR * float64(s.Impressions)
		cpcWeighted += s.CPC * float64(s.Clicks)
		cpmWeighted += s.CPM * float64(s.Impressions)
	}

	kpis.AvgCPA = weighted(cpaWeighted, float64(kpis.TotalConversions))
	kpis.AvgROAS = weighted(roasWeighted, kpis.TotalSpend)
	kpis.AvgCTR = weighted(ctrWeighted, float64(kpis.TotalImpressions))
	kpis.AvgCPC = weighted(cpcWeighted, float64(kpis.TotalClicks))
	kpis.AvgCPM = weighted(cpmWeighted, float64(kpis.TotalImpressions))

	return kpis
}

// Peso total zero resulta em zero, nunca em NaN
func weighted(sum, weight float64) float64 {
	if weight == 0 {
		return 0
	}
	return sum / weight
}

// groupByCampaign separa as amostras pela campanha de origem
func groupByCampaign(samples []*domain.MetricSample) map[string][]*domain.MetricSample {
	grouped := make(map[string][]*domain.MetricSample)
	for _, s := range samples {
		if s == nil {
			continue
		}
		grouped[s.CampaignID] = append(grouped[s.CampaignID], s)
	}
	return grouped
}
