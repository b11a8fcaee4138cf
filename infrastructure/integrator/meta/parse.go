package meta

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	metadomain "github.com/vfg2006/tracionar-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

// ParseInsight converte uma linha da Graph API em MetricSample.
// Campos ausentes valem zero; campos não numéricos invalidam a linha.
func ParseInsight(row metadomain.Insight) (*domain.MetricSample, error) {
	date, err := time.Parse(time.DateOnly, row.DateStart)
	if err != nil {
		return nil, domain.NewError(domain.KindValidation, "meta.parse_insight", fmt.Errorf("date_start %q: %w", row.DateStart, err))
	}

	p := &parser{}

	sample := &domain.MetricSample{
		Date:        date,
		Impressions: p.int("impressions", row.Impressions),
		Reach:       p.int("reach", row.Reach),
		Clicks:      p.int("clicks", row.Clicks),
		Spend:       p.float("spend", row.Spend),
		CTR:         p.float("ctr", row.CTR),
		CPC:         p.float("cpc", row.CPC),
		CPM:         p.float("cpm", row.CPM),
		Frequency:   p.float("frequency", row.Frequency),
	}

	sample.Conversions = p.conversions(row.Actions)
	revenue := p.revenue(row.ActionValues, row.Actions)

	if p.err != nil {
		return nil, domain.NewError(domain.KindValidation, "meta.parse_insight", p.err)
	}

	if sample.Conversions > 0 {
		sample.CPA = sample.Spend / float64(sample.Conversions)
	}

	if sample.Spend > 0 {
		sample.ROAS = revenue / sample.Spend
	}

	if err := sample.Validate(); err != nil {
		return nil, err
	}

	return sample, nil
}

// parser guarda o primeiro erro encontrado
type parser struct {
	err error
}

func (p *parser) float(field, value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" || p.err != nil {
		return 0
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		p.err = fmt.Errorf("%s %q: %w", field, value, domain.ErrInvalidMetric)
		return 0
	}
	return f
}

func (p *parser) int(field, value string) int64 {
	return int64(p.float(field, value))
}

// conversions usa a primeira ação de compra, lead ou cadastro completo
func (p *parser) conversions(actions []metadomain.Action) int64 {
	for _, action := range actions {
		if _, ok := metadomain.ConversionActionTypes[action.ActionType]; ok {
			return p.int("actions."+action.ActionType, action.Value)
		}
	}
	return 0
}

// revenue prefere action_values e recorre a actions quando não houver valor de compra
func (p *parser) revenue(actionValues, actions []metadomain.Action) float64 {
	for _, list := range [][]metadomain.Action{actionValues, actions} {
		for _, action := range list {
			if action.ActionType == metadomain.ActionPurchase {
				return p.float("purchase_value", action.Value)
			}
		}
	}
	return 0
}

// ClassifyTargeting aplica a primeira regra que casar, nesta ordem:
// público personalizado, lookalike, interesses, comportamentos e demográfico.
func ClassifyTargeting(t *metadomain.Targeting) domain.TargetingType {
	switch {
	case t == nil:
		return domain.TargetingUnknown
	case len(t.CustomAudiences) > 0:
		return domain.TargetingCustomAudience
	case len(t.LookalikeAudiences) > 0:
		return domain.TargetingLookalike
	case len(t.Interests) > 0:
		return domain.TargetingInterests
	case len(t.Behaviors) > 0:
		return domain.TargetingBehaviors
	default:
		return domain.TargetingDemographic
	}
}
