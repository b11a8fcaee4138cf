package openai

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

const (
	insightConfidence = 0.85
)

// NarrativeGenerator transforma KPIs em texto usando um modelo de chat
type NarrativeGenerator struct {
	Client Client
	now    func() time.Time
}

func New(client Client) *NarrativeGenerator {
	return &NarrativeGenerator{
		Client: client,
		now:    time.Now,
	}
}

func (g *NarrativeGenerator) Configured() bool {
	return g.Client.Configured()
}

func (g *NarrativeGenerator) GenerateInsights(ctx context.Context, req domain.InsightRequest) (*domain.InsightPayload, error) {
	completion, err := g.Client.CreateChatCompletion(ctx, ChatRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: insightsSystemPrompt},
			{Role: RoleUser, Content: buildInsightsPrompt(req)},
		},
		MaxTokens:   insightsMaxTokens,
		Temperature: insightsTemperature,
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"model":  completion.Model,
		"period": req.Context.Period,
	}).Info("insights: narrativa gerada")

	return &domain.InsightPayload{
		Content:     completion.Choices[0].Message.Content,
		GeneratedAt: g.now(),
		Type:        domain.InsightTypeGeneral,
		Confidence:  insightConfidence,
		Actionable:  true,
	}, nil
}

func (g *NarrativeGenerator) AnalyzeCampaign(ctx context.Context, req domain.CampaignAnalysisRequest) (*domain.CampaignAnalysis, error) {
	completion, err := g.Client.CreateChatCompletion(ctx, ChatRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: analysisSystemPrompt},
			{Role: RoleUser, Content: buildCampaignPrompt(req)},
		},
		MaxTokens:   analysisMaxTokens,
		Temperature: analysisTemperature,
	})
	if err != nil {
		return nil, err
	}

	return &domain.CampaignAnalysis{
		CampaignID:  req.CampaignID,
		Analysis:    completion.Choices[0].Message.Content,
		GeneratedAt: g.now(),
		Type:        domain.InsightTypeCampaignAnalysis,
	}, nil
}
