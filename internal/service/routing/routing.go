// Package routing recommends execution models for an analyzed query.
// Models come from a static registry; scoring weighs intent match,
// input-type overlap, and capability bonuses.
package routing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gaia-qao/compliance-backend/internal/domain/errors"
	"github.com/gaia-qao/compliance-backend/internal/domain/infocode"
	"github.com/gaia-qao/compliance-backend/internal/domain/session"
	"github.com/gaia-qao/compliance-backend/internal/service/analysis"
)

// ModelType groups registry models by modality.
type ModelType string

const (
	ModelText        ModelType = "text"
	ModelVision      ModelType = "vision"
	ModelQuantum     ModelType = "quantum"
	ModelSpecialized ModelType = "specialized"
	ModelMultimodal  ModelType = "multimodal"
	ModelTelemetry   ModelType = "telemetry"
)

// Scoring weights and bonuses. Fallback recommendations carry a damped
// confidence.
const (
	intentMatchScore       = 0.5
	inputTypeWeight        = 0.3
	capabilityBonus        = 0.2
	fallbackConfidenceDamp = 0.8
	maxRecommendations     = 3
)

// Model is one registry entry.
type Model struct {
	ID           string
	Name         string
	Type         ModelType
	Provider     string
	Capabilities []string
	InputTypes   []analysis.FileType
	Intents      []analysis.IntentType
}

// Recommendation is one scored routing candidate.
type Recommendation struct {
	ModelID    string    `json:"modelId"`
	ModelName  string    `json:"modelName"`
	ModelType  ModelType `json:"modelType"`
	Provider   string    `json:"provider"`
	Confidence float64   `json:"confidence"`
	Reason     string    `json:"reason"`
}

// registry is the fixed model catalog. Order matters only as the tie
// break for equal scores.
var registry = []Model{
	{
		ID:           "visiongpt",
		Name:         "VisionGPT",
		Type:         ModelVision,
		Provider:     "openai",
		Capabilities: []string{"image_analysis", "object_recognition", "text_in_image", "schematic_analysis"},
		InputTypes:   []analysis.FileType{analysis.FileImage, analysis.FileSchematic},
		Intents:      []analysis.IntentType{analysis.IntentIdentification, analysis.IntentDescription},
	},
	{
		ID:           "qwen-vl",
		Name:         "Qwen-VL",
		Type:         ModelVision,
		Provider:     "alibaba",
		Capabilities: []string{"image_analysis", "object_recognition", "text_in_image"},
		InputTypes:   []analysis.FileType{analysis.FileImage},
		Intents:      []analysis.IntentType{analysis.IntentIdentification, analysis.IntentDescription},
	},
	{
		ID:           "llava-next",
		Name:         "LLaVA-NeXT",
		Type:         ModelVision,
		Provider:     "replicate",
		Capabilities: []string{"image_analysis", "object_recognition", "detailed_description"},
		InputTypes:   []analysis.FileType{analysis.FileImage},
		Intents:      []analysis.IntentType{analysis.IntentIdentification, analysis.IntentDescription, analysis.IntentComparison},
	},
	{
		ID:           "cogvlm",
		Name:         "CogVLM",
		Type:         ModelVision,
		Provider:     "replicate",
		Capabilities: []string{"image_analysis", "object_recognition", "reasoning"},
		InputTypes:   []analysis.FileType{analysis.FileImage},
		Intents:      []analysis.IntentType{analysis.IntentIdentification, analysis.IntentDescription, analysis.IntentReasoning},
	},
	{
		ID:           "gpt-4o",
		Name:         "GPT-4o",
		Type:         ModelMultimodal,
		Provider:     "openai",
		Capabilities: []string{"text_generation", "reasoning", "knowledge_query", "code_generation", "image_understanding"},
		InputTypes:   []analysis.FileType{analysis.FileText, analysis.FileImage},
		Intents:      []analysis.IntentType{analysis.IntentKnowledgeQuery, analysis.IntentDescription, analysis.IntentComparison},
	},
	{
		ID:           "telemetry-analyzer",
		Name:         "Telemetry Analyzer",
		Type:         ModelTelemetry,
		Provider:     "gaia-q",
		Capabilities: []string{"telemetry_analysis", "anomaly_detection", "pattern_recognition"},
		InputTypes:   []analysis.FileType{analysis.FileTelemetry, analysis.FileText},
		Intents:      []analysis.IntentType{analysis.IntentTelemetryAnalysis, analysis.IntentAnomalyDetection},
	},
	{
		ID:           "quantum-simulator",
		Name:         "Quantum Simulator",
		Type:         ModelQuantum,
		Provider:     "gaia-q",
		Capabilities: []string{"quantum_simulation", "quantum_algorithm_execution"},
		InputTypes:   []analysis.FileType{analysis.FileQuantumData, analysis.FileText},
		Intents:      []analysis.IntentType{analysis.IntentQuantumSimulation},
	},
	{
		ID:           "aerospace-llm",
		Name:         "Aerospace LLM",
		Type:         ModelSpecialized,
		Provider:     "gaia-q",
		Capabilities: []string{"aerospace_knowledge", "registry_query_parsing", "technical_documentation"},
		InputTypes:   []analysis.FileType{analysis.FileText},
		Intents:      []analysis.IntentType{analysis.IntentKnowledgeQuery, analysis.IntentRegistryQuery},
	},
	{
		ID:           "schematic-analyzer",
		Name:         "Schematic Analyzer",
		Type:         ModelSpecialized,
		Provider:     "gaia-q",
		Capabilities: []string{"schematic_analysis", "cad_interpretation", "engineering_drawing_analysis"},
		InputTypes:   []analysis.FileType{analysis.FileSchematic, analysis.FileCAD},
		Intents:      []analysis.IntentType{analysis.IntentIdentification, analysis.IntentDescription},
	},
}

// Registry returns a copy of the model catalog.
func Registry() []Model {
	models := make([]Model, len(registry))
	copy(models, registry)
	return models
}

// Service scores registry models against analysis results and records
// routing decisions in the session event log.
type Service struct {
	logger *zap.Logger
	events session.Repository
}

// NewService creates a routing service bound to the event log.
func NewService(logger *zap.Logger, events session.Repository) *Service {
	return &Service{logger: logger, events: events}
}

// Recommend produces up to three scored candidates for the analyzed
// query and appends MODEL_ROUTING_STARTED / MODEL_ROUTING_COMPLETED
// events around the decision.
func (s *Service) Recommend(ctx context.Context, sessionID string, result *analysis.Result) ([]Recommendation, error) {
	if sessionID == "" {
		return nil, errors.NewValidationError("MISSING_SESSION_ID", "session id is required")
	}
	if result == nil {
		return nil, errors.NewValidationError("MISSING_ANALYSIS", "analysis result is required")
	}

	routingInfoCode := infocode.Generate(session.PrefixRouting, sessionID)
	if err := s.appendEvent(ctx, sessionID, routingInfoCode, session.EventModelRoutingStarted, map[string]interface{}{
		"primaryIntent": result.PrimaryIntent,
		"detectedTypes": result.DetectedTypes,
	}); err != nil {
		return nil, err
	}

	recommendations := Score(result)

	details := map[string]interface{}{
		"recommendationCount": len(recommendations),
	}
	if len(recommendations) > 0 {
		details["primaryModel"] = recommendations[0].ModelID
		details["primaryConfidence"] = recommendations[0].Confidence
	}
	if err := s.appendEvent(ctx, sessionID, routingInfoCode, session.EventModelRoutingCompleted, details); err != nil {
		return nil, err
	}

	s.logger.Debug("model routing completed",
		zap.String("session_id", sessionID),
		zap.String("intent", string(result.PrimaryIntent)),
		zap.Int("recommendations", len(recommendations)))

	return recommendations, nil
}

func (s *Service) appendEvent(ctx context.Context, sessionID, infoCode, eventType string, details map[string]interface{}) error {
	event, err := session.NewEvent(sessionID, infoCode, eventType, details)
	if err != nil {
		return err
	}
	event.Stamp(time.Now())
	if err := s.events.Append(ctx, event); err != nil {
		return errors.Wrap(err, "logging routing event")
	}
	return nil
}

// Score filters the registry to models that accept at least one of the
// detected input types, scores them, and returns the top three. The
// primary keeps its raw score as confidence; fallbacks are damped.
func Score(result *analysis.Result) []Recommendation {
	type scored struct {
		model Model
		score float64
	}

	var eligible []scored
	for _, model := range registry {
		if !acceptsAny(model, result.DetectedTypes) {
			continue
		}
		eligible = append(eligible, scored{model: model, score: scoreModel(model, result)})
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].score > eligible[j].score
	})

	if len(eligible) > maxRecommendations {
		eligible = eligible[:maxRecommendations]
	}

	recommendations := make([]Recommendation, 0, len(eligible))
	for i, candidate := range eligible {
		confidence := candidate.score
		if i > 0 {
			confidence *= fallbackConfidenceDamp
		}
		recommendations = append(recommendations, Recommendation{
			ModelID:    candidate.model.ID,
			ModelName:  candidate.model.Name,
			ModelType:  candidate.model.Type,
			Provider:   candidate.model.Provider,
			Confidence: confidence,
			Reason:     reasonText(candidate.model, result, candidate.score),
		})
	}
	return recommendations
}

func scoreModel(model Model, result *analysis.Result) float64 {
	score := 0.0

	if supportsIntent(model, result.PrimaryIntent) {
		score += intentMatchScore
	}

	if len(result.DetectedTypes) > 0 {
		matched := 0
		for _, fileType := range result.DetectedTypes {
			if acceptsType(model, fileType) {
				matched++
			}
		}
		score += float64(matched) / float64(len(result.DetectedTypes)) * inputTypeWeight
	}

	if result.RequiresRegistryQuery && hasCapability(model, "registry_query_parsing") {
		score += capabilityBonus
	}
	if containsFileType(result.DetectedTypes, analysis.FileTelemetry) && hasCapability(model, "telemetry_analysis") {
		score += capabilityBonus
	}
	if containsFileType(result.DetectedTypes, analysis.FileQuantumData) && hasCapability(model, "quantum_simulation") {
		score += capabilityBonus
	}

	return score
}

func reasonText(model Model, result *analysis.Result, score float64) string {
	var reasons []string

	if supportsIntent(model, result.PrimaryIntent) {
		reasons = append(reasons, fmt.Sprintf("Supports %s intent", result.PrimaryIntent))
	}

	var matched []string
	for _, fileType := range result.DetectedTypes {
		if acceptsType(model, fileType) {
			matched = append(matched, string(fileType))
		}
	}
	if len(matched) > 0 {
		reasons = append(reasons, fmt.Sprintf("Handles %s input types", strings.Join(matched, ", ")))
	}

	if result.RequiresRegistryQuery && hasCapability(model, "registry_query_parsing") {
		reasons = append(reasons, "Can parse registry queries")
	}
	if containsFileType(result.DetectedTypes, analysis.FileTelemetry) && hasCapability(model, "telemetry_analysis") {
		reasons = append(reasons, "Specialized in telemetry analysis")
	}
	if containsFileType(result.DetectedTypes, analysis.FileQuantumData) && hasCapability(model, "quantum_simulation") {
		reasons = append(reasons, "Capable of quantum data processing")
	}

	return strings.Join(reasons, ". ") + fmt.Sprintf(". Overall match score: %.0f%%", score*100)
}

func acceptsAny(model Model, fileTypes []analysis.FileType) bool {
	for _, fileType := range fileTypes {
		if acceptsType(model, fileType) {
			return true
		}
	}
	return false
}

func acceptsType(model Model, fileType analysis.FileType) bool {
	for _, accepted := range model.InputTypes {
		if accepted == fileType {
			return true
		}
	}
	return false
}

func supportsIntent(model Model, intent analysis.IntentType) bool {
	for _, supported := range model.Intents {
		if supported == intent {
			return true
		}
	}
	return false
}

func hasCapability(model Model, capability string) bool {
	for _, c := range model.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

func containsFileType(fileTypes []analysis.FileType, target analysis.FileType) bool {
	for _, fileType := range fileTypes {
		if fileType == target {
			return true
		}
	}
	return false
}
