// Package analysis classifies user input ahead of model routing:
// keyword-based intent detection, aerospace object-ID extraction, and
// the registry/MCP requirement flags derived from both.
package analysis

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gaia-qao/compliance-backend/internal/domain/errors"
	"github.com/gaia-qao/compliance-backend/internal/domain/infocode"
	"github.com/gaia-qao/compliance-backend/internal/domain/objectid"
	"github.com/gaia-qao/compliance-backend/internal/domain/session"
)

// FileType tags one attachment (or the text body) of a query.
type FileType string

const (
	FileUnknown     FileType = "unknown"
	FileText        FileType = "text"
	FileImage       FileType = "image"
	FileVideo       FileType = "video"
	FilePDF         FileType = "pdf"
	FileCAD         FileType = "cad"
	FileSchematic   FileType = "schematic"
	FileTelemetry   FileType = "telemetry"
	FileQuantumData FileType = "quantum_data"
)

// IntentType is the classified purpose of a query.
type IntentType string

const (
	IntentUnknown           IntentType = "unknown"
	IntentKnowledgeQuery    IntentType = "knowledge_query"
	IntentRegistryQuery     IntentType = "registry_query"
	IntentTelemetryAnalysis IntentType = "telemetry_analysis"
	IntentQuantumSimulation IntentType = "quantum_simulation"
	IntentIdentification    IntentType = "identification"
	IntentComparison        IntentType = "comparison"
	IntentPrediction        IntentType = "prediction"
	IntentAnomalyDetection  IntentType = "anomaly_detection"
	IntentDescription       IntentType = "description"
	IntentReasoning         IntentType = "reasoning"
)

// Registry query types returned for registry-bound intents.
const (
	RegistryConfigurationQuery = "CONFIGURATION_QUERY"
	RegistryStatusQuery        = "STATUS_QUERY"
	RegistryHistoryQuery       = "HISTORY_QUERY"
	RegistryMaintenanceQuery   = "MAINTENANCE_QUERY"
	RegistryGeneralQuery       = "GENERAL_QUERY"
)

// MCP agent types an analysis can request.
const (
	AgentTelemetryAnalyzer   = "TELEMETRY_ANALYZER"
	AgentQuantumSimulator    = "QUANTUM_SIMULATOR"
	AgentEngineeringAnalyzer = "ENGINEERING_ANALYZER"
	AgentGeneralProcessor    = "GENERAL_PROCESSOR"
)

// Result is the routed-input profile consumed by model routing.
type Result struct {
	DetectedTypes         []FileType `json:"detectedTypes"`
	PrimaryIntent         IntentType `json:"primaryIntent"`
	Confidence            float64    `json:"confidence"`
	ExtractedObjectIDs    []string   `json:"extractedObjectIds"`
	RequiresRegistryQuery bool       `json:"requiresRegistryQuery"`
	RegistryQueryType     string     `json:"registryQueryType,omitempty"`
	RequiresMCPQuery      bool       `json:"requiresMCPQuery"`
	MCPAgentTypes         []string   `json:"mcpAgentTypes,omitempty"`
	MCPQueryPurpose       string     `json:"mcpQueryPurpose,omitempty"`
	AnalysisInfoCode      string     `json:"analysisInfoCode"`
}

// registryIntentPattern spots an embedded air-system object ID when
// classifying registry intent.
var registryIntentPattern = regexp.MustCompile(`AS-[MU]-[A-Z]{3}-[A-Z]{2}-[A-Z0-9]{3}-\d{5}`)

// Service runs input analysis and records the outcome in the session
// event log.
type Service struct {
	logger *zap.Logger
	events session.Repository
}

// NewService creates an analysis service bound to the event log.
func NewService(logger *zap.Logger, events session.Repository) *Service {
	return &Service{logger: logger, events: events}
}

// Analyze classifies the input, extracts object IDs, and appends an
// INPUT_ANALYSIS_COMPLETED event carrying the result.
func (s *Service) Analyze(ctx context.Context, sessionID, input string, fileTypes []FileType) (*Result, error) {
	if sessionID == "" {
		return nil, errors.NewValidationError("MISSING_SESSION_ID", "session id is required")
	}

	detected := make([]FileType, len(fileTypes))
	copy(detected, fileTypes)
	if strings.TrimSpace(input) != "" {
		detected = append(detected, FileText)
	}

	intent := DetermineIntent(input, detected)
	objectIDs := objectid.Extract(input)

	requiresRegistry := len(objectIDs) > 0 || intent == IntentRegistryQuery
	registryQueryType := ""
	if requiresRegistry {
		registryQueryType = DetermineRegistryQueryType(input)
	}

	requiresMCP := intent == IntentTelemetryAnalysis ||
		intent == IntentQuantumSimulation ||
		containsType(detected, FileTelemetry) ||
		containsType(detected, FileQuantumData)

	var agentTypes []string
	purpose := ""
	if requiresMCP {
		agentTypes, purpose = DetermineMCPQueryInfo(intent, detected)
	}

	result := &Result{
		DetectedTypes:         detected,
		PrimaryIntent:         intent,
		Confidence:            CalculateConfidence(input, detected, intent),
		ExtractedObjectIDs:    objectIDs,
		RequiresRegistryQuery: requiresRegistry,
		RegistryQueryType:     registryQueryType,
		RequiresMCPQuery:      requiresMCP,
		MCPAgentTypes:         agentTypes,
		MCPQueryPurpose:       purpose,
		AnalysisInfoCode:      infocode.Generate(session.PrefixAnalysis, sessionID),
	}

	event, err := session.NewEvent(sessionID, result.AnalysisInfoCode, session.EventInputAnalysisComplete, map[string]interface{}{
		"detectedTypes":         result.DetectedTypes,
		"primaryIntent":         result.PrimaryIntent,
		"confidence":            result.Confidence,
		"extractedObjectIds":    result.ExtractedObjectIDs,
		"requiresRegistryQuery": result.RequiresRegistryQuery,
		"registryQueryType":     result.RegistryQueryType,
		"requiresMCPQuery":      result.RequiresMCPQuery,
		"mcpAgentTypes":         result.MCPAgentTypes,
	})
	if err != nil {
		return nil, err
	}
	event.Stamp(time.Now())
	if err := s.events.Append(ctx, event); err != nil {
		s.logger.Error("failed to log input analysis",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, errors.Wrap(err, "logging input analysis")
	}

	s.logger.Debug("input analyzed",
		zap.String("session_id", sessionID),
		zap.String("intent", string(intent)),
		zap.Float64("confidence", result.Confidence),
		zap.Int("object_ids", len(objectIDs)))

	return result, nil
}

// DetermineIntent classifies the query with keyword heuristics, in
// priority order. The default is a plain knowledge query.
func DetermineIntent(input string, fileTypes []FileType) IntentType {
	lower := strings.ToLower(input)

	if strings.Contains(lower, "what is") &&
		(strings.Contains(lower, "configuration") || strings.Contains(lower, "status")) &&
		registryIntentPattern.MatchString(input) {
		return IntentRegistryQuery
	}

	if (strings.Contains(lower, "telemetry") || strings.Contains(lower, "sensor data")) &&
		(strings.Contains(lower, "analyze") || strings.Contains(lower, "anomaly") || strings.Contains(lower, "detect")) {
		return IntentTelemetryAnalysis
	}

	if (strings.Contains(lower, "quantum") || strings.Contains(lower, "qbit") || strings.Contains(lower, "qubit")) &&
		(strings.Contains(lower, "simulate") || strings.Contains(lower, "simulation") || strings.Contains(lower, "compute")) {
		return IntentQuantumSimulation
	}

	if strings.Contains(lower, "identify") ||
		strings.Contains(lower, "what is this") ||
		strings.Contains(lower, "recognize") ||
		(containsType(fileTypes, FileImage) && strings.TrimSpace(input) == "") {
		return IntentIdentification
	}

	if strings.Contains(lower, "compare") ||
		strings.Contains(lower, "difference between") ||
		strings.Contains(lower, "versus") ||
		strings.Contains(lower, " vs ") {
		return IntentComparison
	}

	if strings.Contains(lower, "predict") ||
		strings.Contains(lower, "forecast") ||
		strings.Contains(lower, "estimate") ||
		strings.Contains(lower, "will it") {
		return IntentPrediction
	}

	if strings.Contains(lower, "anomaly") ||
		strings.Contains(lower, "unusual") ||
		strings.Contains(lower, "detect") ||
		strings.Contains(lower, "find issues") {
		return IntentAnomalyDetection
	}

	return IntentKnowledgeQuery
}

// DetermineRegistryQueryType maps keywords to a registry query type.
func DetermineRegistryQueryType(input string) string {
	lower := strings.ToLower(input)

	switch {
	case strings.Contains(lower, "configuration") || strings.Contains(lower, "config"):
		return RegistryConfigurationQuery
	case strings.Contains(lower, "status") || strings.Contains(lower, "state"):
		return RegistryStatusQuery
	case strings.Contains(lower, "history") || strings.Contains(lower, "log"):
		return RegistryHistoryQuery
	case strings.Contains(lower, "maintenance") || strings.Contains(lower, "service"):
		return RegistryMaintenanceQuery
	}
	return RegistryGeneralQuery
}

// DetermineMCPQueryInfo picks the MCP agents to involve and a purpose
// string. A general processor is used when nothing specific matches.
func DetermineMCPQueryInfo(intent IntentType, fileTypes []FileType) ([]string, string) {
	var agentTypes []string
	purpose := ""

	if intent == IntentTelemetryAnalysis || containsType(fileTypes, FileTelemetry) {
		agentTypes = append(agentTypes, AgentTelemetryAnalyzer)
		purpose = "Analyze telemetry data for patterns or anomalies"
	}

	if intent == IntentQuantumSimulation || containsType(fileTypes, FileQuantumData) {
		agentTypes = append(agentTypes, AgentQuantumSimulator)
		purpose = "Perform quantum simulation or computation"
	}

	if containsType(fileTypes, FileSchematic) || containsType(fileTypes, FileCAD) {
		agentTypes = append(agentTypes, AgentEngineeringAnalyzer)
		purpose = "Analyze engineering schematics or CAD files"
	}

	if len(agentTypes) == 0 {
		agentTypes = append(agentTypes, AgentGeneralProcessor)
		purpose = "Process general aerospace data"
	}

	return agentTypes, purpose
}

// CalculateConfidence scores how clear the input profile is, starting
// from a 0.7 base and capped at 0.95.
func CalculateConfidence(input string, fileTypes []FileType, intent IntentType) float64 {
	confidence := 0.7

	if len(input) > 50 {
		confidence += 0.1
	}

	known := false
	for _, fileType := range fileTypes {
		if fileType != FileUnknown {
			known = true
			break
		}
	}
	if len(fileTypes) > 0 && known {
		confidence += 0.05
	}

	if intent != IntentUnknown && intent != IntentKnowledgeQuery {
		confidence += 0.1
	}

	if confidence > 0.95 {
		confidence = 0.95
	}
	return confidence
}

func containsType(fileTypes []FileType, target FileType) bool {
	for _, fileType := range fileTypes {
		if fileType == target {
			return true
		}
	}
	return false
}
