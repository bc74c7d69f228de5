package session

// Event types emitted by the chat, analysis, routing, registry and MCP
// layers. The log treats the event type as a free-form tag; these
// constants exist so producers in this repository agree on spelling.
const (
	EventSessionStarted = "SESSION_STARTED"
	EventSessionEnded   = "SESSION_ENDED"
	EventChatCleared    = "CHAT_CLEARED"

	EventUserQuerySubmitted = "USER_QUERY_SUBMITTED"
	EventUserQuery          = "USER_QUERY"
	EventUserQueryError     = "USER_QUERY_ERROR"
	EventAIResponse         = "AI_RESPONSE_GENERATED"
	EventProcessingError    = "PROCESSING_ERROR"

	EventAnalysisStarted       = "ANALYSIS_STARTED"
	EventAnalysisCompleted     = "ANALYSIS_COMPLETED"
	EventAnalysisError         = "ANALYSIS_ERROR"
	EventInputAnalysisComplete = "INPUT_ANALYSIS_COMPLETED"

	EventModelRoutingStarted   = "MODEL_ROUTING_STARTED"
	EventModelRoutingCompleted = "MODEL_ROUTING_COMPLETED"
	EventModelRoutingError     = "MODEL_ROUTING_ERROR"

	EventModelExecutionStarted   = "MODEL_EXECUTION_STARTED"
	EventModelExecutionCompleted = "MODEL_EXECUTION_COMPLETED"
	EventModelExecutionError     = "MODEL_EXECUTION_ERROR"

	EventRegistryQueryStarted   = "REGISTRY_QUERY_STARTED"
	EventRegistryQueryCompleted = "REGISTRY_QUERY_COMPLETED"
	EventRegistryQueryError     = "REGISTRY_QUERY_ERROR"
	EventRegistryDataReceived   = "REGISTRY_DATA_RECEIVED"

	EventMCPQueryStarted   = "MCP_QUERY_STARTED"
	EventMCPQueryCompleted = "MCP_QUERY_COMPLETED"
	EventMCPQueryError     = "MCP_QUERY_ERROR"
	EventMCPDataReceived   = "MCP_DATA_RECEIVED"

	EventAggregationStarted   = "RESULT_AGGREGATION_STARTED"
	EventAggregationCompleted = "RESULT_AGGREGATION_COMPLETED"
)

// InfoCode prefixes used by this repository's producers. All are
// rooted at QAO-UIF, the unified interface namespace.
const (
	PrefixSession  = "QAO-UIF-SESSION"
	PrefixQuery    = "QAO-UIF-QUERY"
	PrefixAnalysis = "QAO-UIF-ANALYSIS"
	PrefixRouting  = "QAO-UIF-ROUTING"
	PrefixModel    = "QAO-UIF-MODEL"
	PrefixRegistry = "QAO-UIF-REGISTRY"
	PrefixMCP      = "QAO-UIF-MCP"
	PrefixError    = "QAO-UIF-ERROR"
)
