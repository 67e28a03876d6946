package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/casemind/legal-team-backend/internal/entity"
)

// AgentsConfig carries the role definitions for the team pipeline and the
// predefined analysis queries. Workers run in slice order, then the team lead
// aggregates.
type AgentsConfig struct {
	Workers  []entity.AgentRole `json:"workers"`
	TeamLead entity.AgentRole   `json:"team_lead"`

	PredefinedQueries map[entity.AnalysisType]string `json:"predefined_queries"`
}

var defaultAgents = AgentsConfig{
	Workers: []entity.AgentRole{
		{
			Name:        "LegalResearcher",
			Description: "Finds and cites relevant legal cases, regulations, and precedents.",
			Instructions: []string{
				"Extract all available data from the knowledge base and search for legal cases, regulations, and citations.",
				"If needed, use the web search results for additional legal references.",
				"Always provide source references in your answers.",
			},
			SearchKnowledge: true,
			WebSearch:       true,
		},
		{
			Name:        "ContractAnalyst",
			Description: "Identifies key clauses, risks, and obligations in contracts.",
			Instructions: []string{
				"Extract all available data from the knowledge base and analyze the contract for key clauses, obligations, and potential ambiguities.",
				"Reference specific sections of the contract where possible.",
			},
			SearchKnowledge: true,
		},
		{
			Name:        "LegalStrategist",
			Description: "Provides strategic legal recommendations and risk assessment.",
			Instructions: []string{
				"Using all data from the knowledge base, assess the contract for legal risks and opportunities.",
				"Provide actionable recommendations and ensure compliance with applicable laws.",
			},
			SearchKnowledge: true,
		},
	},
	TeamLead: entity.AgentRole{
		Name:        "TeamLead",
		Description: "Integrates insights from all agents into a comprehensive report.",
		Instructions: []string{
			"Combine and summarize all insights provided by the Legal Researcher, Contract Analyst, and Legal Strategist.",
			"Ensure the final report includes references to all relevant sections from the document.",
		},
	},
	PredefinedQueries: map[entity.AnalysisType]string{
		entity.AnalysisContractReview:  "Analyze this contract using the knowledge base. Identify key terms, obligations, and risks.",
		entity.AnalysisLegalResearch:   "Find relevant legal cases and precedents using the knowledge base.",
		entity.AnalysisRiskAssessment:  "Identify potential legal risks in the document and cite specific sections.",
		entity.AnalysisComplianceCheck: "Evaluate this document for compliance with legal regulations and highlight any concerns.",
	},
}

// AnalysisTypeLabels are the human-readable names shown in the selector.
var AnalysisTypeLabels = map[entity.AnalysisType]string{
	entity.AnalysisContractReview:  "Contract Review",
	entity.AnalysisLegalResearch:   "Legal Research",
	entity.AnalysisRiskAssessment:  "Risk Assessment",
	entity.AnalysisComplianceCheck: "Compliance Check",
	entity.AnalysisCustomQuery:     "Custom Query",
}

func loadAgentsConfig(cfg *Config) error {
	configPath := filepath.Join("internal", "config", "agents.json")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.Agents = defaultAgents
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read agents file: %w", err)
	}

	var agents AgentsConfig
	if err := json.Unmarshal(data, &agents); err != nil {
		return fmt.Errorf("parse agents JSON: %w", err)
	}

	if len(agents.Workers) == 0 {
		return fmt.Errorf("agents file defines no worker roles: %s", configPath)
	}
	if agents.TeamLead.Name == "" {
		return fmt.Errorf("agents file defines no team lead: %s", configPath)
	}
	if agents.PredefinedQueries == nil {
		agents.PredefinedQueries = defaultAgents.PredefinedQueries
	}

	for analysisType, query := range agents.PredefinedQueries {
		if query == "" {
			return fmt.Errorf("empty predefined query for analysis type %s", analysisType)
		}
	}

	cfg.Agents = agents

	fmt.Printf("Loaded %d worker roles from %s\n", len(agents.Workers), configPath)
	return nil
}
