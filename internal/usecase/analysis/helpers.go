package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/casemind/legal-team-backend/internal/entity"
)

// runWorker executes one worker role: knowledge retrieval and web search as
// the role's capabilities dictate, then a single completion call.
func (uc *AnalysisUsecase) runWorker(
	ctx context.Context,
	sessionID string,
	role entity.AgentRole,
	query string,
) (*entity.AgentOutput, error) {
	var contextBlocks []string

	if role.SearchKnowledge {
		excerpts, err := uc.retrieveKnowledge(ctx, sessionID, query)
		if err != nil {
			return nil, fmt.Errorf("retrieve knowledge: %w", err)
		}
		if excerpts != "" {
			contextBlocks = append(contextBlocks, "Relevant excerpts from the uploaded documents:\n"+excerpts)
		}
	}

	if role.WebSearch {
		results, err := uc.search.Search(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("web search: %w", err)
		}
		if formatted := formatSearchResults(results); formatted != "" {
			contextBlocks = append(contextBlocks, "Web search results:\n"+formatted)
		}
	}

	prompt := query
	if len(contextBlocks) > 0 {
		prompt = query + "\n\n" + strings.Join(contextBlocks, "\n\n")
	}

	content, err := uc.llm.Complete(ctx, &entity.CompletionInput{
		System: roleSystem(role),
		Prompt: prompt,
	})
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "worker completed",
		zap.String("role", role.Name),
		zap.Int("output_chars", len(content)),
	)

	return &entity.AgentOutput{Role: role.Name, Content: content}, nil
}

// retrieveKnowledge embeds the query and formats the top-K matching chunks.
func (uc *AnalysisUsecase) retrieveKnowledge(ctx context.Context, sessionID, query string) (string, error) {
	embedding, err := uc.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}

	scored, err := uc.chunkStore.Search(ctx, sessionID, embedding, uc.topK)
	if err != nil {
		return "", fmt.Errorf("search chunks: %w", err)
	}

	var sb strings.Builder
	for _, sc := range scored {
		fmt.Fprintf(&sb, "[%s, chunk %d]\n%s\n\n", sc.Chunk.Document, sc.Chunk.Index, sc.Chunk.Content)
	}

	return strings.TrimSpace(sb.String()), nil
}

func formatSearchResults(results []entity.SearchResult) string {
	var sb strings.Builder
	for _, r := range results {
		if r.URL != "" {
			fmt.Fprintf(&sb, "- %s (%s)\n", r.Text, r.URL)
		} else {
			fmt.Fprintf(&sb, "- %s\n", r.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// roleSystem renders a role definition into a system instruction.
func roleSystem(role entity.AgentRole) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s. %s", role.Name, role.Description)
	if len(role.Instructions) > 0 {
		sb.WriteString("\n\nInstructions:")
		for _, instruction := range role.Instructions {
			sb.WriteString("\n- " + instruction)
		}
	}
	return sb.String()
}

// combineOutputs concatenates worker answers under role headings, preserving
// pipeline order.
func combineOutputs(outputs []entity.AgentOutput) string {
	var sb strings.Builder
	for i, output := range outputs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "### %s\n%s", output.Role, output.Content)
	}
	return sb.String()
}

func integrationPrompt(query, combined string) string {
	return fmt.Sprintf(
		"Combine the following analyses from your team into one comprehensive report answering: %s\n\n%s",
		query, combined)
}

func keyPointsPrompt(analysis string) string {
	return "Summarize the key points of the following analysis in bullet points:\n\n" + analysis
}

func recommendationsPrompt(analysis string) string {
	return "What are your recommendations based on the following analysis:\n\n" + analysis
}
