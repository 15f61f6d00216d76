package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/killallgit/reporadar-api/api/types"
	"github.com/killallgit/reporadar-api/internal/services/reposearch"
	"github.com/killallgit/reporadar-api/pkg/logger"
)

var (
	searchTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("86")).
				Padding(0, 1)

	searchNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	searchMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	searchEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true).
				Margin(1, 0)
)

// searchCmd runs one repository search from the command line
var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search GitHub repositories",
	Long: `Run one repository search against the configured GitHub API.

Repositories whose name contains --ignore (case-insensitive) are dropped
and later pages are fetched until --per-page results are collected.

Example:
  reporadar search nestjs
  reporadar search nestjs --ignore starter --per-page 10
  reporadar search "language:go cli" --sort stars --order desc --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("sort", "", "sort field (stars, forks, help-wanted-issues, updated)")
	searchCmd.Flags().String("order", "", "sort order (asc, desc)")
	searchCmd.Flags().String("ignore", "", "drop repositories whose name contains this text")
	searchCmd.Flags().Int("page", 1, "page number")
	searchCmd.Flags().Int("per-page", 30, "results per page (1-100)")
	searchCmd.Flags().Bool("json", false, "print the response body as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, err := searchQueryFromFlags(cmd, args[0])
	if err != nil {
		return err
	}

	log := logger.L()
	svc, err := newSearchService(appConfig, log)
	if err != nil {
		return err
	}

	return executeSearch(cmd.Context(), cmd.OutOrStdout(), svc, query, mustBool(cmd, "json"))
}

// searchQueryFromFlags builds and validates a query with the HTTP layer's rules
func searchQueryFromFlags(cmd *cobra.Command, q string) (types.SearchRepositoriesQuery, error) {
	flags := cmd.Flags()
	query := types.SearchRepositoriesQuery{Query: strings.TrimSpace(q)}
	query.Sort, _ = flags.GetString("sort")
	query.Order, _ = flags.GetString("order")
	query.Ignore, _ = flags.GetString("ignore")

	page, _ := flags.GetInt("page")
	perPage, _ := flags.GetInt("per-page")
	query.Page = &page
	query.PerPage = &perPage

	if err := binding.Validator.ValidateStruct(&query); err != nil {
		return query, errors.New(strings.Join(types.ValidationMessages(err, &query), "; "))
	}
	return query, nil
}

func executeSearch(ctx context.Context, out io.Writer, svc reposearch.SearchService, query types.SearchRepositoriesQuery, asJSON bool) error {
	ctx = logger.ContextWithCorrelationID(ctx, uuid.NewString())
	req := query.ToSearchRequest()

	result, err := svc.Search(ctx, req)
	if err != nil {
		logger.L().Debug("search failed", logger.CorrelationField(ctx), zap.Error(err))
		return fmt.Errorf("search %q: %w", req.Query, err)
	}

	body := types.FromSearchResult(result)
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(body)
	}

	renderSearch(out, req, body)
	return nil
}

func renderSearch(out io.Writer, req reposearch.SearchRequest, body types.RepositorySearchResponse) {
	title := fmt.Sprintf("%q: %d repositories upstream", req.Query, body.TotalCount)
	if req.Ignore != "" {
		title += fmt.Sprintf(", ignoring %q", req.Ignore)
	}
	fmt.Fprintln(out, searchTitleStyle.Render(title))

	if len(body.Items) == 0 {
		fmt.Fprintln(out, searchEmptyStyle.Render("No repositories found"))
		return
	}

	for i, item := range body.Items {
		meta := fmt.Sprintf("★ %d  forks %d", item.StargazersCount, item.ForksCount)
		if item.Language != nil {
			meta += "  " + *item.Language
		}
		fmt.Fprintf(out, "%3d. %s  %s\n", i+1, searchNameStyle.Render(item.FullName), searchMetaStyle.Render(meta))
		if item.Description != nil {
			fmt.Fprintf(out, "     %s\n", *item.Description)
		}
	}

	if body.IncompleteResults {
		fmt.Fprintln(out, searchMetaStyle.Render("GitHub reported incomplete results"))
	}
}

func mustBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}
