package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Wardens-OSS-Club/compiloor/pkg/config"
	"github.com/Wardens-OSS-Club/compiloor/pkg/legend"
	"github.com/Wardens-OSS-Club/compiloor/pkg/placeholder"
	"github.com/Wardens-OSS-Club/compiloor/pkg/table"
)

// Template tokens.
const (
	TokenFindings      = "findings"
	TokenTotalFindings = "total_findings_amount"
	TokenStylesheet    = "stylesheet"
	TokenLegend        = "findings_legend"
	TokenSeverityTable = "severity_classification_table"
	TokenInfoTable     = "information_table"
	TokenCountTable    = "findings_count_table"
	TokenSummaryTable  = "findings_summary_table"
)

const noWrapClass = "no-wrap-column"

var tokens = placeholder.NewEngine(placeholder.HTML)

// noWrapCell matches table cells that start with a finding id, bare or
// already linked.
var noWrapCell = regexp.MustCompile(`<td>(\[|<a [^>]*>\[)`)

func substituteSections(ctx *BuildContext) error {
	ctx.HTML = tokens.Replace(ctx.HTML, TokenFindings, ctx.FindingsSection.HTML)
	ctx.HTML = tokens.Replace(ctx.HTML, TokenTotalFindings, strconv.Itoa(ctx.Findings.Total()))
	ctx.HTML = tokens.Replace(ctx.HTML, TokenStylesheet, "<style>"+ctx.Stylesheet+"</style>")
	return nil
}

func substituteConfig(ctx *BuildContext) error {
	for _, key := range ctx.Config.Keys() {
		value := ctx.Config.Value(key)
		if config.IsContentKey(key) {
			rendered, err := ctx.Renderer.Render(value)
			if err != nil {
				return fmt.Errorf("render %s: %w", key, err)
			}
			value = rendered
		}
		ctx.HTML = strings.ReplaceAll(ctx.HTML, placeholder.Config(key), value)
	}
	return nil
}

func boldInfoLabels(ctx *BuildContext) error {
	for _, row := range table.InfoRows {
		ctx.HTML = strings.ReplaceAll(ctx.HTML, row.Token, row.Bold())
	}
	return nil
}

func insertLegend(ctx *BuildContext) error {
	l := legend.Build(ctx.Section, ctx.Ordered)
	ctx.Indexes = l.Indexes
	ctx.HTML = tokens.Replace(ctx.HTML, TokenLegend, l.HTML)
	return nil
}

func insertTables(ctx *BuildContext) error {
	if ctx.Indexes == nil {
		return fmt.Errorf("%w: tables need the legend's section indexes", ErrStageOrder)
	}

	info, err := table.Information(ctx.Config, ctx.Renderer)
	if err != nil {
		return err
	}

	tables := []struct {
		token string
		table table.Table
	}{
		{TokenSeverityTable, table.SeverityClassification()},
		{TokenInfoTable, info},
		{TokenCountTable, table.FindingsCount(ctx.Findings)},
		{TokenSummaryTable, table.FindingsSummary(ctx.Ordered)},
	}
	for _, t := range tables {
		rendered, err := t.table.Render()
		if err != nil {
			return fmt.Errorf("%s: %w", t.token, err)
		}
		if t.token == TokenSummaryTable {
			rendered = table.LinkFindingIDs(rendered, ctx.Section, ctx.Ordered, ctx.Indexes)
		}
		ctx.HTML = tokens.Replace(ctx.HTML, t.token, rendered)
	}
	return nil
}

func noWrapIDColumns(ctx *BuildContext) error {
	ctx.HTML = noWrapCell.ReplaceAllString(ctx.HTML, `<td class="`+noWrapClass+`">$1`)
	return nil
}
