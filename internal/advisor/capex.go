package advisor

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"github.com/sadopc/cockpit/internal/dataset"
)

var capexTmpl = template.Must(template.New("capex").Funcs(funcs).Parse(
	`CAPITAL EXPENDITURE PROPOSAL {{.ID}}
Asset: {{.Asset.ID}} ({{.Asset.Type}}, {{.Asset.Site}})

1. CURRENT STATE
   Total cost of ownership: {{money .Asset.TCOk}}
   Reliability (uptime): {{printf "%.1f" .Asset.UptimePct}}%
   Scientific impact score: {{.Asset.ScientificImpact}}/10

2. PROBLEM STATEMENT
   {{.Problem}}

3. PROPOSED SOLUTION
   Replace {{.Asset.ID}} with a current-generation {{.Asset.Type}} under a
   5-year service agreement, validated under the site CSV procedure.

4. FINANCIAL JUSTIFICATION
   Estimated replacement cost: {{money .Replacement}}
   Projected annual TCO reduction: {{money .Savings}}
   Simple payback: {{printf "%.1f" .Payback}} years

5. RECOMMENDATION
   {{.Recommendation}}
`))

type capexData struct {
	ID             string
	Asset          dataset.Asset
	Problem        string
	Replacement    float64
	Savings        float64
	Payback        float64
	Recommendation string
}

// CapexProposal drafts a replacement proposal for asset. The proposal id is
// derived from the asset id so a redraft keeps the same reference.
func CapexProposal(asset dataset.Asset) (string, error) {
	replacement := asset.TCOk * 0.8
	savings := asset.TCOk * (100 - asset.UptimePct) / 25
	if savings < 5 {
		savings = 5
	}

	problem := fmt.Sprintf("%s runs at %.1f%% uptime, which disrupts scheduled runs and inflates support costs.",
		asset.ID, asset.UptimePct)
	rec := "Approve replacement in the next CapEx cycle."
	if asset.UptimePct >= 97 {
		problem = fmt.Sprintf("%s is reliable but expensive to operate relative to its peers.", asset.ID)
		rec = "Defer replacement; renegotiate the service contract and revisit next fiscal year."
	}

	u := uuid.NewSHA1(uuid.NameSpaceOID, []byte("capex/"+asset.ID))
	data := capexData{
		ID:             "CAPEX-" + strings.ToUpper(u.String()[:8]),
		Asset:          asset,
		Problem:        problem,
		Replacement:    replacement,
		Savings:        savings,
		Payback:        replacement / savings,
		Recommendation: rec,
	}

	var buf bytes.Buffer
	if err := capexTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render capex proposal: %w", err)
	}
	return buf.String(), nil
}
