package logic

import (
	"fmt"
	"strings"
)

var researchApplications = []string{
	"Algorithm development and testing",
	"Sports analytics research",
	"Predictive modeling validation",
	"Decision tree construction",
	"Multi-factor analysis frameworks",
}

// SummaryReport renders a markdown overview of the snapshot. The output is
// deterministic for a given snapshot and every count is taken from the data.
func (s *Snapshot) SummaryReport() string {
	cs := s.Checklist.Summary()
	categories := s.Checklist.Categories()

	var b strings.Builder
	b.WriteString("# Tennis Prediction Framework Report\n\n")

	b.WriteString("## Dataset Summary\n")
	fmt.Fprintf(&b, "- **Total Components**: %d\n", cs.TotalComponents)
	fmt.Fprintf(&b, "- **Total Matches**: %d\n", s.Matches.Len())
	fmt.Fprintf(&b, "- **Categories**: %d\n", len(categories))
	fmt.Fprintf(&b, "- **Real-time Components**: %d\n", cs.RealTimeAvailable)
	fmt.Fprintf(&b, "- **Evidence-based Components**: %d\n", cs.EvidenceBased)

	b.WriteString("\n## Categories\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "- %s (%d components)\n", c, len(s.Checklist.ByCategory(c)))
	}

	b.WriteString("\n## Framework Capabilities\n")
	fmt.Fprintf(&b, "1. Match outcome prediction using %d systematic components\n", cs.TotalComponents)
	b.WriteString("2. Player performance analysis and comparison\n")
	b.WriteString("3. Head-to-head historical analysis\n")
	b.WriteString("4. Surface and environmental factor integration\n")
	b.WriteString("5. Real-time data incorporation\n")
	fmt.Fprintf(&b, "6. Validation against %d professional matches\n", s.Matches.Len())

	b.WriteString("\n## Research Applications\n")
	for _, a := range researchApplications {
		fmt.Fprintf(&b, "- %s\n", a)
	}
	return b.String()
}
