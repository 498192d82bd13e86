// Command casegen regenerates the reference docs for the built-in case and
// intervention libraries.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brightward-health/pedsim/internal/catalog"
)

func main() {
	root := filepath.Join("docs", "reference")
	if err := os.MkdirAll(root, 0o755); err != nil {
		fatal(err)
	}

	cat := catalog.Load()

	files := map[string]string{
		"cases.md":         generateCasesDoc(cat),
		"interventions.md": generateInterventionsDoc(cat),
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

func generateCasesDoc(cat *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString("# Case Library\n")
	for _, c := range cat.Cases() {
		fmt.Fprintf(&b, "\n## %s (`%s`)\n\n", c.Name, c.ID)
		fmt.Fprintf(&b, "- Category: %s, difficulty: %s, expected time: %s\n", c.Category, c.Difficulty, c.EstimatedTime)
		fmt.Fprintf(&b, "- History: %s\n", c.ClinicalHistory)
		for _, s := range c.Stages {
			fmt.Fprintf(&b, "\n### Stage %d: %s\n\n", s.Number, s.Description)
			fmt.Fprintf(&b, "- Time limit: %s\n", s.TimeLimit)
			fmt.Fprintf(&b, "- Critical actions: %s\n", strings.Join(s.CriticalActions, ", "))
			fmt.Fprintf(&b, "- Available: %s\n", strings.Join(s.AvailableIDs, ", "))
			for _, cond := range s.BranchingConditions {
				fmt.Fprintf(&b, "- Branches on: %s\n", cond.Name)
			}
		}
	}
	return b.String()
}

func generateInterventionsDoc(cat *catalog.Catalog) string {
	interventions := cat.Interventions()
	sort.Slice(interventions, func(i, j int) bool { return interventions[i].ID < interventions[j].ID })

	var b strings.Builder
	b.WriteString("# Intervention Library\n\n")
	b.WriteString("| ID | Name | Category | Time | Success rate | Cooldown |\n")
	b.WriteString("|----|------|----------|------|--------------|----------|\n")
	for _, iv := range interventions {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %.0f%% | %s |\n",
			iv.ID, iv.Name, iv.Category, iv.TimeRequired, iv.SuccessRate*100, iv.Cooldown())
	}
	return b.String()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
