// Package parser turns free-typed trainer input into commands for the
// terminal host. Matching is forgiving: exact, then prefix, then a bounded
// levenshtein distance, so "lorazpam" still reaches the right intervention
// under time pressure.
package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindHelp
	KindStatus
	KindList
	KindApply
	KindPause
	KindResume
	KindQuit
)

// Intent is a parsed line: the command kind, and for apply commands the
// matched intervention id with a confidence score.
type Intent struct {
	Kind           Kind
	InterventionID string
	Confidence     float64
}

type commandDef struct {
	kind    Kind
	phrases []string
}

var commands = []commandDef{
	{KindHelp, []string{"help", "commands", "?"}},
	{KindStatus, []string{"status", "vitals", "patient"}},
	{KindList, []string{"list", "interventions", "actions"}},
	{KindPause, []string{"pause", "hold"}},
	{KindResume, []string{"resume", "continue"}},
	{KindQuit, []string{"quit", "exit", "menu"}},
	{KindApply, []string{"apply", "give", "do", "perform", "start"}},
}

var multiSpaceRE = regexp.MustCompile(`\s+`)

func normalise(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	var b strings.Builder
	for _, r := range raw {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '-' || r == '_' || r == '/' || r == '\'':
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

// Parser matches input against the fixed command set plus the intervention
// names and ids currently on offer.
type Parser struct {
	interventions []interventionPhrase
}

type interventionPhrase struct {
	id     string
	phrase string
}

// New builds a parser over the given intervention id -> display name set.
// Both the id (underscores normalised to spaces) and the name are matchable.
func New(interventions map[string]string) *Parser {
	p := &Parser{}
	for id, name := range interventions {
		p.interventions = append(p.interventions,
			interventionPhrase{id: id, phrase: normalise(id)},
			interventionPhrase{id: id, phrase: normalise(name)},
		)
	}
	sort.Slice(p.interventions, func(i, j int) bool {
		return p.interventions[i].phrase < p.interventions[j].phrase
	})
	return p
}

// Parse resolves one input line. A bare intervention name (no verb) is
// treated as an apply command.
func (p *Parser) Parse(raw string) Intent {
	input := normalise(raw)
	if input == "" {
		return Intent{Kind: KindUnknown}
	}
	tokens := strings.Fields(input)

	for _, cmd := range commands {
		for _, phrase := range cmd.phrases {
			if tokens[0] != phrase {
				continue
			}
			if cmd.kind != KindApply {
				return Intent{Kind: cmd.kind, Confidence: 1}
			}
			rest := strings.Join(tokens[1:], " ")
			if rest == "" {
				return Intent{Kind: KindUnknown}
			}
			if id, score := p.matchIntervention(rest); id != "" {
				return Intent{Kind: KindApply, InterventionID: id, Confidence: score}
			}
			return Intent{Kind: KindUnknown}
		}
	}

	if id, score := p.matchIntervention(input); id != "" {
		return Intent{Kind: KindApply, InterventionID: id, Confidence: score}
	}
	return Intent{Kind: KindUnknown}
}

func (p *Parser) matchIntervention(input string) (string, float64) {
	bestID := ""
	bestScore := 0.0

	for _, cand := range p.interventions {
		switch {
		case input == cand.phrase:
			return cand.id, 1
		case strings.HasPrefix(cand.phrase, input) && len(input) >= 3:
			if 0.9 > bestScore {
				bestID, bestScore = cand.id, 0.9
			}
		default:
			if len(input) < 3 {
				continue
			}
			dist := levenshtein.ComputeDistance(input, cand.phrase)
			if dist > distanceLimit(len(cand.phrase)) {
				continue
			}
			score := 0.75 - 0.1*float64(dist)
			if score > bestScore {
				bestID, bestScore = cand.id, score
			}
		}
	}
	return bestID, bestScore
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 10:
		return 2
	default:
		return 4
	}
}
