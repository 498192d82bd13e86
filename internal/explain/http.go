package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/brightward-health/pedsim/internal/sim"
)

// Composer calls the external grounded-explanation service. The service
// receives the intervention and its stage context and returns prose, with
// optional structured hints about ideal ordering that are folded into the
// text.
type Composer struct {
	baseURL string
	client  *http.Client
}

func NewComposer(baseURL string) *Composer {
	return &Composer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type composeRequest struct {
	InterventionID   string `json:"intervention_id"`
	InterventionName string `json:"intervention_name"`
	CaseID           string `json:"case_id"`
	CaseCategory     string `json:"case_category"`
	Stage            int    `json:"stage"`
	StageDescription string `json:"stage_description"`
	Success          bool   `json:"success"`
}

type composeResponse struct {
	Explanation string   `json:"explanation"`
	NextSteps   []string `json:"next_steps,omitempty"`
}

func (c *Composer) Explain(ctx context.Context, req sim.ExplainRequest) (string, error) {
	body, err := json.Marshal(composeRequest{
		InterventionID:   req.InterventionID,
		InterventionName: req.InterventionName,
		CaseID:           req.CaseID,
		CaseCategory:     req.CaseCategory,
		Stage:            req.Stage,
		StageDescription: req.StageDescription,
		Success:          req.Success,
	})
	if err != nil {
		return "", fmt.Errorf("encode explanation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/explain", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build explanation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call explanation composer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("explanation composer returned %d", resp.StatusCode)
	}

	var decoded composeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode explanation response: %w", err)
	}

	text := decoded.Explanation
	for _, step := range decoded.NextSteps {
		text += "\nNext: " + step
	}
	return text, nil
}
