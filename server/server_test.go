package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func postJSON(t *testing.T, route string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	bs, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %s", err)
	}
	req := httptest.NewRequest(http.MethodPost, route, bytes.NewReader(bs))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)
	return rec
}

func twoStateBody() map[string]interface{} {
	return map[string]interface{}{
		"R": [][]float64{{1, 0}, {0, 1}},
		"P": [][][]float64{
			{{1, 0}, {0, 1}},
			{{1, 0}, {0, 1}},
		},
	}
}

func TestSolveValueIteration(t *testing.T) {
	body := twoStateBody()
	body["gamma"] = 0.9
	body["epsilon"] = 1e-6
	rec := postJSON(t, "/solve/vi", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp valueIterationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %s", err)
	}
	// staying put pays 1 forever, V* = 1/(1-gamma)
	for s, v := range resp.V {
		if math.Abs(v-10) > 1e-3 {
			t.Errorf("V[%d] = %f, want 10", s, v)
		}
	}
}

func TestSolveBackwardInduction(t *testing.T) {
	body := twoStateBody()
	body["horizon"] = 3
	body["gamma"] = 0.5
	rec := postJSON(t, "/solve/bi", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp backwardInductionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %s", err)
	}
	if len(resp.Q) != 3 || len(resp.V) != 3 {
		t.Fatalf("got %d Q steps and %d V steps, want 3", len(resp.Q), len(resp.V))
	}
	if resp.Q[2][0][0] != 1 || resp.Q[2][0][1] != 0 {
		t.Errorf("terminal Q for state 0 = %v, want [1 0]", resp.Q[2][0])
	}
	if resp.V[0][0] != 1.75 {
		t.Errorf("V[0][0] = %f, want 1.75", resp.V[0][0])
	}
}

func TestSolveRejectsBadShapes(t *testing.T) {
	body := map[string]interface{}{
		"R": [][]float64{{1, 0}},
		"P": [][][]float64{
			{{1, 0}, {0, 1}},
			{{1, 0}, {0, 1}},
		},
		"gamma":   0.9,
		"epsilon": 1e-6,
	}
	rec := postJSON(t, "/solve/vi", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestSolveRejectsBadParameters(t *testing.T) {
	body := twoStateBody()
	body["gamma"] = 1.0
	body["epsilon"] = 1e-6
	rec := postJSON(t, "/solve/vi", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}

	body = twoStateBody()
	body["horizon"] = 0
	rec = postJSON(t, "/solve/bi", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}
