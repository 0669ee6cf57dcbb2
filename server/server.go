// Package server exposes the dynprog solvers over HTTP so that
// non-Go front ends can offload the heavy numeric loops. The service is
// stateless, every request carries its own model.
package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zeu5/tabular-rl/dynprog"
)

type SolverServer struct {
	Port   int
	server *http.Server
}

func NewSolverServer(port int) *SolverServer {
	s := &SolverServer{
		Port: port,
	}
	s.server = &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", port),
		Handler: newRouter(),
	}
	return s
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.POST("/solve/vi", handleValueIteration)
	r.POST("/solve/bi", handleBackwardInduction)
	return r
}

// Start the server, blocking until it is shut down
func (s *SolverServer) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("solver server failed: %s", err)
	}
	return nil
}

func (s *SolverServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type valueIterationRequest struct {
	Rewards     [][]float64   `json:"R" binding:"required"`
	Transitions [][][]float64 `json:"P" binding:"required"`
	Gamma       float64       `json:"gamma"`
	Epsilon     float64       `json:"epsilon"`
}

type valueIterationResponse struct {
	Q [][]float64 `json:"Q"`
	V []float64   `json:"V"`
}

func handleValueIteration(c *gin.Context) {
	var req valueIterationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}
	m, err := dynprog.NewMDPFromDense(req.Rewards, req.Transitions)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q, v, err := dynprog.ValueIteration(m, req.Gamma, req.Epsilon)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, valueIterationResponse{
		Q: reshapeQ(q, m.NumStates, m.NumActions),
		V: v,
	})
}

type backwardInductionRequest struct {
	Rewards     [][]float64   `json:"R" binding:"required"`
	Transitions [][][]float64 `json:"P" binding:"required"`
	Horizon     int           `json:"horizon"`
	Gamma       *float64      `json:"gamma"`
	VMax        *float64      `json:"vmax"`
}

type backwardInductionResponse struct {
	Q [][][]float64 `json:"Q"`
	V [][]float64   `json:"V"`
}

func handleBackwardInduction(c *gin.Context) {
	var req backwardInductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}
	m, err := dynprog.NewMDPFromDense(req.Rewards, req.Transitions)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gamma := 1.0
	if req.Gamma != nil {
		gamma = *req.Gamma
	}
	vmax := math.Inf(1)
	if req.VMax != nil {
		vmax = *req.VMax
	}
	q, v, err := dynprog.BackwardInduction(m, req.Horizon, gamma, vmax)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	qOut := make([][][]float64, req.Horizon)
	vOut := make([][]float64, req.Horizon)
	for h := 0; h < req.Horizon; h++ {
		qOut[h] = reshapeQ(q[h*m.NumStates*m.NumActions:(h+1)*m.NumStates*m.NumActions], m.NumStates, m.NumActions)
		vOut[h] = v[h*m.NumStates : (h+1)*m.NumStates]
	}
	c.JSON(http.StatusOK, backwardInductionResponse{
		Q: qOut,
		V: vOut,
	})
}

func reshapeQ(q []float64, numStates, numActions int) [][]float64 {
	out := make([][]float64, numStates)
	for s := 0; s < numStates; s++ {
		out[s] = q[s*numActions : (s+1)*numActions]
	}
	return out
}
