package server

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/theirongolddev/stratsim/internal/export"
	"github.com/theirongolddev/stratsim/internal/model"
	"github.com/theirongolddev/stratsim/internal/pipeline"

	"github.com/gin-gonic/gin"
)

// simulateRequest is a parameter set plus an optional seed. Rates are
// fractions (0.05 for 5%).
type simulateRequest struct {
	model.Params
	Seed uint64 `json:"seed,omitempty"`
}

// summaryJSON mirrors model.Summary with one sub-object per mode. JSON has
// no infinity, so unbounded metrics are null with a matching *_infinite flag.
type summaryJSON struct {
	Mode   model.Mode         `json:"mode"`
	Growth *growthSummaryJSON `json:"growth,omitempty"`
	SaaS   *saasSummaryJSON   `json:"saas,omitempty"`
}

type growthSummaryJSON struct {
	AvgPredictedRevenue float64 `json:"avg_predicted_revenue"`
	AvgActualRevenue    float64 `json:"avg_actual_revenue"`
	Gap                 float64 `json:"gap"`
	TotalActualRevenue  float64 `json:"total_actual_revenue"`
	TotalCost           float64 `json:"total_cost"`
	ActualProfit        float64 `json:"actual_profit"`
}

type saasSummaryJSON struct {
	FinalCustomers   float64  `json:"final_customers"`
	FinalMRR         float64  `json:"final_mrr"`
	ChurnRate        float64  `json:"churn_rate"`
	CAC              float64  `json:"cac"`
	LTV              *float64 `json:"ltv"`
	LTVInfinite      bool     `json:"ltv_infinite"`
	LTVToCAC         *float64 `json:"ltv_to_cac"`
	LTVToCACInfinite bool     `json:"ltv_to_cac_infinite"`
}

type simulateResponse struct {
	model.Result
	Summary summaryJSON       `json:"summary"`
	Advice  []pipeline.Advice `json:"advice"`
	Series  []model.Series    `json:"series"`
}

type statusResponse struct {
	Status    string   `json:"status"`
	Modes     []string `json:"modes"`
	Formats   []string `json:"formats"`
	MaxMonths int      `json:"max_months"`
	UptimeSec int64    `json:"uptime_sec"`
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		Status:    "ok",
		Modes:     []string{string(model.ModeGrowth), string(model.ModeSaaS)},
		Formats:   export.Names(),
		MaxMonths: model.MaxMonths,
		UptimeSec: int64(time.Since(s.startedAt).Seconds()),
	})
}

func (s *Server) handleSimulate(c *gin.Context) {
	rep, ok := s.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, simulateResponse{
		Result:  rep.Result,
		Summary: encodeSummary(rep.Summary),
		Advice:  rep.Advice,
		Series:  rep.Result.Series(),
	})
}

func (s *Server) handleExport(c *gin.Context) {
	f, err := export.Lookup(c.Param("format"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	rep, ok := s.run(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := f.Write(&buf, rep, s.export); err != nil {
		s.logger.Error("export failed", "format", f.Name, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Filename))
	c.Data(http.StatusOK, f.ContentType, buf.Bytes())
}

// run decodes the request and simulates it, writing the error response
// itself when it fails.
func (s *Server) run(c *gin.Context) (pipeline.Report, bool) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return pipeline.Report{}, false
	}

	rep, err := pipeline.Run(req.Params, s.sources(req.Seed))
	switch {
	case errors.Is(err, model.ErrInvalidParameter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return pipeline.Report{}, false
	case err != nil:
		s.logger.Error("simulation failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "simulation failed"})
		return pipeline.Report{}, false
	}

	s.logger.Debug("simulated", "run", rep.Result.RunID, "mode", rep.Result.Mode, "months", rep.Result.Len())
	return rep, true
}

func encodeSummary(sum model.Summary) summaryJSON {
	out := summaryJSON{Mode: sum.Mode}
	if sum.Mode == model.ModeSaaS {
		ss := &saasSummaryJSON{
			FinalCustomers: sum.FinalCustomers,
			FinalMRR:       sum.FinalMRR,
			ChurnRate:      sum.ChurnRate,
			CAC:            sum.CAC,
		}
		ss.LTV, ss.LTVInfinite = finite(sum.LTV)
		ss.LTVToCAC, ss.LTVToCACInfinite = finite(sum.LTVToCAC)
		out.SaaS = ss
		return out
	}
	out.Growth = &growthSummaryJSON{
		AvgPredictedRevenue: sum.AvgPredictedRevenue,
		AvgActualRevenue:    sum.AvgActualRevenue,
		Gap:                 sum.Gap,
		TotalActualRevenue:  sum.TotalActualRevenue,
		TotalCost:           sum.TotalCost,
		ActualProfit:        sum.ActualProfit,
	}
	return out
}

func finite(v float64) (*float64, bool) {
	if math.IsInf(v, 0) {
		return nil, true
	}
	return &v, false
}
