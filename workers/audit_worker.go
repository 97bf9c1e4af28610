package workers

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/HrudhyaRadesh/EcoSphereLive/models"

	"gorm.io/gorm"
)

// AuditWorker reconciles the activity ledger against the accumulated
// metrics. The ledger is the source of truth: co2 and points on each metrics
// row must equal the sums over the owner's activities. Drift is logged and
// repaired in place.
type AuditWorker struct {
	DB *gorm.DB
}

func NewAuditWorker(db *gorm.DB) *AuditWorker {
	return &AuditWorker{DB: db}
}

type ledgerTotals struct {
	UserID string
	Co2    float64
	Points int
}

// RunOnce audits every user with ledger entries, returning how many metrics
// rows had drifted.
func (w *AuditWorker) RunOnce(ctx context.Context) (int, error) {
	var totals []ledgerTotals
	if err := w.DB.WithContext(ctx).Model(&models.Activity{}).
		Select("user_id, COALESCE(SUM(ABS(co2_impact)), 0) AS co2, COALESCE(SUM(points_earned), 0) AS points").
		Group("user_id").
		Scan(&totals).Error; err != nil {
		return 0, err
	}

	drifted := 0
	for _, t := range totals {
		var metrics models.UserMetrics
		if err := w.DB.WithContext(ctx).Where("user_id = ?", t.UserID).First(&metrics).Error; err != nil {
			log.Printf("❌ [AUDIT] Metrics row missing for %s: %v", t.UserID, err)
			continue
		}

		co2OK := math.Abs(metrics.Co2Saved-t.Co2) < 1e-6
		pointsOK := metrics.GreenPoints == t.Points
		if co2OK && pointsOK {
			continue
		}

		drifted++
		log.Printf("⚠️ [AUDIT] Drift for %s: co2 %.3f→%.3f, points %d→%d",
			t.UserID, metrics.Co2Saved, t.Co2, metrics.GreenPoints, t.Points)

		metrics.Co2Saved = t.Co2
		metrics.GreenPoints = t.Points
		metrics.Level = models.LevelForPoints(metrics.GreenPoints)
		if err := w.DB.WithContext(ctx).Save(&metrics).Error; err != nil {
			log.Printf("❌ [AUDIT] Repair failed for %s: %v", t.UserID, err)
		}
	}
	return drifted, nil
}

// PollLedger audits on an interval until the context ends.
func PollLedger(ctx context.Context, worker *AuditWorker, pollInterval time.Duration) {
	log.Println("Starting ledger audit polling...")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Ledger audit polling stopped.")
			return
		case <-ticker.C:
			drifted, err := worker.RunOnce(ctx)
			if err != nil {
				log.Printf("❌ Ledger audit failed: %v", err)
				continue
			}
			if drifted > 0 {
				log.Printf("✅ Ledger audit repaired %d metrics row(s)", drifted)
			}
		}
	}
}
