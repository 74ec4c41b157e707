package telemetry

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPlantCrash       BookmarkType = "plant_crash"
	BookmarkFungusExtinction BookmarkType = "fungus_extinction"
	BookmarkPlantExtinction  BookmarkType = "plant_extinction"
	BookmarkEquilibrium      BookmarkType = "equilibrium"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// Window counts used by the equilibrium check.
const (
	equilibriumHistory = 4
	equilibriumWindows = 5
	equilibriumMaxCV2  = 1e-4 // CV < 1%
)

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentPlantPeak int
	lastFungusCount int
	lastPlantCount  int
	stableWindows   int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < equilibriumHistory {
		historySize = equilibriumHistory
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		for _, check := range []func(WindowStats) *Bookmark{
			bd.checkPlantCrash,
			bd.checkExtinctions,
		} {
			if b := check(stats); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
	}

	bd.addToHistory(stats)

	if b := bd.checkEquilibrium(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if stats.PlantCount > bd.recentPlantPeak {
		bd.recentPlantPeak = stats.PlantCount
	}
	bd.lastFungusCount = stats.FungusCount
	bd.lastPlantCount = stats.PlantCount

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns the last n windows in insertion order, or nil if fewer exist.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	count := bd.historyIdx
	if bd.historyFull {
		count = bd.historySize
	}
	if count < n {
		return nil
	}
	out := make([]WindowStats, n)
	for i := 0; i < n; i++ {
		idx := (bd.historyIdx - n + i + bd.historySize) % bd.historySize
		out[i] = bd.history[idx]
	}
	return out
}

func (bd *BookmarkDetector) checkPlantCrash(stats WindowStats) *Bookmark {
	if bd.recentPlantPeak == 0 || stats.PlantCount == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.PlantCount)/float64(bd.recentPlantPeak)
	if drop > 0.30 && stats.PlantCount <= bd.recentPlantPeak-5 {
		oldPeak := bd.recentPlantPeak
		bd.recentPlantPeak = stats.PlantCount

		return &Bookmark{
			Type:        BookmarkPlantCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Plants crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.PlantCount),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkExtinctions(stats WindowStats) *Bookmark {
	switch {
	case bd.lastPlantCount > 0 && stats.PlantCount == 0:
		return &Bookmark{
			Type:        BookmarkPlantExtinction,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Last %d plants despawned", bd.lastPlantCount),
		}
	case bd.lastFungusCount > 0 && stats.FungusCount == 0:
		return &Bookmark{
			Type:        BookmarkFungusExtinction,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Last %d fungi despawned", bd.lastFungusCount),
		}
	}
	return nil
}

// checkEquilibrium fires once when plant count and mean mass have held
// steady for equilibriumWindows consecutive windows.
func (bd *BookmarkDetector) checkEquilibrium(stats WindowStats) *Bookmark {
	if stats.PlantCount == 0 {
		bd.stableWindows = 0
		return nil
	}
	history := bd.recent(equilibriumHistory)
	if history == nil {
		return nil
	}

	counts := make([]float64, len(history))
	masses := make([]float64, len(history))
	for i, h := range history {
		counts[i] = float64(h.PlantCount)
		masses[i] = h.PlantMassMean
	}

	if cv2(counts) < equilibriumMaxCV2 && cv2(masses) < equilibriumMaxCV2 {
		bd.stableWindows++
	} else {
		bd.stableWindows = 0
	}

	if bd.stableWindows == equilibriumWindows {
		return &Bookmark{
			Type:        BookmarkEquilibrium,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d plants holding mean mass %.3f", stats.PlantCount, stats.PlantMassMean),
		}
	}
	return nil
}

// cv2 returns the squared coefficient of variation, or +Inf for a zero mean.
func cv2(values []float64) float64 {
	mean, variance := stat.PopMeanVariance(values, nil)
	if mean == 0 {
		return math.Inf(1)
	}
	return variance / (mean * mean)
}
