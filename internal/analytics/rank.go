package analytics

import (
	"sort"

	"kelly-montecarlo/internal/model"
)

// RankByGrowth returns a copy of infos sorted by expected log growth at the
// optimal fraction, best first. Ties keep their input order.
func RankByGrowth(infos []model.KellyInfo) []model.KellyInfo {
	out := append([]model.KellyInfo(nil), infos...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpectedLogGrowth > out[j].ExpectedLogGrowth
	})
	return out
}
