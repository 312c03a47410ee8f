package generation

import "github.com/ai-studio/backend/internal/models"

// Credit cost per generation action.
const (
	CostImage            = 1
	CostVideo            = 5
	CostUpscale          = 2
	CostVariation        = 1
	CostRemoveBackground = 1
)

var costs = map[string]int{
	models.GenerationTypeImage: CostImage,
	models.GenerationTypeVideo: CostVideo,
	"upscale":                  CostUpscale,
	"variation":                CostVariation,
	"remove_bg":                CostRemoveBackground,
}

// Cost returns the credit cost of an action, or 0 for unknown actions.
func Cost(action string) int {
	return costs[action]
}
