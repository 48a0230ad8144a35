package metadata

import (
	"fmt"
	"strings"
)

/** @brief The point in the host pipeline where a render pass runs. */
type RenderStage int

const (
	RenderStageBeforeOpaque RenderStage = iota
	RenderStageAfterOpaque
	RenderStageAfterTransparent
	RenderStageBeforePostProcessing
	RenderStageAfterPostProcessing
)

var renderStageNames = map[RenderStage]string{
	RenderStageBeforeOpaque:         "before_opaque",
	RenderStageAfterOpaque:          "after_opaque",
	RenderStageAfterTransparent:     "after_transparent",
	RenderStageBeforePostProcessing: "before_post_processing",
	RenderStageAfterPostProcessing:  "after_post_processing",
}

func (s RenderStage) String() string {
	if name, ok := renderStageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("RenderStage(%d)", int(s))
}

// ParseRenderStage accepts the names produced by RenderStage.String.
func ParseRenderStage(name string) (RenderStage, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for stage, stageName := range renderStageNames {
		if stageName == n {
			return stage, nil
		}
	}
	return 0, fmt.Errorf("unknown render stage %q", name)
}

func (s RenderStage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *RenderStage) UnmarshalText(text []byte) error {
	stage, err := ParseRenderStage(string(text))
	if err != nil {
		return err
	}
	*s = stage
	return nil
}

/**
 * @brief Describes a render pass registered with the host.
 */
type RenderPassConfig struct {
	/** @brief The name of the pass, shown in host profilers. */
	Name string
	/** @brief Where in the host pipeline the pass runs. */
	Stage RenderStage
}
