package land

import (
	"fmt"

	"bds-studio-server/modules/common/model"
)

// BuildScenesPrompt - 분양 토지(Đất Nền) 영상 시나리오 생성 지시문
// 사용자 입력은 따옴표 구분자 안에 그대로 삽입된다.
func BuildScenesPrompt(info model.ProjectInfo, clothingDescription string, numScenes int) string {
	return fmt.Sprintf(`ROLE: Expert Real Estate Video Director.
TASK: Create a %d-scene video script and visual prompts for a Land Investment project.

INPUT DATA:
- Description: "%s"
- Utilities: "%s"
- CTA: "%s"
- Agent Look: %s

OUTPUT FORMAT: JSON Array of exactly %d Scenes.
Flow: Intro -> Location -> Utilities -> Potential -> CTA.

STRICT RULES:
1. SCRIPT (Vietnamese):
   - Punchy, sales-oriented, ~25 words per scene.

2. VISUAL PROMPT (English) - FRAMING:
  * **MID-SHOT (Waist-up)**: Strictly Professional TV News Anchor style.
  * Agent Position: "Strictly at the right 1/3 of the frame".
  * Background: "The left 2/3 displays [specific scene context based on project images]".
  * NO TEXT, NO LOGOS within the generated image.

3. VEO PROMPT (English) - ANTI-DISTORTION & STABILITY (Updated for Veo 3):
   - **STRUCTURE**: Start with "Static shot of professional news anchor...".
   - **KEYWORDS**: Must include "minimal head movement", "locked facial features", "consistent face", "no morphing", "high fidelity preservation".
   - **ACTION**: "Subtle hand gestures while speaking", "Maintaining direct eye contact".
   - **NO**: No walking, no turning, no background morphing.`,
		numScenes, info.Description, info.Utilities, info.CTA, clothingDescription, numScenes)
}
