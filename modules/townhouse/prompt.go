package townhouse

import (
	"fmt"

	"bds-studio-server/modules/common/model"
)

// BuildScenesPrompt - 타운하우스(Nhà Phố) 리뷰 투어 시나리오 지시문
// Identity lock과 배경 보존 규칙이 핵심이다.
func BuildScenesPrompt(info model.ProjectInfo, outfit string, numScenes int) string {
	return fmt.Sprintf(`ROLE: Interior Design Reviewer & Architect.
TASK: Create a %d-scene video tour for a Townhouse/Apartment.

INPUT DATA:
- House Info: "%s"
- Highlight: "%s"
- Agent Outfit: "%s"

OUTPUT FORMAT: JSON Array of exactly %d Scenes.

STRICT RULES:
1. SCRIPT (Vietnamese):
   - EXACTLY ~22 words per scene (approx 8 seconds spoken).
   - Tone: Sophisticated, architectural, inviting.

2. VISUAL PROMPT (English) - FRONT-FACING PRIORITY:
   - **STRICT IDENTITY LOCK**: "Use Image 1 (Agent face) as the core structural reference. All facial landmarks (nose shape, eye distance, jawline) MUST remain 99%% identical."
   - **BACKGROUND**: DO NOT imagine a new background. Use the provided project image as the EXACT background.
   - **FRAMING**: "FULL BODY STANDING SHOT".
   - **PRIORITY: FRONT-FACING ENGAGEMENT**:
      * The character MUST ALWAYS face the camera with DIRECT EYE CONTACT.
      * DO NOT look away at the house features. The character is a host speaking TO the audience.
      * The character should be standing in different parts of the house (living room, balcony, kitchen) but ALWAYS looking and speaking directly to the viewers/camera.
   - **FACE CLARITY**: "Ensure the face is not too small; it must be sharp and recognizable despite the full-body framing."
   - NO TEXT, NO LOGOS.

3. VEO PROMPT (English) - ANTI-DISTORTION & STABILITY OPTIMIZED:
   - **CRITICAL STRUCTURE**: Start strictly with "Static shot of [Character Description]..." or "Slow subtle camera movement...".
   - **ANTI-DISTORTION KEYWORDS**: Must include "minimal head movement", "locked facial features", "consistent face", "no morphing", "high fidelity preservation".
   - **CONTEXTUAL ACTION**: The movement must be subtle but match the script context.
     * If script is welcoming: "Character smiles gently at the camera, slight hand gesture."
     * If script mentions a detail: "Character gestures openly to the side with open palm, but keeps eyes locked on the camera."
   - **PROHIBITED**: No walking, no turning around, no fast movements, no looking away.
   - **QUALITY**: Photorealistic, 4k, cinematic lighting.`,
		numScenes, info.Description, info.Utilities, outfit, numScenes)
}
