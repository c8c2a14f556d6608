package branding

import "fmt"

// BuildBrandAssetsPrompt - 퍼스널 브랜딩 마스터 플랜 생성 지시문
// 마스터 비주얼 프롬프트 1개 + Hook/해시태그 + variation 스크립트 N개를 요구한다.
func BuildBrandAssetsPrompt(topic, background, style, tone string, quantity int) string {
	return fmt.Sprintf(`ROLE: Personal Branding Expert & Creative Director.
TASK:
1. Create ONE Master Visual Prompt for a personal brand expert video series.
2. Create a Catchy Hook Headline & Hashtags.
3. Create %d unique video scripts based on the user's content topic.

INPUT CONTEXT:
- Content Topic: "%s"
- Background: "%s"
- Style: "%s"
- Tone: "%s"

OUTPUT REQUIREMENTS:
A. HOOK & HASHTAGS (Vietnamese for Hook):
- Hook Headline: Short, punchy, curiosity-inducing or addressing a pain point.
- Hashtags: 5-10 trending tags related to %s and personal branding.

B. MASTER VISUAL PROMPT (English):
- SUBJECT: Professional expert (preserve identity), Mid-shot (Waist-up), SITTING COMFORTABLY or STANDING RELAXED.
- ACTION: Looking directly at camera, engaging hand gestures.
- BACKGROUND: %s. High-end cinematic lighting.
- STRICTLY: NO TEXT, NO LOGOS.

C. VARIATIONS (Array of %d):
- Based on topic "%s", create %d different sub-topics/angles.
- SCRIPT (Vietnamese): Natural spoken language, expert tone (~40 words).
- VEO PROMPT (English): Describe subtle motion (e.g., "Speaker smiles and nods").`,
		quantity, topic, background, style, tone, topic, background, quantity, topic, quantity)
}
